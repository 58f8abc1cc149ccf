package dbmodels

import (
	"ats-backend/models"
)

type Stage struct {
	BaseModel
	RecruitmentID string           `gorm:"type:varchar(36);uniqueIndex:idx_rec_stage_label"`
	Label         string           `gorm:"type:varchar(255);uniqueIndex:idx_rec_stage_label"`
	StageType     models.StageType `gorm:"type:varchar(50)"`
	Sequence      int
	IsActive      bool `gorm:"default:true"`

	Assignments []StageAssignment `gorm:"foreignKey:StageID"`
}

// StageAssignment holds per-stage employee roles (managers and interviewers).
type StageAssignment struct {
	BaseModel
	StageID    string           `gorm:"type:varchar(36);uniqueIndex:idx_stage_assignment"`
	EmployeeID string           `gorm:"type:varchar(36);uniqueIndex:idx_stage_assignment"`
	Role       models.StageRole `gorm:"type:varchar(50);uniqueIndex:idx_stage_assignment"`
	Employee   *Employee        `gorm:"foreignKey:EmployeeID"`
}

func (s Stage) EmployeesByRole(role models.StageRole) []string {
	ids := make([]string, 0, len(s.Assignments))
	for _, rec := range s.Assignments {
		if rec.Role == role {
			ids = append(ids, rec.EmployeeID)
		}
	}
	return ids
}

// DefaultStage describes one of the canonical stages seeded for every
// recruitment.
type DefaultStage struct {
	Label     string
	StageType models.StageType
	Sequence  int
}

// DefaultStages is the canonical pipeline in column order. The cancelled
// stage is not part of it, it is created lazily on first need.
var DefaultStages = []DefaultStage{
	{Label: "Sourced", StageType: models.StageTypeSourced, Sequence: 1},
	{Label: "Shortlisted", StageType: models.StageTypeShortlisted, Sequence: 2},
	{Label: "L1 Interview", StageType: models.StageTypeL1Interview, Sequence: 3},
	{Label: "L2 Interview", StageType: models.StageTypeL2Interview, Sequence: 4},
	{Label: "L3 Interview", StageType: models.StageTypeL3Interview, Sequence: 5},
	{Label: "Test", StageType: models.StageTypeTest, Sequence: 6},
	{Label: "Selected", StageType: models.StageTypeSelected, Sequence: 7},
	{Label: "Rejected", StageType: models.StageTypeRejected, Sequence: 8},
	{Label: "On Hold", StageType: models.StageTypeOnHold, Sequence: 9},
}

const (
	CancelledStageLabel = "Cancelled Candidates"
	// placed after all normal stages without renumbering siblings
	CancelledStageSequence = 50
)

// InterviewerRole maps an interview stage type to the recruitment team role
// that supplies its default interviewers.
func InterviewerRole(stageType models.StageType) (models.RecruitmentRole, bool) {
	switch stageType {
	case models.StageTypeL1Interview:
		return models.RecruitmentRoleL1Interviewer, true
	case models.StageTypeL2Interview:
		return models.RecruitmentRoleL2Interviewer, true
	case models.StageTypeL3Interview:
		return models.RecruitmentRoleL3Interviewer, true
	}
	return "", false
}
