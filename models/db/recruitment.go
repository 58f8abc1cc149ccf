package dbmodels

import (
	"time"

	"ats-backend/models"

	"github.com/pkg/errors"
)

type Recruitment struct {
	BaseModel
	Title         string `gorm:"type:varchar(255)"`
	Description   string
	Vacancy       int
	IsEventBased  bool
	Closed        bool
	IsPublished   bool `gorm:"default:true"`
	JobPositionID *string
	JobPosition   *JobPosition `gorm:"foreignKey:JobPositionID"`
	StartDate     time.Time
	EndDate       *time.Time
	IsActive      bool `gorm:"default:true"`

	OpenPositions []RecruitmentPosition `gorm:"foreignKey:RecruitmentID"`
	Team          []RecruitmentTeam     `gorm:"foreignKey:RecruitmentID"`
}

// RecruitmentPosition links a recruitment to one of its open job positions.
type RecruitmentPosition struct {
	BaseModel
	RecruitmentID string       `gorm:"type:varchar(36);uniqueIndex:idx_rec_position"`
	JobPositionID string       `gorm:"type:varchar(36);uniqueIndex:idx_rec_position"`
	JobPosition   *JobPosition `gorm:"foreignKey:JobPositionID"`
}

// RecruitmentTeam holds per-recruitment employee roles: recruitment managers,
// default stage managers and the L1/L2/L3 interviewer sets.
type RecruitmentTeam struct {
	BaseModel
	RecruitmentID string                 `gorm:"type:varchar(36);uniqueIndex:idx_rec_team"`
	EmployeeID    string                 `gorm:"type:varchar(36);uniqueIndex:idx_rec_team"`
	Role          models.RecruitmentRole `gorm:"type:varchar(50);uniqueIndex:idx_rec_team"`
	Employee      *Employee              `gorm:"foreignKey:EmployeeID"`
}

func (r Recruitment) Validate() error {
	if r.Title == "" {
		return errors.New("title is required")
	}
	if r.IsPublished && r.Vacancy <= 0 {
		return errors.New("vacancy must be greater than zero if the recruitment is published")
	}
	if r.EndDate != nil && !r.StartDate.IsZero() && r.StartDate.After(*r.EndDate) {
		return errors.New("end date cannot be less than start date")
	}
	return nil
}

// HasOpenPosition reports whether the job position belongs to the
// recruitment's open-position set.
func (r Recruitment) HasOpenPosition(jobPositionID string) bool {
	for _, pos := range r.OpenPositions {
		if pos.JobPositionID == jobPositionID {
			return true
		}
	}
	// a non event-based recruitment always opens its primary position
	if !r.IsEventBased && r.JobPositionID != nil && *r.JobPositionID == jobPositionID {
		return true
	}
	return false
}

// TeamByRole returns the employee ids holding the given role.
func (r Recruitment) TeamByRole(role models.RecruitmentRole) []string {
	ids := make([]string, 0, len(r.Team))
	for _, member := range r.Team {
		if member.Role == role {
			ids = append(ids, member.EmployeeID)
		}
	}
	return ids
}
