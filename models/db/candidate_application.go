package dbmodels

import (
	"time"

	"ats-backend/models"
)

// CandidateApplication is one candidate's attempt at one recruitment.
// The (recruitment, email) pair is unique: the application is a
// candidate+recruitment junction, not a biography.
type CandidateApplication struct {
	BaseModel
	RecruitmentID string       `gorm:"type:varchar(36);uniqueIndex:idx_rec_email"`
	Recruitment   *Recruitment `gorm:"foreignKey:RecruitmentID"`
	StageID       *string
	Stage         *Stage `gorm:"foreignKey:StageID"`
	JobPositionID *string
	JobPosition   *JobPosition `gorm:"foreignKey:JobPositionID"`

	Name   string `gorm:"type:varchar(255)"`
	Email  string `gorm:"type:varchar(255);uniqueIndex:idx_rec_email"`
	Mobile string `gorm:"type:varchar(50)"`
	Gender string `gorm:"type:varchar(50)"`

	Source       models.ApplicationSource `gorm:"type:varchar(50)"`
	Sequence     int
	Hired        bool
	Canceled     bool
	Converted    bool
	StartOnboard bool

	ConvertedEmployeeID *string   `gorm:"uniqueIndex:idx_converted_employee,where:converted_employee_id is not null"`
	ConvertedEmployee   *Employee `gorm:"foreignKey:ConvertedEmployeeID"`

	ScheduleDate      *time.Time
	JoiningDate       *time.Time
	HiredDate         *time.Time
	OfferLetterStatus models.OfferLetterStatus `gorm:"type:varchar(20);default:not_sent"`
	IsActive          bool                     `gorm:"default:true"`
}

// DeriveFlags recomputes the status flags from the stage type. Conversion
// supersedes pipeline status, so a converted application never carries the
// hired or canceled flag.
func (a *CandidateApplication) DeriveFlags(stageType models.StageType) {
	a.Hired = stageType == models.StageTypeSelected
	a.Canceled = stageType == models.StageTypeCancelled
	if a.Converted {
		a.Hired = false
		a.Canceled = false
	}
}
