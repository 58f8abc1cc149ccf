package dbmodels

import "time"

// InterviewSchedule is a scheduled interview for an application on a stage.
type InterviewSchedule struct {
	BaseModel
	ApplicationID string                `gorm:"type:varchar(36);index"`
	Application   *CandidateApplication `gorm:"foreignKey:ApplicationID"`
	StageID       *string
	InterviewDate time.Time
	Description   string `gorm:"type:varchar(255)"`
	Completed     bool

	Interviewers []InterviewInterviewer `gorm:"foreignKey:InterviewID"`
}

type InterviewInterviewer struct {
	BaseModel
	InterviewID string    `gorm:"type:varchar(36);uniqueIndex:idx_interview_employee"`
	EmployeeID  string    `gorm:"type:varchar(36);uniqueIndex:idx_interview_employee"`
	Employee    *Employee `gorm:"foreignKey:EmployeeID"`
}
