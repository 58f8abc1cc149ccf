package dbmodels

import (
	"time"

	"ats-backend/models"
)

// ApplicationHistory is an audit record of an action taken on an application.
type ApplicationHistory struct {
	BaseModel
	ApplicationID string `gorm:"type:varchar(36);index"`
	RecruitmentID string `gorm:"type:varchar(36);index"`
	StageID       *string
	UserID        *string
	UserName      string               `gorm:"type:varchar(255)"`
	Action        models.HistoryAction `gorm:"type:varchar(50)"`
	Description   string
	ScheduleDate  *time.Time
}

type ApplicationHistoryFilter struct {
	Action models.HistoryAction `json:"action"`
}
