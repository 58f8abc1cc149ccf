package applicationhistoryhandler

import (
	"time"

	"ats-backend/db"
	applicationhistorystore "ats-backend/lib/application-history/store"
	employeestore "ats-backend/lib/employee/store"
	"ats-backend/models"
	dbmodels "ats-backend/models/db"

	log "github.com/sirupsen/logrus"
)

type Provider interface {
	// Save is best-effort: a failed audit write is logged, never surfaced.
	Save(applicationID, recruitmentID, stageID, userID string, action models.HistoryAction, description string, scheduleDate *time.Time)
	List(applicationID string, filter dbmodels.ApplicationHistoryFilter) ([]dbmodels.ApplicationHistory, error)
	ScheduleDateOnStage(applicationID, stageID string) (*time.Time, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:         applicationhistorystore.NewInstance(db.DB),
		employeeStore: employeestore.NewInstance(db.DB),
	}
}

type impl struct {
	store         applicationhistorystore.Provider
	employeeStore employeestore.Provider
}

func (i impl) Save(applicationID, recruitmentID, stageID, userID string, action models.HistoryAction, description string, scheduleDate *time.Time) {
	logger := log.WithField("application_id", applicationID).
		WithField("recruitment_id", recruitmentID).
		WithField("action", action)
	rec := dbmodels.ApplicationHistory{
		ApplicationID: applicationID,
		RecruitmentID: recruitmentID,
		Action:        action,
		Description:   description,
		ScheduleDate:  scheduleDate,
	}
	if stageID != "" {
		rec.StageID = &stageID
	}
	if userID != "" {
		rec.UserID = &userID
		user, err := i.employeeStore.GetByID(userID)
		if err != nil {
			logger.WithError(err).Error("failed to save application history, could not resolve the author")
			return
		}
		if user == nil {
			logger.Error("failed to save application history, author not found")
			return
		}
		rec.UserName = user.GetFullName()
	} else {
		rec.UserName = models.SystemUser
	}
	_, err := i.store.Create(rec)
	if err != nil {
		logger.WithError(err).Error("failed to save application history")
	}
}

func (i impl) List(applicationID string, filter dbmodels.ApplicationHistoryFilter) ([]dbmodels.ApplicationHistory, error) {
	return i.store.List(applicationID, filter)
}

// ScheduleDateOnStage restores the interview date an application had the last
// time it sat on the given stage, if any.
func (i impl) ScheduleDateOnStage(applicationID, stageID string) (*time.Time, error) {
	rec, err := i.store.LatestScheduleDate(applicationID, stageID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, nil
	}
	return rec.ScheduleDate, nil
}
