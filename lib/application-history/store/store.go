package applicationhistorystore

import (
	dbmodels "ats-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.ApplicationHistory) (id string, err error)
	List(applicationID string, filter dbmodels.ApplicationHistoryFilter) ([]dbmodels.ApplicationHistory, error)
	LatestScheduleDate(applicationID, stageID string) (*dbmodels.ApplicationHistory, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.ApplicationHistory) (id string, err error) {
	err = i.db.
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) List(applicationID string, filter dbmodels.ApplicationHistoryFilter) (list []dbmodels.ApplicationHistory, err error) {
	list = []dbmodels.ApplicationHistory{}
	tx := i.db.
		Where("application_id = ?", applicationID)
	if filter.Action != "" {
		tx.Where("action = ?", filter.Action)
	}
	err = tx.
		Order("created_at desc").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// LatestScheduleDate returns the most recent history row carrying a schedule
// date for the given application on the given stage.
func (i impl) LatestScheduleDate(applicationID, stageID string) (*dbmodels.ApplicationHistory, error) {
	rec := dbmodels.ApplicationHistory{}
	err := i.db.
		Where("application_id = ?", applicationID).
		Where("stage_id = ?", stageID).
		Where("schedule_date is not null").
		Order("created_at desc").
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}
