package interviewstore

import (
	dbmodels "ats-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Provider interface {
	CreateSchedule(rec dbmodels.InterviewSchedule) (id string, err error)
	GetScheduleByID(id string) (*dbmodels.InterviewSchedule, error)
	ListSchedules(applicationID string) ([]dbmodels.InterviewSchedule, error)
	UpdateSchedule(id string, updMap map[string]interface{}) error
	SetInterviewers(interviewID string, employeeIDs []string) error

	CreateNote(rec dbmodels.StageNote) (id string, err error)
	ListNotes(applicationID string) ([]dbmodels.StageNote, error)

	CreateRating(rec dbmodels.SkillRating) (id string, err error)
	ListRatings(applicationID string) ([]dbmodels.SkillRating, error)
	UpdateRatingNotes(id, notes string) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) CreateSchedule(rec dbmodels.InterviewSchedule) (id string, err error) {
	err = i.db.Omit(clause.Associations).
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetScheduleByID(id string) (*dbmodels.InterviewSchedule, error) {
	rec := dbmodels.InterviewSchedule{}
	err := i.db.
		Model(&dbmodels.InterviewSchedule{}).
		Where("id = ?", id).
		Preload("Interviewers").
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

func (i impl) ListSchedules(applicationID string) (list []dbmodels.InterviewSchedule, err error) {
	list = []dbmodels.InterviewSchedule{}
	err = i.db.
		Where("application_id = ?", applicationID).
		Order("interview_date").
		Preload("Interviewers").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) UpdateSchedule(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	tx := i.db.
		Model(&dbmodels.InterviewSchedule{}).
		Where("id = ?", id).
		Updates(updMap)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return errors.New("interview not found")
	}
	return nil
}

// SetInterviewers fully replaces the interviewer set of one interview.
func (i impl) SetInterviewers(interviewID string, employeeIDs []string) error {
	return i.db.Transaction(func(tx *gorm.DB) error {
		err := tx.
			Where("interview_id = ?", interviewID).
			Delete(&dbmodels.InterviewInterviewer{}).
			Error
		if err != nil {
			return err
		}
		for _, employeeID := range employeeIDs {
			rec := dbmodels.InterviewInterviewer{
				InterviewID: interviewID,
				EmployeeID:  employeeID,
			}
			if err = tx.Create(&rec).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (i impl) CreateNote(rec dbmodels.StageNote) (id string, err error) {
	err = i.db.Omit(clause.Associations).
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) ListNotes(applicationID string) (list []dbmodels.StageNote, err error) {
	list = []dbmodels.StageNote{}
	err = i.db.
		Where("application_id = ?", applicationID).
		Order("created_at desc").
		Preload("Author").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) CreateRating(rec dbmodels.SkillRating) (id string, err error) {
	err = i.db.Omit(clause.Associations).
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) ListRatings(applicationID string) (list []dbmodels.SkillRating, err error) {
	list = []dbmodels.SkillRating{}
	err = i.db.
		Where("application_id = ?", applicationID).
		Order("skill").
		Preload("RatedBy").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) UpdateRatingNotes(id, notes string) error {
	tx := i.db.
		Model(&dbmodels.SkillRating{}).
		Where("id = ?", id).
		Update("notes", notes)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return errors.New("rating not found")
	}
	return nil
}
