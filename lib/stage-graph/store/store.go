package stagestore

import (
	"ats-backend/models"
	dbmodels "ats-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Provider interface {
	Create(rec dbmodels.Stage) (id string, err error)
	Update(id string, updMap map[string]interface{}) error
	GetByID(id string) (*dbmodels.Stage, error)
	GetByLabel(recruitmentID, label string) (*dbmodels.Stage, error)
	GetByType(recruitmentID string, stageType models.StageType) (*dbmodels.Stage, error)
	List(recruitmentID string) (list []dbmodels.Stage, err error)
	Delete(id string) error
	MaxSequence(recruitmentID string) (int, error)
	SetAssignments(stageID string, role models.StageRole, employeeIDs []string) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Stage) (id string, err error) {
	err = i.db.Omit(clause.Associations).
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	tx := i.db.
		Model(&dbmodels.Stage{}).
		Where("id = ?", id).
		Updates(updMap)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return errors.New("stage not found")
	}
	return nil
}

func (i impl) GetByID(id string) (*dbmodels.Stage, error) {
	rec := dbmodels.Stage{}
	err := i.db.
		Model(&dbmodels.Stage{}).
		Where("id = ?", id).
		Preload("Assignments").
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

func (i impl) GetByLabel(recruitmentID, label string) (*dbmodels.Stage, error) {
	rec := dbmodels.Stage{}
	err := i.db.
		Model(&dbmodels.Stage{}).
		Where("recruitment_id = ?", recruitmentID).
		Where("label = ?", label).
		Preload("Assignments").
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

func (i impl) GetByType(recruitmentID string, stageType models.StageType) (*dbmodels.Stage, error) {
	rec := dbmodels.Stage{}
	err := i.db.
		Model(&dbmodels.Stage{}).
		Where("recruitment_id = ?", recruitmentID).
		Where("stage_type = ?", stageType).
		Order("sequence").
		Preload("Assignments").
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

func (i impl) List(recruitmentID string) (list []dbmodels.Stage, err error) {
	list = []dbmodels.Stage{}
	err = i.db.
		Where("recruitment_id = ?", recruitmentID).
		Order("sequence").
		Preload("Assignments").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) Delete(id string) error {
	return i.db.Transaction(func(tx *gorm.DB) error {
		err := tx.
			Where("stage_id = ?", id).
			Delete(&dbmodels.StageAssignment{}).
			Error
		if err != nil {
			return err
		}
		return tx.
			Delete(&dbmodels.Stage{BaseModel: dbmodels.BaseModel{ID: id}}).
			Error
	})
}

func (i impl) MaxSequence(recruitmentID string) (sequence int, err error) {
	type result struct {
		MaxSequence int
	}
	res := result{}
	err = i.db.Table("stages").
		Where("recruitment_id = ?", recruitmentID).
		Select("coalesce(max(sequence), 0) as max_sequence").
		Find(&res).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return res.MaxSequence, nil
}

// SetAssignments fully replaces the employee set of one stage role.
func (i impl) SetAssignments(stageID string, role models.StageRole, employeeIDs []string) error {
	return i.db.Transaction(func(tx *gorm.DB) error {
		err := tx.
			Where("stage_id = ?", stageID).
			Where("role = ?", role).
			Delete(&dbmodels.StageAssignment{}).
			Error
		if err != nil {
			return err
		}
		for _, employeeID := range employeeIDs {
			rec := dbmodels.StageAssignment{
				StageID:    stageID,
				EmployeeID: employeeID,
				Role:       role,
			}
			if err = tx.Create(&rec).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
