package employeestore

import (
	dbmodels "ats-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.Employee) (id string, err error)
	GetByID(id string) (*dbmodels.Employee, error)
	GetByEmail(email string) (*dbmodels.Employee, error)
	ListByIDs(ids []string) ([]dbmodels.Employee, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Employee) (id string, err error) {
	err = i.db.
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Employee, error) {
	rec := dbmodels.Employee{}
	err := i.db.
		Model(&dbmodels.Employee{}).
		Where("id = ?", id).
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

func (i impl) GetByEmail(email string) (*dbmodels.Employee, error) {
	rec := dbmodels.Employee{}
	err := i.db.
		Model(&dbmodels.Employee{}).
		Where("email = ?", email).
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

func (i impl) ListByIDs(ids []string) (list []dbmodels.Employee, err error) {
	list = []dbmodels.Employee{}
	if len(ids) == 0 {
		return list, nil
	}
	err = i.db.
		Where("id in (?)", ids).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
