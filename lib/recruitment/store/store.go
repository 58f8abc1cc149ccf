package recruitmentstore

import (
	"strings"

	"ats-backend/models"
	recruitmentapimodels "ats-backend/models/api/recruitment"
	dbmodels "ats-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Provider interface {
	Create(rec dbmodels.Recruitment) (id string, err error)
	Update(id string, updMap map[string]interface{}) error
	GetByID(id string) (*dbmodels.Recruitment, error)
	List(filter recruitmentapimodels.RecruitmentFilter) (list []dbmodels.Recruitment, err error)
	ListCount(filter recruitmentapimodels.RecruitmentFilter) (count int64, err error)
	ListAllOpen() ([]dbmodels.Recruitment, error)
	SetOpenPositions(id string, jobPositionIDs []string) error
	SetTeam(id string, role models.RecruitmentRole, employeeIDs []string) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Recruitment) (id string, err error) {
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
		Model(&dbmodels.Recruitment{}).
		Where("id = ?", id).
		Updates(updMap)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return errors.New("recruitment not found")
	}
	return nil
}

func (i impl) GetByID(id string) (*dbmodels.Recruitment, error) {
	rec := dbmodels.Recruitment{}
	err := i.db.
		Model(&dbmodels.Recruitment{}).
		Where("id = ?", id).
		Preload("OpenPositions").
		Preload("Team").
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

func (i impl) List(filter recruitmentapimodels.RecruitmentFilter) (list []dbmodels.Recruitment, err error) {
	list = []dbmodels.Recruitment{}
	tx := i.db.
		Model(&dbmodels.Recruitment{}).
		Where("is_active = true")
	i.addListFilter(tx, filter)
	page, limit := filter.GetPage()
	offset := (page - 1) * limit
	err = tx.
		Order("created_at desc").
		Offset(offset).
		Limit(limit).
		Preload("OpenPositions").
		Preload("Team").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListCount(filter recruitmentapimodels.RecruitmentFilter) (count int64, err error) {
	tx := i.db.
		Model(&dbmodels.Recruitment{}).
		Where("is_active = true")
	i.addListFilter(tx, filter)
	err = tx.Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (i impl) ListAllOpen() (list []dbmodels.Recruitment, err error) {
	list = []dbmodels.Recruitment{}
	err = i.db.
		Where("is_active = true").
		Where("closed = false").
		Preload("OpenPositions").
		Preload("Team").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) SetOpenPositions(id string, jobPositionIDs []string) error {
	return i.db.Transaction(func(tx *gorm.DB) error {
		err := tx.
			Where("recruitment_id = ?", id).
			Delete(&dbmodels.RecruitmentPosition{}).
			Error
		if err != nil {
			return err
		}
		for _, jobPositionID := range jobPositionIDs {
			rec := dbmodels.RecruitmentPosition{
				RecruitmentID: id,
				JobPositionID: jobPositionID,
			}
			if err = tx.Create(&rec).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// SetTeam fully replaces the member set of one role, matching the source
// semantics of assignment updates.
func (i impl) SetTeam(id string, role models.RecruitmentRole, employeeIDs []string) error {
	return i.db.Transaction(func(tx *gorm.DB) error {
		err := tx.
			Where("recruitment_id = ?", id).
			Where("role = ?", role).
			Delete(&dbmodels.RecruitmentTeam{}).
			Error
		if err != nil {
			return err
		}
		for _, employeeID := range employeeIDs {
			rec := dbmodels.RecruitmentTeam{
				RecruitmentID: id,
				EmployeeID:    employeeID,
				Role:          role,
			}
			if err = tx.Create(&rec).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (i impl) addListFilter(tx *gorm.DB, filter recruitmentapimodels.RecruitmentFilter) {
	if filter.Search != "" {
		searchValue := "%" + strings.ToLower(filter.Search) + "%"
		tx.Where("LOWER(title) like ?", searchValue)
	}
	if filter.OnlyOpen {
		tx.Where("closed = false")
	}
	if filter.IsPublished != nil {
		tx.Where("is_published = ?", *filter.IsPublished)
	}
}
