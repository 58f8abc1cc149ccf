package applicationstore

import (
	"strings"

	applicationapimodels "ats-backend/models/api/application"
	dbmodels "ats-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Provider interface {
	Create(rec dbmodels.CandidateApplication) (id string, err error)
	Update(id string, updMap map[string]interface{}) error
	GetByID(id string) (*dbmodels.CandidateApplication, error)
	List(filter applicationapimodels.ApplicationFilter) ([]dbmodels.CandidateApplication, error)
	ListCount(filter applicationapimodels.ApplicationFilter) (int64, error)
	ListForExport(filter applicationapimodels.ApplicationFilter) ([]dbmodels.CandidateApplication, error)
	ListByStage(stageID string) ([]dbmodels.CandidateApplication, error)
	ListByRecruitment(recruitmentID string) ([]dbmodels.CandidateApplication, error)
	IsEmailExists(recruitmentID, email, excludeID string) (bool, error)
	IsEmployeeLinked(employeeID, excludeID string) (bool, error)
	CountInStage(stageID string, excludeCanceled bool) (int64, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.CandidateApplication) (id string, err error) {
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
		Model(&dbmodels.CandidateApplication{}).
		Where("id = ?", id).
		Updates(updMap)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return errors.New("application not found")
	}
	return nil
}

func (i impl) GetByID(id string) (*dbmodels.CandidateApplication, error) {
	rec := dbmodels.CandidateApplication{}
	err := i.db.
		Model(&dbmodels.CandidateApplication{}).
		Where("id = ?", id).
		Preload("Stage").
		Preload("Recruitment").
		Preload("Recruitment.OpenPositions").
		Preload("Recruitment.Team").
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

func (i impl) List(filter applicationapimodels.ApplicationFilter) (list []dbmodels.CandidateApplication, err error) {
	list = []dbmodels.CandidateApplication{}
	tx := i.db.
		Model(&dbmodels.CandidateApplication{})
	i.addListFilter(tx, filter)
	page, limit := filter.GetPage()
	offset := (page - 1) * limit
	err = tx.
		Order("sequence").
		Order("created_at").
		Offset(offset).
		Limit(limit).
		Preload("Stage").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListCount(filter applicationapimodels.ApplicationFilter) (count int64, err error) {
	tx := i.db.
		Model(&dbmodels.CandidateApplication{})
	i.addListFilter(tx, filter)
	err = tx.Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// ListForExport applies the filter without pagination, preloading what the
// spreadsheet columns need.
func (i impl) ListForExport(filter applicationapimodels.ApplicationFilter) (list []dbmodels.CandidateApplication, err error) {
	list = []dbmodels.CandidateApplication{}
	tx := i.db.
		Model(&dbmodels.CandidateApplication{})
	i.addListFilter(tx, filter)
	err = tx.
		Order("sequence").
		Order("created_at").
		Preload("Stage").
		Preload("Recruitment").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// ListByStage returns the stage's kanban column in display order.
func (i impl) ListByStage(stageID string) (list []dbmodels.CandidateApplication, err error) {
	list = []dbmodels.CandidateApplication{}
	err = i.db.
		Where("stage_id = ?", stageID).
		Where("is_active = true").
		Order("sequence").
		Order("created_at").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListByRecruitment(recruitmentID string) (list []dbmodels.CandidateApplication, err error) {
	list = []dbmodels.CandidateApplication{}
	err = i.db.
		Where("recruitment_id = ?", recruitmentID).
		Where("is_active = true").
		Order("sequence").
		Order("created_at").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) IsEmailExists(recruitmentID, email, excludeID string) (found bool, err error) {
	var exists bool
	tx := i.db.Model(&dbmodels.CandidateApplication{}).
		Select("count(*) > 0").
		Where("recruitment_id = ?", recruitmentID).
		Where("email = ?", strings.ToLower(email))
	if excludeID != "" {
		tx.Where("id <> ?", excludeID)
	}
	err = tx.Find(&exists).Error
	return exists, err
}

func (i impl) IsEmployeeLinked(employeeID, excludeID string) (found bool, err error) {
	var exists bool
	tx := i.db.Model(&dbmodels.CandidateApplication{}).
		Select("count(*) > 0").
		Where("converted_employee_id = ?", employeeID)
	if excludeID != "" {
		tx.Where("id <> ?", excludeID)
	}
	err = tx.Find(&exists).Error
	return exists, err
}

func (i impl) CountInStage(stageID string, excludeCanceled bool) (count int64, err error) {
	tx := i.db.Model(&dbmodels.CandidateApplication{}).
		Where("stage_id = ?", stageID).
		Where("is_active = true")
	if excludeCanceled {
		tx.Where("canceled = false")
	}
	err = tx.Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (i impl) addListFilter(tx *gorm.DB, filter applicationapimodels.ApplicationFilter) {
	if filter.RecruitmentID != "" {
		tx.Where("recruitment_id = ?", filter.RecruitmentID)
	}
	if filter.StageID != "" {
		tx.Where("stage_id = ?", filter.StageID)
	}
	if filter.OnlyActive {
		tx.Where("is_active = true")
	}
	if filter.Search != "" {
		searchValue := "%" + strings.ToLower(filter.Search) + "%"
		tx.Where("LOWER(name) like ? or LOWER(email) like ? or mobile like ?", searchValue, searchValue, searchValue)
	}
}
