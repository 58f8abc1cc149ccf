package application

import (
	"bytes"

	"ats-backend/db"
	applicationhistoryhandler "ats-backend/lib/application-history"
	applicationstore "ats-backend/lib/application/store"
	xlsexport "ats-backend/lib/export/xls"
	stagestore "ats-backend/lib/stage-graph/store"
	domainerrors "ats-backend/lib/utils/domain-errors"
	"ats-backend/models"
	applicationapimodels "ats-backend/models/api/application"
	dbmodels "ats-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(userID string, data applicationapimodels.ApplicationData) (id string, err error)
	Update(userID, id string, data applicationapimodels.ApplicationData) error
	GetByID(id string) (applicationapimodels.ApplicationView, error)
	List(filter applicationapimodels.ApplicationFilter) ([]applicationapimodels.ApplicationView, int64, error)
	Export(filter applicationapimodels.ApplicationFilter) (*bytes.Buffer, error)
	SetSequence(id string, sequence int) error
	Archive(userID, id string) error
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:   applicationstore.NewInstance(db.DB),
		history: applicationhistoryhandler.Instance,
	}
}

type impl struct {
	store   applicationstore.Provider
	history applicationhistoryhandler.Provider
}

func (i impl) Create(userID string, data applicationapimodels.ApplicationData) (id string, err error) {
	rec := data.ToModel()
	rec.IsActive = true
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		store := applicationstore.NewInstance(tx)
		recruitment, err := loadRecruitment(tx, rec.RecruitmentID)
		if err != nil {
			return err
		}
		if recruitment.Closed {
			return domainerrors.NewValidation("the recruitment is closed")
		}
		if err = validateJobPosition(&rec, *recruitment); err != nil {
			return err
		}
		exists, err := store.IsEmailExists(rec.RecruitmentID, rec.Email, "")
		if err != nil {
			return err
		}
		if exists {
			return domainerrors.NewConflict("an application with this email already exists in the recruitment")
		}
		if rec.StageID == nil {
			// new applications land on the first pipeline column
			stages, err := stagestore.NewInstance(tx).List(rec.RecruitmentID)
			if err != nil {
				return err
			}
			if len(stages) != 0 {
				rec.StageID = &stages[0].ID
				rec.DeriveFlags(stages[0].StageType)
			}
		}
		id, err = store.Create(rec)
		if err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domainerrors.NewConflict("an application with this email already exists in the recruitment")
			}
			return err
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	i.history.Save(id, rec.RecruitmentID, "", userID, models.HistoryActionCreated, "application created", nil)
	return id, nil
}

func (i impl) Update(userID, id string, data applicationapimodels.ApplicationData) error {
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		store := applicationstore.NewInstance(tx)
		rec, err := store.GetByID(id)
		if err != nil {
			return err
		}
		if rec == nil {
			return domainerrors.NewNotFound("application not found")
		}
		if data.RecruitmentID != "" && data.RecruitmentID != rec.RecruitmentID {
			return domainerrors.NewValidation("an application cannot change its recruitment")
		}
		upd := data.ToModel()
		upd.RecruitmentID = rec.RecruitmentID
		upd.StageID = rec.StageID
		upd.Converted = rec.Converted
		recruitment, err := loadRecruitment(tx, rec.RecruitmentID)
		if err != nil {
			return err
		}
		if err = validateJobPosition(&upd, *recruitment); err != nil {
			return err
		}
		exists, err := store.IsEmailExists(rec.RecruitmentID, upd.Email, id)
		if err != nil {
			return err
		}
		if exists {
			return domainerrors.NewConflict("an application with this email already exists in the recruitment")
		}
		updMap := map[string]interface{}{
			"name":   upd.Name,
			"email":  upd.Email,
			"mobile": upd.Mobile,
			"gender": upd.Gender,
		}
		if upd.JobPositionID != nil {
			updMap["job_position_id"] = *upd.JobPositionID
		}
		if data.Source != "" {
			updMap["source"] = data.Source
		}
		return store.Update(id, updMap)
	})
	if err != nil {
		return err
	}
	i.history.Save(id, data.RecruitmentID, "", userID, models.HistoryActionUpdated, "application updated", nil)
	return nil
}

func (i impl) GetByID(id string) (applicationapimodels.ApplicationView, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return applicationapimodels.ApplicationView{}, err
	}
	if rec == nil {
		return applicationapimodels.ApplicationView{}, domainerrors.NewNotFound("application not found")
	}
	return applicationapimodels.ApplicationConvert(*rec), nil
}

func (i impl) List(filter applicationapimodels.ApplicationFilter) ([]applicationapimodels.ApplicationView, int64, error) {
	rowCount, err := i.store.ListCount(filter)
	if err != nil {
		return nil, 0, err
	}
	page, limit := filter.GetPage()
	offset := (page - 1) * limit
	if int64(offset) > rowCount {
		return []applicationapimodels.ApplicationView{}, rowCount, nil
	}
	list, err := i.store.List(filter)
	if err != nil {
		return nil, 0, err
	}
	result := make([]applicationapimodels.ApplicationView, 0, len(list))
	for _, rec := range list {
		result = append(result, applicationapimodels.ApplicationConvert(rec))
	}
	return result, rowCount, nil
}

func (i impl) Export(filter applicationapimodels.ApplicationFilter) (*bytes.Buffer, error) {
	list, err := i.store.ListForExport(filter)
	if err != nil {
		return nil, err
	}
	return xlsexport.Instance.ExportApplicationList(list)
}

// SetSequence updates only the display-ordering integer, the stage is
// untouched.
func (i impl) SetSequence(id string, sequence int) error {
	return i.store.Update(id, map[string]interface{}{
		"sequence": sequence,
	})
}

func (i impl) Archive(userID, id string) error {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return domainerrors.NewNotFound("application not found")
	}
	err = i.store.Update(id, map[string]interface{}{
		"is_active": false,
	})
	if err != nil {
		return err
	}
	i.history.Save(id, rec.RecruitmentID, "", userID, models.HistoryActionArchived, "application archived", nil)
	return nil
}

func loadRecruitment(tx *gorm.DB, id string) (*dbmodels.Recruitment, error) {
	rec := dbmodels.Recruitment{}
	err := tx.
		Model(&dbmodels.Recruitment{}).
		Where("id = ?", id).
		Preload("OpenPositions").
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.NewNotFound("recruitment not found")
		}
		return nil, err
	}
	return &rec, nil
}

// validateJobPosition enforces the open-position invariants and defaults the
// position for non event-based recruitments.
func validateJobPosition(rec *dbmodels.CandidateApplication, recruitment dbmodels.Recruitment) error {
	if !recruitment.IsEventBased && rec.JobPositionID == nil {
		rec.JobPositionID = recruitment.JobPositionID
	}
	if recruitment.IsEventBased && rec.JobPositionID == nil {
		return domainerrors.NewValidation("job position is required for an event based recruitment")
	}
	if rec.JobPositionID != nil && !recruitment.HasOpenPosition(*rec.JobPositionID) {
		return domainerrors.NewValidation("job position is not in the recruitment's open positions")
	}
	return nil
}
