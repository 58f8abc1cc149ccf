package recruitment

import (
	"ats-backend/db"
	recruitmentstore "ats-backend/lib/recruitment/store"
	stagegraph "ats-backend/lib/stage-graph"
	domainerrors "ats-backend/lib/utils/domain-errors"
	"ats-backend/models"
	recruitmentapimodels "ats-backend/models/api/recruitment"
	dbmodels "ats-backend/models/db"

	"gorm.io/gorm"
)

type Provider interface {
	// Create persists the recruitment, its open positions and team, and seeds
	// the canonical stage pipeline in the same transaction.
	Create(data recruitmentapimodels.RecruitmentData) (id string, err error)
	Update(id string, data recruitmentapimodels.RecruitmentData) error
	GetByID(id string) (recruitmentapimodels.RecruitmentView, error)
	List(filter recruitmentapimodels.RecruitmentFilter) ([]recruitmentapimodels.RecruitmentView, int64, error)
	Close(id string) error
	Reopen(id string) error
	Archive(id string) error
	// SyncStageAssignments re-applies the team-derived assignment sets to the
	// existing stages.
	SyncStageAssignments(id string) error
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:  recruitmentstore.NewInstance(db.DB),
		stages: stagegraph.Instance,
	}
}

type impl struct {
	store  recruitmentstore.Provider
	stages stagegraph.Provider
}

func (i impl) Create(data recruitmentapimodels.RecruitmentData) (id string, err error) {
	rec := dataToModel(data)
	if err = rec.Validate(); err != nil {
		return "", domainerrors.NewValidation(err.Error())
	}
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		store := recruitmentstore.NewInstance(tx)
		id, err = store.Create(rec)
		if err != nil {
			return err
		}
		if err = store.SetOpenPositions(id, data.OpenPositionIDs); err != nil {
			return err
		}
		for role, ids := range teamSets(data) {
			if err = store.SetTeam(id, role, ids); err != nil {
				return err
			}
		}
		created, err := store.GetByID(id)
		if err != nil {
			return err
		}
		return i.stages.CreateDefaultStages(tx, *created)
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

func (i impl) Update(id string, data recruitmentapimodels.RecruitmentData) error {
	upd := dataToModel(data)
	if err := upd.Validate(); err != nil {
		return domainerrors.NewValidation(err.Error())
	}
	return db.DB.Transaction(func(tx *gorm.DB) error {
		store := recruitmentstore.NewInstance(tx)
		rec, err := store.GetByID(id)
		if err != nil {
			return err
		}
		if rec == nil {
			return domainerrors.NewNotFound("recruitment not found")
		}
		updMap := map[string]interface{}{
			"title":           upd.Title,
			"description":     upd.Description,
			"vacancy":         upd.Vacancy,
			"is_event_based":  upd.IsEventBased,
			"is_published":    upd.IsPublished,
			"job_position_id": upd.JobPositionID,
			"start_date":      upd.StartDate,
			"end_date":        upd.EndDate,
		}
		if err = store.Update(id, updMap); err != nil {
			return err
		}
		if err = store.SetOpenPositions(id, data.OpenPositionIDs); err != nil {
			return err
		}
		for role, ids := range teamSets(data) {
			if err = store.SetTeam(id, role, ids); err != nil {
				return err
			}
		}
		updated, err := store.GetByID(id)
		if err != nil {
			return err
		}
		// team changes propagate to the existing stage assignment sets
		return i.stages.UpdateStageAssignments(*updated)
	})
}

func (i impl) GetByID(id string) (recruitmentapimodels.RecruitmentView, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return recruitmentapimodels.RecruitmentView{}, err
	}
	if rec == nil {
		return recruitmentapimodels.RecruitmentView{}, domainerrors.NewNotFound("recruitment not found")
	}
	view := recruitmentapimodels.RecruitmentConvert(*rec)
	stages, err := i.stages.OrderedStages(id)
	if err != nil {
		return recruitmentapimodels.RecruitmentView{}, err
	}
	view.Stages = make([]recruitmentapimodels.StageView, 0, len(stages))
	for _, stage := range stages {
		view.Stages = append(view.Stages, recruitmentapimodels.StageConvert(stage))
	}
	return view, nil
}

func (i impl) List(filter recruitmentapimodels.RecruitmentFilter) ([]recruitmentapimodels.RecruitmentView, int64, error) {
	rowCount, err := i.store.ListCount(filter)
	if err != nil {
		return nil, 0, err
	}
	page, limit := filter.GetPage()
	offset := (page - 1) * limit
	if int64(offset) > rowCount {
		return []recruitmentapimodels.RecruitmentView{}, rowCount, nil
	}
	list, err := i.store.List(filter)
	if err != nil {
		return nil, 0, err
	}
	result := make([]recruitmentapimodels.RecruitmentView, 0, len(list))
	for _, rec := range list {
		result = append(result, recruitmentapimodels.RecruitmentConvert(rec))
	}
	return result, rowCount, nil
}

// Close stops new applications without touching the existing pipeline.
func (i impl) Close(id string) error {
	return i.setClosed(id, true)
}

func (i impl) Reopen(id string) error {
	return i.setClosed(id, false)
}

func (i impl) setClosed(id string, closed bool) error {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return domainerrors.NewNotFound("recruitment not found")
	}
	return i.store.Update(id, map[string]interface{}{
		"closed": closed,
	})
}

func (i impl) Archive(id string) error {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return domainerrors.NewNotFound("recruitment not found")
	}
	return i.store.Update(id, map[string]interface{}{
		"is_active": false,
	})
}

func (i impl) SyncStageAssignments(id string) error {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return domainerrors.NewNotFound("recruitment not found")
	}
	return i.stages.UpdateStageAssignments(*rec)
}

func dataToModel(data recruitmentapimodels.RecruitmentData) dbmodels.Recruitment {
	rec := dbmodels.Recruitment{
		Title:        data.Title,
		Description:  data.Description,
		Vacancy:      data.Vacancy,
		IsEventBased: data.IsEventBased,
		IsPublished:  data.IsPublished,
		StartDate:    data.StartDate,
		EndDate:      data.EndDate,
		IsActive:     true,
	}
	if data.JobPositionID != "" {
		rec.JobPositionID = &data.JobPositionID
	}
	return rec
}

// teamSets maps the request onto the per-role member sets. Every role is
// present, an omitted role clears its set.
func teamSets(data recruitmentapimodels.RecruitmentData) map[models.RecruitmentRole][]string {
	return map[models.RecruitmentRole][]string{
		models.RecruitmentRoleManager:        data.ManagerIDs,
		models.RecruitmentRoleDefaultManager: data.DefaultManagerIDs,
		models.RecruitmentRoleL1Interviewer:  data.L1InterviewerIDs,
		models.RecruitmentRoleL2Interviewer:  data.L2InterviewerIDs,
		models.RecruitmentRoleL3Interviewer:  data.L3InterviewerIDs,
	}
}
