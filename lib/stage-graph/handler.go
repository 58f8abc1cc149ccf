package stagegraph

import (
	"ats-backend/db"
	applicationstore "ats-backend/lib/application/store"
	stagestore "ats-backend/lib/stage-graph/store"
	domainerrors "ats-backend/lib/utils/domain-errors"
	"ats-backend/models"
	recruitmentapimodels "ats-backend/models/api/recruitment"
	dbmodels "ats-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Provider owns the ordered stage list per recruitment and the
// stage-type-driven default assignment rules.
type Provider interface {
	// CreateDefaultStages idempotently ensures the canonical stages exist for
	// the recruitment, matched by (recruitment, label). Safe to retry.
	CreateDefaultStages(tx *gorm.DB, rec dbmodels.Recruitment) error
	// EnsureCancelledStage returns the cancelled-type stage, creating it
	// lazily with a sequence placing it after all normal stages.
	EnsureCancelledStage(tx *gorm.DB, recruitmentID string) (dbmodels.Stage, error)
	OrderedStages(recruitmentID string) ([]dbmodels.Stage, error)
	UpdateStageAssignments(rec dbmodels.Recruitment) error
	StageCreate(recruitmentID string, data recruitmentapimodels.StageAdd) (id string, err error)
	StageDelete(recruitmentID, stageID string) error
	StageChangeOrder(recruitmentID, stageID string, newOrder int) error
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store: stagestore.NewInstance(db.DB),
	}
}

type impl struct {
	store stagestore.Provider
}

func (i impl) CreateDefaultStages(tx *gorm.DB, rec dbmodels.Recruitment) error {
	store := i.store
	if tx != nil {
		store = stagestore.NewInstance(tx)
	}
	return i.createDefaultStages(store, rec)
}

func (i impl) createDefaultStages(store stagestore.Provider, rec dbmodels.Recruitment) error {
	defaultManagers := rec.TeamByRole(models.RecruitmentRoleDefaultManager)
	for _, stageData := range dbmodels.DefaultStages {
		existing, err := store.GetByLabel(rec.ID, stageData.Label)
		if err != nil {
			return errors.Wrapf(err, "failed to look up stage %v", stageData.Label)
		}
		var stageID string
		if existing == nil {
			stageID, err = store.Create(dbmodels.Stage{
				RecruitmentID: rec.ID,
				Label:         stageData.Label,
				StageType:     stageData.StageType,
				Sequence:      stageData.Sequence,
				IsActive:      true,
			})
			if err != nil {
				return errors.Wrapf(err, "failed to create stage %v", stageData.Label)
			}
		} else {
			stageID = existing.ID
			updMap := map[string]interface{}{
				"stage_type": stageData.StageType,
				"sequence":   stageData.Sequence,
			}
			if err = store.Update(stageID, updMap); err != nil {
				return errors.Wrapf(err, "failed to update stage %v", stageData.Label)
			}
		}
		if len(defaultManagers) != 0 {
			if err = store.SetAssignments(stageID, models.StageRoleManager, defaultManagers); err != nil {
				return errors.Wrapf(err, "failed to assign managers to stage %v", stageData.Label)
			}
		}
		if role, ok := dbmodels.InterviewerRole(stageData.StageType); ok {
			interviewers := rec.TeamByRole(role)
			if len(interviewers) != 0 {
				if err = store.SetAssignments(stageID, models.StageRoleInterviewer, interviewers); err != nil {
					return errors.Wrapf(err, "failed to assign interviewers to stage %v", stageData.Label)
				}
			}
		}
	}
	return nil
}

func (i impl) EnsureCancelledStage(tx *gorm.DB, recruitmentID string) (dbmodels.Stage, error) {
	store := i.store
	if tx != nil {
		store = stagestore.NewInstance(tx)
	}
	return i.ensureCancelledStage(store, recruitmentID)
}

func (i impl) ensureCancelledStage(store stagestore.Provider, recruitmentID string) (dbmodels.Stage, error) {
	existing, err := store.GetByType(recruitmentID, models.StageTypeCancelled)
	if err != nil {
		return dbmodels.Stage{}, errors.Wrap(err, "failed to look up the cancelled stage")
	}
	if existing != nil {
		return *existing, nil
	}
	rec := dbmodels.Stage{
		RecruitmentID: recruitmentID,
		Label:         dbmodels.CancelledStageLabel,
		StageType:     models.StageTypeCancelled,
		Sequence:      dbmodels.CancelledStageSequence,
		IsActive:      true,
	}
	rec.ID, err = store.Create(rec)
	if err != nil {
		// a concurrent writer may have created it first
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			existing, lookupErr := store.GetByType(recruitmentID, models.StageTypeCancelled)
			if lookupErr == nil && existing != nil {
				return *existing, nil
			}
		}
		return dbmodels.Stage{}, errors.Wrap(err, "failed to create the cancelled stage")
	}
	return rec, nil
}

func (i impl) OrderedStages(recruitmentID string) ([]dbmodels.Stage, error) {
	return i.store.List(recruitmentID)
}

// UpdateStageAssignments re-applies the recruitment's default manager and
// per-level interviewer sets to existing stages of the matching type. The
// sets are fully replaced, matching the source semantics.
func (i impl) UpdateStageAssignments(rec dbmodels.Recruitment) error {
	stages, err := i.store.List(rec.ID)
	if err != nil {
		return err
	}
	defaultManagers := rec.TeamByRole(models.RecruitmentRoleDefaultManager)
	for _, stage := range stages {
		if len(defaultManagers) != 0 {
			if err = i.store.SetAssignments(stage.ID, models.StageRoleManager, defaultManagers); err != nil {
				return errors.Wrapf(err, "failed to re-assign managers on stage %v", stage.Label)
			}
		}
		role, ok := dbmodels.InterviewerRole(stage.StageType)
		if !ok {
			continue
		}
		interviewers := rec.TeamByRole(role)
		if len(interviewers) == 0 {
			continue
		}
		if err = i.store.SetAssignments(stage.ID, models.StageRoleInterviewer, interviewers); err != nil {
			return errors.Wrapf(err, "failed to re-assign interviewers on stage %v", stage.Label)
		}
	}
	return nil
}

func (i impl) StageCreate(recruitmentID string, data recruitmentapimodels.StageAdd) (id string, err error) {
	maxSequence, err := i.store.MaxSequence(recruitmentID)
	if err != nil {
		return "", err
	}
	rec := dbmodels.Stage{
		RecruitmentID: recruitmentID,
		Label:         data.Label,
		StageType:     data.StageType,
		Sequence:      maxSequence + 1,
		IsActive:      true,
	}
	id, err = i.store.Create(rec)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return "", domainerrors.NewConflict("a stage with this label already exists in the recruitment")
		}
		return "", err
	}
	if len(data.ManagerIDs) != 0 {
		if err = i.store.SetAssignments(id, models.StageRoleManager, data.ManagerIDs); err != nil {
			return "", err
		}
	}
	if len(data.InterviewerIDs) != 0 {
		if err = i.store.SetAssignments(id, models.StageRoleInterviewer, data.InterviewerIDs); err != nil {
			return "", err
		}
	}
	return id, nil
}

func (i impl) StageDelete(recruitmentID, stageID string) error {
	rec, err := i.store.GetByID(stageID)
	if err != nil {
		return err
	}
	if rec == nil || rec.RecruitmentID != recruitmentID {
		return domainerrors.NewNotFound("stage not found")
	}
	attached, err := applicationstore.NewInstance(db.DB).CountInStage(stageID, false)
	if err != nil {
		return err
	}
	if attached > 0 {
		return domainerrors.NewValidation("the stage still holds applications and cannot be deleted")
	}
	return i.store.Delete(stageID)
}

func (i impl) StageChangeOrder(recruitmentID, stageID string, newOrder int) error {
	logger := log.WithField("recruitment_id", recruitmentID).
		WithField("stage_id", stageID)
	return db.DB.Transaction(func(tx *gorm.DB) error {
		store := stagestore.NewInstance(tx)
		list, err := store.List(recruitmentID)
		if err != nil {
			return err
		}
		reordered, err := reorderStages(list, stageID, newOrder)
		if err != nil {
			return err
		}
		for _, rec := range reordered {
			err = store.Update(rec.ID, map[string]interface{}{
				"sequence": rec.Sequence,
			})
			if err != nil {
				logger.WithError(err).Error("failed to change the stage order")
				return err
			}
		}
		return nil
	})
}

// reorderStages moves one stage to newOrder (0-based position) and renumbers
// the whole pipeline with contiguous sequences.
func reorderStages(list []dbmodels.Stage, stageID string, newOrder int) ([]dbmodels.Stage, error) {
	var moved *dbmodels.Stage
	rest := make([]dbmodels.Stage, 0, len(list))
	for _, rec := range list {
		rec := rec
		if rec.ID == stageID {
			moved = &rec
			continue
		}
		rest = append(rest, rec)
	}
	if moved == nil {
		return nil, domainerrors.NewNotFound("stage not found")
	}
	if newOrder > len(rest) {
		newOrder = len(rest)
	}
	newSet := make([]dbmodels.Stage, 0, len(list))
	newSet = append(newSet, rest[:newOrder]...)
	newSet = append(newSet, *moved)
	newSet = append(newSet, rest[newOrder:]...)
	for k := range newSet {
		newSet[k].Sequence = k + 1
	}
	return newSet, nil
}
