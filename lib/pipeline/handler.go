package pipeline

import (
	"fmt"
	"strings"
	"time"

	"ats-backend/config"
	"ats-backend/db"
	applicationhistoryhandler "ats-backend/lib/application-history"
	applicationstore "ats-backend/lib/application/store"
	"ats-backend/lib/directory"
	employeestore "ats-backend/lib/employee/store"
	"ats-backend/lib/notifier"
	pipelineview "ats-backend/lib/pipeline-view"
	recruitmentstore "ats-backend/lib/recruitment/store"
	stagegraph "ats-backend/lib/stage-graph"
	stagestore "ats-backend/lib/stage-graph/store"
	domainerrors "ats-backend/lib/utils/domain-errors"
	"ats-backend/models"
	pipelineapimodels "ats-backend/models/api/pipeline"
	dbmodels "ats-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Provider is the pipeline engine. Every write goes through one transition
// contract: authorize, derive flags from the target stage type, restore the
// interview date from history, persist atomically, then fan out the
// advisory, audit record, cache invalidation and notification.
type Provider interface {
	MoveStage(actorID, applicationID, targetStageID string) (pipelineapimodels.MoveResult, error)
	// Reorder rewrites the display order of one stage column, pulling in
	// applications that sat on another stage. Unknown ids are skipped.
	Reorder(actorID, stageID string, orderedApplicationIDs []string) (pipelineapimodels.MoveResult, error)
	BulkMove(actorID, targetStageID string, applicationIDs []string) ([]pipelineapimodels.BulkItemResult, error)
	Cancel(actorID string, applicationIDs []string) ([]pipelineapimodels.BulkItemResult, error)
	ConvertToEmployee(actorID, applicationID string) (employeeID string, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:         applicationstore.NewInstance(db.DB),
		stageStore:    stagestore.NewInstance(db.DB),
		employeeStore: employeestore.NewInstance(db.DB),
		directory:     directory.Instance,
		stages:        stagegraph.Instance,
		history:       applicationhistoryhandler.Instance,
		view:          pipelineview.Instance,
		notify:        notifier.Instance,
		runInTx: func(fn func(tx *gorm.DB) error) error {
			return db.DB.Transaction(fn)
		},
		applications: applicationstore.NewInstance,
		recruitments: recruitmentstore.NewInstance,
		employees:    employeestore.NewInstance,
	}
}

type impl struct {
	store         applicationstore.Provider
	stageStore    stagestore.Provider
	employeeStore employeestore.Provider
	directory     directory.Provider
	stages        stagegraph.Provider
	history       applicationhistoryhandler.Provider
	view          pipelineview.Provider
	notify        notifier.Provider

	// the transaction runner and the tx-bound store constructors are fields
	// so the write paths stay testable without a database
	runInTx      func(fn func(tx *gorm.DB) error) error
	applications func(tx *gorm.DB) applicationstore.Provider
	recruitments func(tx *gorm.DB) recruitmentstore.Provider
	employees    func(tx *gorm.DB) employeestore.Provider
}

func (i impl) MoveStage(actorID, applicationID, targetStageID string) (pipelineapimodels.MoveResult, error) {
	stage, err := i.stageStore.GetByID(targetStageID)
	if err != nil {
		return pipelineapimodels.MoveResult{}, err
	}
	if stage == nil {
		return pipelineapimodels.MoveResult{}, domainerrors.NewNotFound("stage not found")
	}
	if err = i.authorize(actorID, *stage); err != nil {
		return pipelineapimodels.MoveResult{}, err
	}
	var outcome moveOutcome
	err = i.runInTx(func(tx *gorm.DB) error {
		outcome, err = i.applyMove(tx, applicationID, *stage)
		return err
	})
	if err != nil {
		return pipelineapimodels.MoveResult{}, err
	}
	i.afterMove(actorID, outcome, *stage)
	i.notifyStage(actorID, *stage)
	return outcome.result, nil
}

func (i impl) Reorder(actorID, stageID string, orderedApplicationIDs []string) (pipelineapimodels.MoveResult, error) {
	stage, err := i.stageStore.GetByID(stageID)
	if err != nil {
		return pipelineapimodels.MoveResult{}, err
	}
	if stage == nil {
		return pipelineapimodels.MoveResult{}, domainerrors.NewNotFound("stage not found")
	}
	if err = i.authorize(actorID, *stage); err != nil {
		return pipelineapimodels.MoveResult{}, err
	}
	logger := log.WithField("stage_id", stageID)
	result := pipelineapimodels.MoveResult{StageID: stageID}
	movedIn := []moveOutcome{}
	err = i.runInTx(func(tx *gorm.DB) error {
		store := i.applications(tx)
		for idx, id := range orderedApplicationIDs {
			rec, err := store.GetByID(id)
			if err != nil {
				return err
			}
			if rec == nil || rec.RecruitmentID != stage.RecruitmentID {
				logger.WithField("application_id", id).Warn("skipped an unknown application during reorder")
				continue
			}
			if rec.StageID == nil || *rec.StageID != stage.ID {
				outcome, err := i.applyMove(tx, id, *stage)
				if err != nil {
					return err
				}
				movedIn = append(movedIn, outcome)
			}
			err = store.Update(id, map[string]interface{}{
				"sequence": idx,
			})
			if err != nil {
				return err
			}
		}
		if stage.StageType != models.StageTypeSelected {
			return nil
		}
		recruitment, err := i.recruitments(tx).GetByID(stage.RecruitmentID)
		if err != nil {
			return err
		}
		if recruitment == nil {
			return nil
		}
		count, err := store.CountInStage(stage.ID, true)
		if err != nil {
			return err
		}
		if vacancyFilled(count, recruitment.Vacancy) {
			result.Advisory = pipelineapimodels.AdvisoryVacancyFilled
			result.Vacancy = recruitment.Vacancy
		}
		return nil
	})
	if err != nil {
		return pipelineapimodels.MoveResult{}, err
	}
	for _, outcome := range movedIn {
		i.afterMove(actorID, outcome, *stage)
	}
	i.view.Invalidate(stage.RecruitmentID)
	if len(movedIn) != 0 {
		i.notifyStage(actorID, *stage)
	}
	return result, nil
}

func (i impl) BulkMove(actorID, targetStageID string, applicationIDs []string) ([]pipelineapimodels.BulkItemResult, error) {
	stage, err := i.stageStore.GetByID(targetStageID)
	if err != nil {
		return nil, err
	}
	if stage == nil {
		return nil, domainerrors.NewNotFound("stage not found")
	}
	if err = i.authorize(actorID, *stage); err != nil {
		return nil, err
	}
	results := make([]pipelineapimodels.BulkItemResult, 0, len(applicationIDs))
	moved := false
	for _, id := range applicationIDs {
		var outcome moveOutcome
		err = i.runInTx(func(tx *gorm.DB) error {
			var err error
			outcome, err = i.applyMove(tx, id, *stage)
			return err
		})
		if err != nil {
			results = append(results, pipelineapimodels.BulkItemResult{
				ApplicationID: id,
				Status:        pipelineapimodels.BulkStatusFail,
				Message:       err.Error(),
			})
			continue
		}
		i.afterMove(actorID, outcome, *stage)
		results = append(results, pipelineapimodels.BulkItemResult{
			ApplicationID: id,
			Status:        pipelineapimodels.BulkStatusSuccess,
			Advisory:      outcome.result.Advisory,
		})
		moved = true
	}
	if moved {
		i.notifyStage(actorID, *stage)
	}
	return results, nil
}

func (i impl) Cancel(actorID string, applicationIDs []string) ([]pipelineapimodels.BulkItemResult, error) {
	results := make([]pipelineapimodels.BulkItemResult, 0, len(applicationIDs))
	for _, id := range applicationIDs {
		rec, err := i.store.GetByID(id)
		if err != nil {
			return nil, err
		}
		if rec == nil {
			results = append(results, pipelineapimodels.BulkItemResult{
				ApplicationID: id,
				Status:        pipelineapimodels.BulkStatusFail,
				Message:       "application not found",
			})
			continue
		}
		if err = i.authorizeCancel(actorID, *rec); err != nil {
			if !domainerrors.IsAuthorization(err) {
				return nil, err
			}
			results = append(results, pipelineapimodels.BulkItemResult{
				ApplicationID: id,
				Status:        pipelineapimodels.BulkStatusFail,
				Message:       err.Error(),
			})
			continue
		}
		var outcome moveOutcome
		var cancelled dbmodels.Stage
		err = i.runInTx(func(tx *gorm.DB) error {
			var err error
			cancelled, err = i.stages.EnsureCancelledStage(tx, rec.RecruitmentID)
			if err != nil {
				return err
			}
			outcome, err = i.applyMove(tx, id, cancelled)
			return err
		})
		if err != nil {
			results = append(results, pipelineapimodels.BulkItemResult{
				ApplicationID: id,
				Status:        pipelineapimodels.BulkStatusFail,
				Message:       err.Error(),
			})
			continue
		}
		i.afterMove(actorID, outcome, cancelled)
		results = append(results, pipelineapimodels.BulkItemResult{
			ApplicationID: id,
			Status:        pipelineapimodels.BulkStatusSuccess,
		})
	}
	return results, nil
}

func (i impl) ConvertToEmployee(actorID, applicationID string) (employeeID string, err error) {
	rec, err := i.store.GetByID(applicationID)
	if err != nil {
		return "", err
	}
	if rec == nil {
		return "", domainerrors.NewNotFound("application not found")
	}
	if rec.Converted {
		return "", domainerrors.NewConflict("the application is already converted")
	}
	err = i.runInTx(func(tx *gorm.DB) error {
		empStore := i.employees(tx)
		existing, err := empStore.GetByEmail(rec.Email)
		if err != nil {
			return err
		}
		if existing != nil {
			return domainerrors.NewConflict("an employee with this email already exists")
		}
		firstName, lastName := splitName(rec.Name)
		employeeID, err = empStore.Create(dbmodels.Employee{
			FirstName:           firstName,
			LastName:            lastName,
			Email:               rec.Email,
			Phone:               rec.Mobile,
			IsActive:            true,
			IsDirectlyConverted: true,
		})
		if err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domainerrors.NewConflict("an employee with this email already exists")
			}
			return err
		}
		// conversion supersedes pipeline status
		return i.applications(tx).Update(applicationID, map[string]interface{}{
			"converted":             true,
			"converted_employee_id": employeeID,
			"hired":                 false,
			"canceled":              false,
		})
	})
	if err != nil {
		return "", err
	}
	i.history.Save(applicationID, rec.RecruitmentID, "", actorID, models.HistoryActionConverted, "converted to employee", nil)
	i.view.Invalidate(rec.RecruitmentID)
	return employeeID, nil
}

// moveOutcome is what one committed transition produced, carried out of the
// transaction for the audit record.
type moveOutcome struct {
	result       pipelineapimodels.MoveResult
	scheduleDate *time.Time
}

// applyMove is the single write path of the engine. It runs inside the
// caller's transaction: re-reads the application, derives the status flags
// from the target stage type, restores the interview date the application had
// the last time it sat on that stage and persists everything in one update.
func (i impl) applyMove(tx *gorm.DB, applicationID string, stage dbmodels.Stage) (moveOutcome, error) {
	store := i.applications(tx)
	rec, err := store.GetByID(applicationID)
	if err != nil {
		return moveOutcome{}, err
	}
	if rec == nil {
		return moveOutcome{}, domainerrors.NewNotFound("application not found")
	}
	if rec.RecruitmentID != stage.RecruitmentID {
		return moveOutcome{}, domainerrors.NewValidation("the application belongs to a different recruitment")
	}
	restored, err := i.history.ScheduleDateOnStage(rec.ID, stage.ID)
	if err != nil {
		return moveOutcome{}, err
	}
	rec.DeriveFlags(stage.StageType)
	updMap := map[string]interface{}{
		"stage_id":      stage.ID,
		"hired":         rec.Hired,
		"canceled":      rec.Canceled,
		"start_onboard": false,
		"schedule_date": restored,
	}
	if rec.Hired && rec.HiredDate == nil {
		updMap["hired_date"] = time.Now()
	}
	if err = store.Update(rec.ID, updMap); err != nil {
		return moveOutcome{}, err
	}
	outcome := moveOutcome{
		scheduleDate: restored,
		result: pipelineapimodels.MoveResult{
			ApplicationID: rec.ID,
			StageID:       stage.ID,
			Hired:         rec.Hired,
			Canceled:      rec.Canceled,
		},
	}
	if stage.StageType == models.StageTypeSelected && rec.Recruitment != nil {
		count, err := store.CountInStage(stage.ID, true)
		if err != nil {
			return moveOutcome{}, err
		}
		if vacancyFilled(count, rec.Recruitment.Vacancy) {
			outcome.result.Advisory = pipelineapimodels.AdvisoryVacancyFilled
			outcome.result.Vacancy = rec.Recruitment.Vacancy
		}
	}
	return outcome, nil
}

// afterMove runs the post-commit fan-out of a single transition.
func (i impl) afterMove(actorID string, outcome moveOutcome, stage dbmodels.Stage) {
	action := models.HistoryActionStageChanged
	description := fmt.Sprintf("moved to stage %v", stage.Label)
	if stage.StageType == models.StageTypeCancelled {
		action = models.HistoryActionCancelled
		description = "application cancelled"
	}
	i.history.Save(outcome.result.ApplicationID, stage.RecruitmentID, stage.ID, actorID, action, description, outcome.scheduleDate)
	i.view.Invalidate(stage.RecruitmentID)
}

func (i impl) authorize(actorID string, stage dbmodels.Stage) error {
	isSuper, err := i.directory.IsSuperuser(actorID)
	if err != nil {
		return err
	}
	isStageManager, err := i.directory.IsManagerOfStage(actorID, stage.ID)
	if err != nil {
		return err
	}
	isRecManager, err := i.directory.IsRecruitmentManager(actorID, stage.RecruitmentID)
	if err != nil {
		return err
	}
	if !canMove(isSuper, isStageManager, isRecManager) {
		return domainerrors.NewAuthorization("you are not allowed to manage this stage")
	}
	return nil
}

// authorizeCancel checks the actor against the application's current stage,
// since the cancelled stage may not exist yet.
func (i impl) authorizeCancel(actorID string, rec dbmodels.CandidateApplication) error {
	isSuper, err := i.directory.IsSuperuser(actorID)
	if err != nil {
		return err
	}
	isRecManager, err := i.directory.IsRecruitmentManager(actorID, rec.RecruitmentID)
	if err != nil {
		return err
	}
	isStageManager := false
	if rec.StageID != nil {
		isStageManager, err = i.directory.IsManagerOfStage(actorID, *rec.StageID)
		if err != nil {
			return err
		}
	}
	if !canMove(isSuper, isStageManager, isRecManager) {
		return domainerrors.NewAuthorization("you are not allowed to cancel this application")
	}
	return nil
}

func (i impl) notifyStage(actorID string, stage dbmodels.Stage) {
	managers, err := i.directory.StageManagers(stage.ID)
	if err != nil {
		log.WithError(err).
			WithField("stage_id", stage.ID).
			Warn("failed to resolve the stage managers for notification")
		return
	}
	actorName := models.SystemUser
	if actor, err := i.employeeStore.GetByID(actorID); err == nil && actor != nil {
		actorName = actor.GetFullName()
	}
	message := fmt.Sprintf("New candidate arrived on stage %v", stage.Label)
	i.notify.Notify(actorName, managers, message, config.Conf.Notify.PipelineURL)
}

func canMove(isSuper, isStageManager, isRecManager bool) bool {
	return isSuper || isStageManager || isRecManager
}

func vacancyFilled(count int64, vacancy int) bool {
	return vacancy > 0 && count >= int64(vacancy)
}

func splitName(full string) (firstName, lastName string) {
	parts := strings.Fields(full)
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}
