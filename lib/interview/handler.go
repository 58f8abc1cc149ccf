package interview

import (
	"ats-backend/db"
	applicationhistoryhandler "ats-backend/lib/application-history"
	applicationstore "ats-backend/lib/application/store"
	interviewstore "ats-backend/lib/interview/store"
	domainerrors "ats-backend/lib/utils/domain-errors"
	"ats-backend/models"
	applicationapimodels "ats-backend/models/api/application"
	dbmodels "ats-backend/models/db"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	// Schedule creates the interview and mirrors its date onto the
	// application's schedule_date, so the board shows the next appointment.
	Schedule(actorID, applicationID string, data applicationapimodels.InterviewAdd) (id string, err error)
	Complete(id string) error
	ListInterviews(applicationID string) ([]applicationapimodels.InterviewView, error)

	AddNote(actorID, applicationID string, data applicationapimodels.NoteAdd) (id string, err error)
	ListNotes(applicationID string) ([]applicationapimodels.NoteView, error)

	RateSkill(actorID, applicationID string, data applicationapimodels.RatingAdd) (id string, err error)
	UpdateRatingNotes(id, notes string) error
	ListRatings(applicationID string) ([]applicationapimodels.RatingView, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:            interviewstore.NewInstance(db.DB),
		applicationStore: applicationstore.NewInstance(db.DB),
		history:          applicationhistoryhandler.Instance,
	}
}

type impl struct {
	store            interviewstore.Provider
	applicationStore applicationstore.Provider
	history          applicationhistoryhandler.Provider
}

func (i impl) Schedule(actorID, applicationID string, data applicationapimodels.InterviewAdd) (id string, err error) {
	application, err := i.applicationStore.GetByID(applicationID)
	if err != nil {
		return "", err
	}
	if application == nil {
		return "", domainerrors.NewNotFound("application not found")
	}
	// the id is assigned up front so the interviewer rows can reference it
	// inside the same transaction
	id = uuid.New().String()
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		store := interviewstore.NewInstance(tx)
		rec := dbmodels.InterviewSchedule{
			ApplicationID: applicationID,
			StageID:       application.StageID,
			InterviewDate: data.InterviewDate,
			Description:   data.Description,
		}
		rec.ID = id
		if _, err := store.CreateSchedule(rec); err != nil {
			return err
		}
		if len(data.InterviewerIDs) != 0 {
			if err = store.SetInterviewers(id, data.InterviewerIDs); err != nil {
				return err
			}
		}
		return applicationstore.NewInstance(tx).Update(applicationID, map[string]interface{}{
			"schedule_date": data.InterviewDate,
		})
	})
	if err != nil {
		return "", err
	}
	stageID := ""
	if application.StageID != nil {
		stageID = *application.StageID
	}
	interviewDate := data.InterviewDate
	i.history.Save(applicationID, application.RecruitmentID, stageID, actorID, models.HistoryActionUpdated, "interview scheduled", &interviewDate)
	return id, nil
}

func (i impl) Complete(id string) error {
	rec, err := i.store.GetScheduleByID(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return domainerrors.NewNotFound("interview not found")
	}
	return i.store.UpdateSchedule(id, map[string]interface{}{
		"completed": true,
	})
}

func (i impl) ListInterviews(applicationID string) ([]applicationapimodels.InterviewView, error) {
	list, err := i.store.ListSchedules(applicationID)
	if err != nil {
		return nil, err
	}
	result := make([]applicationapimodels.InterviewView, 0, len(list))
	for _, rec := range list {
		result = append(result, applicationapimodels.InterviewConvert(rec))
	}
	return result, nil
}

func (i impl) AddNote(actorID, applicationID string, data applicationapimodels.NoteAdd) (id string, err error) {
	application, err := i.applicationStore.GetByID(applicationID)
	if err != nil {
		return "", err
	}
	if application == nil {
		return "", domainerrors.NewNotFound("application not found")
	}
	rec := dbmodels.StageNote{
		ApplicationID: applicationID,
		StageID:       application.StageID,
		Description:   data.Description,
	}
	if actorID != "" {
		rec.AuthorID = &actorID
	}
	id, err = i.store.CreateNote(rec)
	if err != nil {
		return "", err
	}
	stageID := ""
	if application.StageID != nil {
		stageID = *application.StageID
	}
	i.history.Save(applicationID, application.RecruitmentID, stageID, actorID, models.HistoryActionNote, "note added", nil)
	return id, nil
}

func (i impl) ListNotes(applicationID string) ([]applicationapimodels.NoteView, error) {
	list, err := i.store.ListNotes(applicationID)
	if err != nil {
		return nil, err
	}
	result := make([]applicationapimodels.NoteView, 0, len(list))
	for _, rec := range list {
		result = append(result, applicationapimodels.NoteConvert(rec))
	}
	return result, nil
}

func (i impl) RateSkill(actorID, applicationID string, data applicationapimodels.RatingAdd) (id string, err error) {
	application, err := i.applicationStore.GetByID(applicationID)
	if err != nil {
		return "", err
	}
	if application == nil {
		return "", domainerrors.NewNotFound("application not found")
	}
	rec := dbmodels.SkillRating{
		ApplicationID: applicationID,
		Skill:         data.Skill,
		Rating:        data.Rating,
		Notes:         data.Notes,
	}
	if actorID != "" {
		rec.RatedByID = &actorID
	}
	id, err = i.store.CreateRating(rec)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return "", domainerrors.NewConflict("this skill is already rated on the application")
		}
		return "", err
	}
	return id, nil
}

func (i impl) UpdateRatingNotes(id, notes string) error {
	return i.store.UpdateRatingNotes(id, notes)
}

func (i impl) ListRatings(applicationID string) ([]applicationapimodels.RatingView, error) {
	list, err := i.store.ListRatings(applicationID)
	if err != nil {
		return nil, err
	}
	result := make([]applicationapimodels.RatingView, 0, len(list))
	for _, rec := range list {
		result = append(result, applicationapimodels.RatingConvert(rec))
	}
	return result, nil
}
