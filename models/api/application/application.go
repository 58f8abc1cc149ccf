package applicationapimodels

import (
	"strings"
	"time"

	"ats-backend/models"
	apimodels "ats-backend/models/api"
	dbmodels "ats-backend/models/db"

	"github.com/pkg/errors"
)

type ApplicationData struct {
	RecruitmentID string                   `json:"recruitment_id"`
	JobPositionID string                   `json:"job_position_id"`
	Name          string                   `json:"name"`
	Email         string                   `json:"email"`
	Mobile        string                   `json:"mobile"`
	Gender        string                   `json:"gender"`
	Source        models.ApplicationSource `json:"source"`
}

func (a ApplicationData) Validate() error {
	if a.RecruitmentID == "" {
		return errors.New("recruitment id is required")
	}
	if a.Name == "" {
		return errors.New("name is required")
	}
	if a.Email == "" || !strings.Contains(a.Email, "@") {
		return errors.New("a valid email is required")
	}
	return nil
}

func (a ApplicationData) ToModel() dbmodels.CandidateApplication {
	rec := dbmodels.CandidateApplication{
		RecruitmentID: a.RecruitmentID,
		Name:          a.Name,
		Email:         strings.ToLower(strings.TrimSpace(a.Email)),
		Mobile:        a.Mobile,
		Gender:        a.Gender,
		Source:        a.Source,
	}
	if a.JobPositionID != "" {
		jobPositionID := a.JobPositionID
		rec.JobPositionID = &jobPositionID
	}
	return rec
}

type ApplicationFilter struct {
	apimodels.Pagination
	RecruitmentID string `json:"recruitment_id"`
	StageID       string `json:"stage_id"`
	Search        string `json:"search"`
	OnlyActive    bool   `json:"only_active"`
}

func (a ApplicationFilter) Validate() error {
	return nil
}

type ApplicationView struct {
	ID                string                   `json:"id"`
	RecruitmentID     string                   `json:"recruitment_id"`
	StageID           string                   `json:"stage_id,omitempty"`
	StageLabel        string                   `json:"stage_label,omitempty"`
	JobPositionID     string                   `json:"job_position_id,omitempty"`
	Name              string                   `json:"name"`
	Email             string                   `json:"email"`
	Mobile            string                   `json:"mobile,omitempty"`
	Source            models.ApplicationSource `json:"source,omitempty"`
	Sequence          int                      `json:"sequence"`
	Hired             bool                     `json:"hired"`
	Canceled          bool                     `json:"canceled"`
	Converted         bool                     `json:"converted"`
	ScheduleDate      *time.Time               `json:"schedule_date,omitempty"`
	OfferLetterStatus models.OfferLetterStatus `json:"offer_letter_status"`
	IsActive          bool                     `json:"is_active"`
	CreatedAt         time.Time                `json:"created_at"`
}

func ApplicationConvert(rec dbmodels.CandidateApplication) ApplicationView {
	view := ApplicationView{
		ID:                rec.ID,
		RecruitmentID:     rec.RecruitmentID,
		Name:              rec.Name,
		Email:             rec.Email,
		Mobile:            rec.Mobile,
		Source:            rec.Source,
		Sequence:          rec.Sequence,
		Hired:             rec.Hired,
		Canceled:          rec.Canceled,
		Converted:         rec.Converted,
		ScheduleDate:      rec.ScheduleDate,
		OfferLetterStatus: rec.OfferLetterStatus,
		IsActive:          rec.IsActive,
		CreatedAt:         rec.CreatedAt,
	}
	if rec.StageID != nil {
		view.StageID = *rec.StageID
	}
	if rec.Stage != nil {
		view.StageLabel = rec.Stage.Label
	}
	if rec.JobPositionID != nil {
		view.JobPositionID = *rec.JobPositionID
	}
	return view
}

type SequenceUpdate struct {
	Sequence int `json:"sequence"`
}

func (s SequenceUpdate) Validate() error {
	if s.Sequence < 0 {
		return errors.New("sequence must not be negative")
	}
	return nil
}

type HistoryView struct {
	ID           string               `json:"id"`
	StageID      string               `json:"stage_id,omitempty"`
	UserName     string               `json:"user_name,omitempty"`
	Action       models.HistoryAction `json:"action"`
	Description  string               `json:"description,omitempty"`
	ScheduleDate *time.Time           `json:"schedule_date,omitempty"`
	CreatedAt    time.Time            `json:"created_at"`
}

func HistoryConvert(rec dbmodels.ApplicationHistory) HistoryView {
	view := HistoryView{
		ID:           rec.ID,
		UserName:     rec.UserName,
		Action:       rec.Action,
		Description:  rec.Description,
		ScheduleDate: rec.ScheduleDate,
		CreatedAt:    rec.CreatedAt,
	}
	if rec.StageID != nil {
		view.StageID = *rec.StageID
	}
	return view
}

type NoteAdd struct {
	Description string `json:"description"`
}

func (n NoteAdd) Validate() error {
	if n.Description == "" {
		return errors.New("note text is required")
	}
	return nil
}

type RatingAdd struct {
	Skill  string `json:"skill"`
	Rating int    `json:"rating"`
	Notes  string `json:"notes"`
}

func (r RatingAdd) Validate() error {
	if r.Skill == "" {
		return errors.New("skill is required")
	}
	if r.Rating < 1 || r.Rating > 5 {
		return errors.New("rating must be between 1 and 5")
	}
	return nil
}

type InterviewAdd struct {
	InterviewDate  time.Time `json:"interview_date"`
	Description    string    `json:"description"`
	InterviewerIDs []string  `json:"interviewer_ids"`
}

func (i InterviewAdd) Validate() error {
	if i.InterviewDate.IsZero() {
		return errors.New("interview date is required")
	}
	return nil
}
