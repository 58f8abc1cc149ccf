package applicationapimodels

import (
	"time"

	dbmodels "ats-backend/models/db"
)

type InterviewView struct {
	ID             string    `json:"id"`
	ApplicationID  string    `json:"application_id"`
	StageID        string    `json:"stage_id,omitempty"`
	InterviewDate  time.Time `json:"interview_date"`
	Description    string    `json:"description,omitempty"`
	Completed      bool      `json:"completed"`
	InterviewerIDs []string  `json:"interviewer_ids"`
}

func InterviewConvert(rec dbmodels.InterviewSchedule) InterviewView {
	view := InterviewView{
		ID:             rec.ID,
		ApplicationID:  rec.ApplicationID,
		InterviewDate:  rec.InterviewDate,
		Description:    rec.Description,
		Completed:      rec.Completed,
		InterviewerIDs: make([]string, 0, len(rec.Interviewers)),
	}
	if rec.StageID != nil {
		view.StageID = *rec.StageID
	}
	for _, interviewer := range rec.Interviewers {
		view.InterviewerIDs = append(view.InterviewerIDs, interviewer.EmployeeID)
	}
	return view
}

type NoteView struct {
	ID            string    `json:"id"`
	ApplicationID string    `json:"application_id"`
	StageID       string    `json:"stage_id,omitempty"`
	AuthorName    string    `json:"author_name,omitempty"`
	Description   string    `json:"description"`
	CreatedAt     time.Time `json:"created_at"`
}

func NoteConvert(rec dbmodels.StageNote) NoteView {
	view := NoteView{
		ID:            rec.ID,
		ApplicationID: rec.ApplicationID,
		Description:   rec.Description,
		CreatedAt:     rec.CreatedAt,
	}
	if rec.StageID != nil {
		view.StageID = *rec.StageID
	}
	if rec.Author != nil {
		view.AuthorName = rec.Author.GetFullName()
	}
	return view
}

type RatingView struct {
	ID            string `json:"id"`
	ApplicationID string `json:"application_id"`
	Skill         string `json:"skill"`
	Rating        int    `json:"rating"`
	Notes         string `json:"notes,omitempty"`
	RatedByName   string `json:"rated_by_name,omitempty"`
}

func RatingConvert(rec dbmodels.SkillRating) RatingView {
	view := RatingView{
		ID:            rec.ID,
		ApplicationID: rec.ApplicationID,
		Skill:         rec.Skill,
		Rating:        rec.Rating,
		Notes:         rec.Notes,
	}
	if rec.RatedBy != nil {
		view.RatedByName = rec.RatedBy.GetFullName()
	}
	return view
}
