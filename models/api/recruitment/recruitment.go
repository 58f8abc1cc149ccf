package recruitmentapimodels

import (
	"time"

	apimodels "ats-backend/models/api"
	dbmodels "ats-backend/models/db"

	"github.com/pkg/errors"
)

type RecruitmentData struct {
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Vacancy         int        `json:"vacancy"`
	IsEventBased    bool       `json:"is_event_based"`
	IsPublished     bool       `json:"is_published"`
	JobPositionID   string     `json:"job_position_id"`
	OpenPositionIDs []string   `json:"open_position_ids"`
	StartDate       time.Time  `json:"start_date"`
	EndDate         *time.Time `json:"end_date"`

	ManagerIDs        []string `json:"manager_ids"`
	DefaultManagerIDs []string `json:"default_manager_ids"`
	L1InterviewerIDs  []string `json:"l1_interviewer_ids"`
	L2InterviewerIDs  []string `json:"l2_interviewer_ids"`
	L3InterviewerIDs  []string `json:"l3_interviewer_ids"`
}

func (r RecruitmentData) Validate() error {
	if r.Title == "" {
		return errors.New("title is required")
	}
	if r.IsPublished && r.Vacancy <= 0 {
		return errors.New("vacancy must be greater than zero if the recruitment is published")
	}
	if r.IsEventBased && len(r.OpenPositionIDs) == 0 {
		return errors.New("open positions are required for an event based recruitment")
	}
	if !r.IsEventBased && r.JobPositionID == "" {
		return errors.New("job position is required")
	}
	return nil
}

type RecruitmentFilter struct {
	apimodels.Pagination
	Search      string `json:"search"`
	OnlyOpen    bool   `json:"only_open"`
	IsPublished *bool  `json:"is_published"`
}

func (r RecruitmentFilter) Validate() error {
	return nil
}

type RecruitmentView struct {
	ID            string      `json:"id"`
	Title         string      `json:"title"`
	Description   string      `json:"description,omitempty"`
	Vacancy       int         `json:"vacancy"`
	IsEventBased  bool        `json:"is_event_based"`
	Closed        bool        `json:"closed"`
	IsPublished   bool        `json:"is_published"`
	JobPositionID string      `json:"job_position_id,omitempty"`
	StartDate     time.Time   `json:"start_date"`
	EndDate       *time.Time  `json:"end_date,omitempty"`
	OpenPositions []string    `json:"open_positions"`
	Stages        []StageView `json:"stages,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
}

func RecruitmentConvert(rec dbmodels.Recruitment) RecruitmentView {
	view := RecruitmentView{
		ID:            rec.ID,
		Title:         rec.Title,
		Description:   rec.Description,
		Vacancy:       rec.Vacancy,
		IsEventBased:  rec.IsEventBased,
		Closed:        rec.Closed,
		IsPublished:   rec.IsPublished,
		StartDate:     rec.StartDate,
		EndDate:       rec.EndDate,
		OpenPositions: make([]string, 0, len(rec.OpenPositions)),
		CreatedAt:     rec.CreatedAt,
	}
	if rec.JobPositionID != nil {
		view.JobPositionID = *rec.JobPositionID
	}
	for _, pos := range rec.OpenPositions {
		view.OpenPositions = append(view.OpenPositions, pos.JobPositionID)
	}
	return view
}
