package pipelineapimodels

import (
	applicationapimodels "ats-backend/models/api/application"
	recruitmentapimodels "ats-backend/models/api/recruitment"

	"github.com/pkg/errors"
)

type MoveRequest struct {
	ApplicationID string `json:"application_id"`
	StageID       string `json:"stage_id"`
}

func (m MoveRequest) Validate() error {
	if m.ApplicationID == "" {
		return errors.New("application id is required")
	}
	if m.StageID == "" {
		return errors.New("stage id is required")
	}
	return nil
}

type ReorderRequest struct {
	StageID        string   `json:"stage_id"`
	ApplicationIDs []string `json:"application_ids"` // kanban order, index becomes sequence
}

func (r ReorderRequest) Validate() error {
	if r.StageID == "" {
		return errors.New("stage id is required")
	}
	if len(r.ApplicationIDs) == 0 {
		return errors.New("application list is empty")
	}
	return nil
}

type BulkMoveRequest struct {
	ApplicationIDs []string `json:"application_ids"`
	StageID        string   `json:"stage_id"`
}

func (b BulkMoveRequest) Validate() error {
	if len(b.ApplicationIDs) == 0 {
		return errors.New("application list is empty")
	}
	if b.StageID == "" {
		return errors.New("stage id is required")
	}
	return nil
}

type CancelRequest struct {
	ApplicationIDs []string `json:"application_ids"`
}

func (c CancelRequest) Validate() error {
	if len(c.ApplicationIDs) == 0 {
		return errors.New("application list is empty")
	}
	return nil
}

// MoveResult is the outcome of a single successful stage transition.
// Advisory is informational only, the transition already committed.
type MoveResult struct {
	ApplicationID string `json:"application_id"`
	StageID       string `json:"stage_id"`
	Hired         bool   `json:"hired"`
	Canceled      bool   `json:"canceled"`
	Advisory      string `json:"advisory,omitempty"`
	Vacancy       int    `json:"vacancy,omitempty"`
}

const AdvisoryVacancyFilled = "vacancy is filled"

type BulkItemResult struct {
	ApplicationID string `json:"application_id"`
	Status        string `json:"status"` //fail/success
	Message       string `json:"message,omitempty"`
	Advisory      string `json:"advisory,omitempty"`
}

const (
	BulkStatusSuccess = "success"
	BulkStatusFail    = "fail"
)

// BoardView is the kanban projection of one recruitment: stage columns in
// pipeline order, applications ordered by their display sequence.
type BoardView struct {
	Recruitment recruitmentapimodels.RecruitmentView `json:"recruitment"`
	Columns     []BoardColumn                        `json:"columns"`
}

type BoardColumn struct {
	Stage        recruitmentapimodels.StageView         `json:"stage"`
	Total        int64                                  `json:"total"` // badge count, active non-canceled
	Applications []applicationapimodels.ApplicationView `json:"applications"`
}
