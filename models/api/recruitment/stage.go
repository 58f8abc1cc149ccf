package recruitmentapimodels

import (
	"ats-backend/models"
	dbmodels "ats-backend/models/db"

	"github.com/pkg/errors"
)

type StageAdd struct {
	Label          string           `json:"label"`
	StageType      models.StageType `json:"stage_type"`
	ManagerIDs     []string         `json:"manager_ids"`
	InterviewerIDs []string         `json:"interviewer_ids"`
}

func (s StageAdd) Validate() error {
	if s.Label == "" {
		return errors.New("stage label is required")
	}
	if !s.StageType.IsValid() {
		return errors.New("unknown stage type")
	}
	return nil
}

type StageOrderChange struct {
	StageID  string `json:"stage_id"`
	NewOrder int    `json:"new_order"`
}

func (s StageOrderChange) Validate() error {
	if s.StageID == "" {
		return errors.New("stage id is required")
	}
	if s.NewOrder < 0 {
		return errors.New("order must not be negative")
	}
	return nil
}

type StageView struct {
	ID             string           `json:"id"`
	RecruitmentID  string           `json:"recruitment_id"`
	Label          string           `json:"label"`
	StageType      models.StageType `json:"stage_type"`
	Sequence       int              `json:"sequence"`
	ManagerIDs     []string         `json:"manager_ids"`
	InterviewerIDs []string         `json:"interviewer_ids"`
}

func StageConvert(rec dbmodels.Stage) StageView {
	return StageView{
		ID:             rec.ID,
		RecruitmentID:  rec.RecruitmentID,
		Label:          rec.Label,
		StageType:      rec.StageType,
		Sequence:       rec.Sequence,
		ManagerIDs:     rec.EmployeesByRole(models.StageRoleManager),
		InterviewerIDs: rec.EmployeesByRole(models.StageRoleInterviewer),
	}
}
