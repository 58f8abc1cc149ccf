package pipelineview

import (
	"time"

	"ats-backend/config"
	"ats-backend/db"
	applicationstore "ats-backend/lib/application/store"
	recruitmentstore "ats-backend/lib/recruitment/store"
	stagestore "ats-backend/lib/stage-graph/store"
	domainerrors "ats-backend/lib/utils/domain-errors"
	applicationapimodels "ats-backend/models/api/application"
	pipelineapimodels "ats-backend/models/api/pipeline"
	recruitmentapimodels "ats-backend/models/api/recruitment"
	dbmodels "ats-backend/models/db"

	log "github.com/sirupsen/logrus"
)

// Provider renders the read-only kanban projection. It never mutates state.
type Provider interface {
	Board(recruitmentID string) (pipelineapimodels.BoardView, error)
	Invalidate(recruitmentID string)
}

var Instance Provider

func NewHandler() {
	Instance = &impl{
		recruitmentStore: recruitmentstore.NewInstance(db.DB),
		stageStore:       stagestore.NewInstance(db.DB),
		applicationStore: applicationstore.NewInstance(db.DB),
		cache:            newBoardCache(time.Second * time.Duration(config.Conf.Board.CacheTTLInSec)),
	}
}

type impl struct {
	recruitmentStore recruitmentstore.Provider
	stageStore       stagestore.Provider
	applicationStore applicationstore.Provider
	cache            *boardCache
}

func (i *impl) Board(recruitmentID string) (pipelineapimodels.BoardView, error) {
	if i.cache != nil {
		if board, ok := i.cache.get(recruitmentID); ok {
			return board, nil
		}
	}
	board, err := i.buildBoard(recruitmentID)
	if err != nil {
		return pipelineapimodels.BoardView{}, err
	}
	if i.cache != nil {
		i.cache.put(recruitmentID, board)
	}
	return board, nil
}

func (i *impl) Invalidate(recruitmentID string) {
	if i.cache != nil {
		i.cache.invalidate(recruitmentID)
	}
}

// buildBoard is the direct read path, used both on cache miss and when the
// cache is absent.
func (i *impl) buildBoard(recruitmentID string) (pipelineapimodels.BoardView, error) {
	recruitment, err := i.recruitmentStore.GetByID(recruitmentID)
	if err != nil {
		return pipelineapimodels.BoardView{}, err
	}
	if recruitment == nil {
		return pipelineapimodels.BoardView{}, domainerrors.NewNotFound("recruitment not found")
	}
	stages, err := i.stageStore.List(recruitmentID)
	if err != nil {
		return pipelineapimodels.BoardView{}, err
	}
	applications, err := i.applicationStore.ListByRecruitment(recruitmentID)
	if err != nil {
		return pipelineapimodels.BoardView{}, err
	}
	board := pipelineapimodels.BoardView{
		Recruitment: recruitmentapimodels.RecruitmentConvert(*recruitment),
		Columns:     GroupByStage(stages, applications),
	}
	return board, nil
}

// GroupByStage builds one column per stage in pipeline order. Stages with no
// applications stay as empty columns. Within a column the application display
// sequence is preserved; applications pointing at an unknown stage are
// dropped from the board with a warning.
func GroupByStage(stages []dbmodels.Stage, applications []dbmodels.CandidateApplication) []pipelineapimodels.BoardColumn {
	byStage := make(map[string][]applicationapimodels.ApplicationView, len(stages))
	counts := make(map[string]int64, len(stages))
	known := make(map[string]bool, len(stages))
	for _, stage := range stages {
		known[stage.ID] = true
	}
	for _, rec := range applications {
		if rec.StageID == nil {
			continue
		}
		stageID := *rec.StageID
		if !known[stageID] {
			log.WithField("application_id", rec.ID).
				WithField("stage_id", stageID).
				Warn("application points at an unknown stage, dropped from the board")
			continue
		}
		byStage[stageID] = append(byStage[stageID], applicationapimodels.ApplicationConvert(rec))
		if !rec.Canceled {
			counts[stageID]++
		}
	}
	columns := make([]pipelineapimodels.BoardColumn, 0, len(stages))
	for _, stage := range stages {
		column := pipelineapimodels.BoardColumn{
			Stage: recruitmentapimodels.StageConvert(stage),
			Total: counts[stage.ID],
		}
		if list, ok := byStage[stage.ID]; ok {
			column.Applications = list
		} else {
			column.Applications = []applicationapimodels.ApplicationView{}
		}
		columns = append(columns, column)
	}
	return columns
}
