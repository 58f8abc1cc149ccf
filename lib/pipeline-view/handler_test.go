package pipelineview

import (
	"testing"
	"time"

	pipelineapimodels "ats-backend/models/api/pipeline"
	dbmodels "ats-backend/models/db"

	"github.com/stretchr/testify/require"
)

func testStage(id, label string, sequence int) dbmodels.Stage {
	stage := dbmodels.Stage{Label: label, Sequence: sequence, RecruitmentID: "rec-1"}
	stage.ID = id
	return stage
}

func testApplication(id, stageID string, sequence int, canceled bool) dbmodels.CandidateApplication {
	rec := dbmodels.CandidateApplication{
		RecruitmentID: "rec-1",
		Name:          "Candidate " + id,
		Sequence:      sequence,
		Canceled:      canceled,
		IsActive:      true,
	}
	rec.ID = id
	if stageID != "" {
		rec.StageID = &stageID
	}
	return rec
}

func TestGroupByStage(t *testing.T) {
	stages := []dbmodels.Stage{
		testStage("s1", "Sourced", 1),
		testStage("s2", "Selected", 7),
	}

	t.Run(`applications land on their stage column in order`, func(t *testing.T) {
		applications := []dbmodels.CandidateApplication{
			testApplication("a1", "s1", 0, false),
			testApplication("a2", "s1", 1, true),
			testApplication("a3", "s2", 0, false),
		}
		columns := GroupByStage(stages, applications)
		require.Len(t, columns, 2)
		require.Equal(t, "s1", columns[0].Stage.ID)
		require.Len(t, columns[0].Applications, 2)
		require.Equal(t, "a1", columns[0].Applications[0].ID)
		require.Equal(t, "a2", columns[0].Applications[1].ID)
		require.Len(t, columns[1].Applications, 1)
	})

	t.Run(`the badge count skips canceled applications`, func(t *testing.T) {
		applications := []dbmodels.CandidateApplication{
			testApplication("a1", "s1", 0, false),
			testApplication("a2", "s1", 1, true),
		}
		columns := GroupByStage(stages, applications)
		require.Equal(t, int64(1), columns[0].Total)
	})

	t.Run(`empty stages stay as empty columns`, func(t *testing.T) {
		columns := GroupByStage(stages, nil)
		require.Len(t, columns, 2)
		for _, column := range columns {
			require.NotNil(t, column.Applications)
			require.Len(t, column.Applications, 0)
		}
	})

	t.Run(`unknown or missing stage drops the application`, func(t *testing.T) {
		applications := []dbmodels.CandidateApplication{
			testApplication("a1", "s-unknown", 0, false),
			testApplication("a2", "", 0, false),
		}
		columns := GroupByStage(stages, applications)
		for _, column := range columns {
			require.Len(t, column.Applications, 0)
		}
	})
}

func TestBoardCache(t *testing.T) {
	board := pipelineapimodels.BoardView{}

	t.Run(`hit until invalidated`, func(t *testing.T) {
		cache := newBoardCache(time.Minute)
		cache.put("rec-1", board)
		_, ok := cache.get("rec-1")
		require.True(t, ok)

		cache.invalidate("rec-1")
		_, ok = cache.get("rec-1")
		require.False(t, ok)
	})

	t.Run(`entries expire after the ttl`, func(t *testing.T) {
		cache := newBoardCache(10 * time.Millisecond)
		cache.put("rec-1", board)
		time.Sleep(25 * time.Millisecond)
		_, ok := cache.get("rec-1")
		require.False(t, ok)
	})

	t.Run(`invalidation is per recruitment`, func(t *testing.T) {
		cache := newBoardCache(time.Minute)
		cache.put("rec-1", board)
		cache.put("rec-2", board)
		cache.invalidate("rec-1")
		_, ok := cache.get("rec-2")
		require.True(t, ok)
	})
}
