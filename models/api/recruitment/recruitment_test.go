package recruitmentapimodels

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRecruitmentDataValidate(t *testing.T) {
	valid := RecruitmentData{
		Title:         "Backend engineer",
		Vacancy:       2,
		IsPublished:   true,
		JobPositionID: "pos-1",
	}

	t.Run(`valid data passes`, func(t *testing.T) {
		require.Nil(t, valid.Validate())
	})

	t.Run(`title is required`, func(t *testing.T) {
		data := valid
		data.Title = ""
		require.NotNil(t, data.Validate())
	})

	t.Run(`published requires a positive vacancy`, func(t *testing.T) {
		data := valid
		data.Vacancy = 0
		require.NotNil(t, data.Validate())

		data.IsPublished = false
		require.Nil(t, data.Validate())
	})

	t.Run(`event-based requires open positions`, func(t *testing.T) {
		data := valid
		data.IsEventBased = true
		require.NotNil(t, data.Validate())

		data.OpenPositionIDs = []string{"pos-1"}
		require.Nil(t, data.Validate())
	})

	t.Run(`non event-based requires the primary position`, func(t *testing.T) {
		data := valid
		data.JobPositionID = ""
		require.NotNil(t, data.Validate())
	})
}

func TestStageAddValidate(t *testing.T) {
	t.Run(`label and a known stage type are required`, func(t *testing.T) {
		require.NotNil(t, StageAdd{StageType: "test"}.Validate())
		require.NotNil(t, StageAdd{Label: "Test", StageType: "nonsense"}.Validate())
		require.Nil(t, StageAdd{Label: "Test", StageType: "test"}.Validate())
	})
}
