package application

import (
	"testing"

	domainerrors "ats-backend/lib/utils/domain-errors"
	dbmodels "ats-backend/models/db"

	"github.com/stretchr/testify/require"
)

func TestValidateJobPosition(t *testing.T) {
	primary := "pos-primary"
	other := "pos-other"
	open := "pos-open"

	t.Run(`non event-based defaults to the primary position`, func(t *testing.T) {
		rec := dbmodels.CandidateApplication{}
		recruitment := dbmodels.Recruitment{JobPositionID: &primary}
		err := validateJobPosition(&rec, recruitment)
		require.Nil(t, err)
		require.NotNil(t, rec.JobPositionID)
		require.Equal(t, primary, *rec.JobPositionID)
	})

	t.Run(`event-based requires an explicit position`, func(t *testing.T) {
		rec := dbmodels.CandidateApplication{}
		recruitment := dbmodels.Recruitment{IsEventBased: true}
		err := validateJobPosition(&rec, recruitment)
		require.True(t, domainerrors.IsValidation(err))
	})

	t.Run(`position outside the open set is rejected`, func(t *testing.T) {
		rec := dbmodels.CandidateApplication{JobPositionID: &other}
		recruitment := dbmodels.Recruitment{
			IsEventBased: true,
			OpenPositions: []dbmodels.RecruitmentPosition{
				{JobPositionID: open},
			},
		}
		err := validateJobPosition(&rec, recruitment)
		require.True(t, domainerrors.IsValidation(err))
	})

	t.Run(`position from the open set is accepted`, func(t *testing.T) {
		openCopy := open
		rec := dbmodels.CandidateApplication{JobPositionID: &openCopy}
		recruitment := dbmodels.Recruitment{
			IsEventBased: true,
			OpenPositions: []dbmodels.RecruitmentPosition{
				{JobPositionID: open},
			},
		}
		require.Nil(t, validateJobPosition(&rec, recruitment))
	})

	t.Run(`primary position counts as open for non event-based`, func(t *testing.T) {
		primaryCopy := primary
		rec := dbmodels.CandidateApplication{JobPositionID: &primaryCopy}
		recruitment := dbmodels.Recruitment{JobPositionID: &primary}
		require.Nil(t, validateJobPosition(&rec, recruitment))
	})
}
