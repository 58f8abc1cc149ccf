package dbmodels

import (
	"testing"

	"ats-backend/models"

	"github.com/stretchr/testify/require"
)

func TestDeriveFlags(t *testing.T) {
	t.Run(`selected stage sets hired`, func(t *testing.T) {
		rec := CandidateApplication{}
		rec.DeriveFlags(models.StageTypeSelected)
		require.True(t, rec.Hired)
		require.False(t, rec.Canceled)
	})

	t.Run(`cancelled stage sets canceled`, func(t *testing.T) {
		rec := CandidateApplication{Hired: true}
		rec.DeriveFlags(models.StageTypeCancelled)
		require.False(t, rec.Hired)
		require.True(t, rec.Canceled)
	})

	t.Run(`any other stage clears both flags`, func(t *testing.T) {
		rec := CandidateApplication{Hired: true, Canceled: true}
		rec.DeriveFlags(models.StageTypeL1Interview)
		require.False(t, rec.Hired)
		require.False(t, rec.Canceled)
	})

	t.Run(`conversion supersedes the stage type`, func(t *testing.T) {
		rec := CandidateApplication{Converted: true}
		rec.DeriveFlags(models.StageTypeSelected)
		require.False(t, rec.Hired)
		require.False(t, rec.Canceled)

		rec.DeriveFlags(models.StageTypeCancelled)
		require.False(t, rec.Hired)
		require.False(t, rec.Canceled)
	})
}
