package pipelineapimodels

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRequestValidation(t *testing.T) {
	t.Run(`move needs both ids`, func(t *testing.T) {
		require.NotNil(t, MoveRequest{}.Validate())
		require.NotNil(t, MoveRequest{ApplicationID: "a1"}.Validate())
		require.NotNil(t, MoveRequest{StageID: "s1"}.Validate())
		require.Nil(t, MoveRequest{ApplicationID: "a1", StageID: "s1"}.Validate())
	})

	t.Run(`reorder needs a stage and a non-empty list`, func(t *testing.T) {
		require.NotNil(t, ReorderRequest{StageID: "s1"}.Validate())
		require.NotNil(t, ReorderRequest{ApplicationIDs: []string{"a1"}}.Validate())
		require.Nil(t, ReorderRequest{StageID: "s1", ApplicationIDs: []string{"a1"}}.Validate())
	})

	t.Run(`bulk move needs a stage and a non-empty list`, func(t *testing.T) {
		require.NotNil(t, BulkMoveRequest{StageID: "s1"}.Validate())
		require.Nil(t, BulkMoveRequest{StageID: "s1", ApplicationIDs: []string{"a1"}}.Validate())
	})

	t.Run(`cancel needs a non-empty list`, func(t *testing.T) {
		require.NotNil(t, CancelRequest{}.Validate())
		require.Nil(t, CancelRequest{ApplicationIDs: []string{"a1"}}.Validate())
	})
}
