package pipeline

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCanMove(t *testing.T) {
	t.Run(`any single role is enough`, func(t *testing.T) {
		require.True(t, canMove(true, false, false))
		require.True(t, canMove(false, true, false))
		require.True(t, canMove(false, false, true))
	})

	t.Run(`no role means no move`, func(t *testing.T) {
		require.False(t, canMove(false, false, false))
	})
}

func TestVacancyFilled(t *testing.T) {
	t.Run(`filled at and above the vacancy count`, func(t *testing.T) {
		require.True(t, vacancyFilled(2, 2))
		require.True(t, vacancyFilled(3, 2))
	})

	t.Run(`below the vacancy count`, func(t *testing.T) {
		require.False(t, vacancyFilled(1, 2))
	})

	t.Run(`zero vacancy never fills`, func(t *testing.T) {
		require.False(t, vacancyFilled(10, 0))
	})
}

func TestSplitName(t *testing.T) {
	t.Run(`first and last name`, func(t *testing.T) {
		firstName, lastName := splitName("Jane Doe")
		require.Equal(t, "Jane", firstName)
		require.Equal(t, "Doe", lastName)
	})

	t.Run(`middle names join the last name`, func(t *testing.T) {
		firstName, lastName := splitName("Jane Ann van Doe")
		require.Equal(t, "Jane", firstName)
		require.Equal(t, "Ann van Doe", lastName)
	})

	t.Run(`single word and empty input`, func(t *testing.T) {
		firstName, lastName := splitName("Prince")
		require.Equal(t, "Prince", firstName)
		require.Equal(t, "", lastName)

		firstName, lastName = splitName("  ")
		require.Equal(t, "", firstName)
		require.Equal(t, "", lastName)
	})
}
