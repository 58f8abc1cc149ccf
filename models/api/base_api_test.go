package apimodels

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPaginationGetPage(t *testing.T) {
	t.Run(`defaults`, func(t *testing.T) {
		page, limit := Pagination{}.GetPage()
		require.Equal(t, 1, page)
		require.Equal(t, 10, limit)
	})

	t.Run(`limit is capped at 100`, func(t *testing.T) {
		_, limit := Pagination{Limit: 500}.GetPage()
		require.Equal(t, 100, limit)
	})

	t.Run(`explicit values pass through`, func(t *testing.T) {
		page, limit := Pagination{Page: 3, Limit: 25}.GetPage()
		require.Equal(t, 3, page)
		require.Equal(t, 25, limit)
	})
}
