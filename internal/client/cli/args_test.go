package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/dmitrijs2005/todokeeper/internal/client/client"
	"github.com/dmitrijs2005/todokeeper/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseID(t *testing.T) {
	id, err := parseID("show", []string{"42"})
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	_, err = parseID("show", nil)
	require.ErrorIs(t, err, errUsage)

	_, err = parseID("show", []string{"1", "2"})
	require.ErrorIs(t, err, errUsage)

	for _, bad := range []string{"abc", "0", "-3", "1.5"} {
		_, err = parseID("show", []string{bad})
		require.Error(t, err, bad)
	}
}

func TestParseListArgs(t *testing.T) {
	yes := true

	q, err := parseListArgs([]string{"completed=true", "search=milk", "sort=title", "order=desc", "limit=5", "offset=10"})
	require.NoError(t, err)
	assert.Equal(t, models.ListQuery{Completed: &yes, Search: "milk", Sort: "title", Order: "desc", Limit: 5, Offset: 10}, q)

	q, err = parseListArgs(nil)
	require.NoError(t, err)
	assert.Equal(t, models.ListQuery{}, q)

	for _, bad := range [][]string{
		{"completed=maybe"},
		{"limit=-1"},
		{"offset=x"},
		{"color=red"},
		{"search"},
		{"search="},
	} {
		_, err := parseListArgs(bad)
		require.Error(t, err, bad)
	}
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "server unavailable, try again later", describe(fmt.Errorf("%w: dial tcp", client.ErrUnavailable)))
	assert.Equal(t, "Todo not found", describe(&client.APIError{Status: 404, Message: "Todo not found"}))
	assert.Equal(t, "boom", describe(errors.New("boom")))
}
