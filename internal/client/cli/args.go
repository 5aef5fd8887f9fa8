package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/todokeeper/internal/client/client"
	"github.com/dmitrijs2005/todokeeper/internal/client/models"
)

var errUsage = errors.New("usage")

// parseID reads the single positive todo id argument of show/edit/toggle/delete.
func parseID(cmd string, args []string) (int64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("%w: %s <id>", errUsage, cmd)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid todo id %q", args[0])
	}
	return id, nil
}

// parseListArgs turns key=value pairs into a list query. Values are checked
// only for type; the server validates the rest.
func parseListArgs(args []string) (models.ListQuery, error) {
	var q models.ListQuery

	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || value == "" {
			return q, fmt.Errorf("%w: expected key=value, got %q", errUsage, arg)
		}

		switch strings.ToLower(key) {
		case "completed":
			b, err := strconv.ParseBool(value)
			if err != nil {
				return q, fmt.Errorf("completed must be true or false, got %q", value)
			}
			q.Completed = &b
		case "search":
			q.Search = value
		case "sort":
			q.Sort = value
		case "order":
			q.Order = value
		case "limit", "offset":
			n, err := strconv.Atoi(value)
			if err != nil || n < 0 {
				return q, fmt.Errorf("%s must be a non-negative integer, got %q", key, value)
			}
			if strings.EqualFold(key, "limit") {
				q.Limit = n
			} else {
				q.Offset = n
			}
		default:
			return q, fmt.Errorf("unknown list option %q", key)
		}
	}
	return q, nil
}

// describe renders err for the prompt.
func describe(err error) string {
	if errors.Is(err, client.ErrUnavailable) {
		return "server unavailable, try again later"
	}
	return err.Error()
}
