package todoquery

import (
	"strings"

	"github.com/dmitrijs2005/todokeeper/internal/server/models"
)

// Match reports whether t passes the filter, owner scope included.
func (f Filter) Match(t *models.Todo) bool {
	if t.OwnerID != f.OwnerID {
		return false
	}
	if f.Completed != nil && t.Completed != *f.Completed {
		return false
	}
	if f.Search != "" && !strings.Contains(strings.ToLower(t.Title), strings.ToLower(f.Search)) {
		return false
	}
	return true
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// LikePattern returns an ILIKE pattern matching titles that contain search.
// LIKE metacharacters in search are escaped.
func (f Filter) LikePattern() string {
	return "%" + likeEscaper.Replace(f.Search) + "%"
}
