package todoquery

import (
	"cmp"
	"slices"
	"strings"

	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/dmitrijs2005/todokeeper/internal/server/models"
)

// SortField is one of the sortable todo attributes.
type SortField string

const (
	SortNone      SortField = ""
	SortTitle     SortField = "title"
	SortCreatedAt SortField = "createdAt"
	SortUpdatedAt SortField = "updatedAt"
	SortCompleted SortField = "completed"
)

// Direction is the sort direction.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Comparator orders two todos, like cmp.Compare.
type Comparator func(a, b *models.Todo) int

var comparators = map[SortField]Comparator{
	SortTitle: func(a, b *models.Todo) int {
		return strings.Compare(a.Title, b.Title)
	},
	SortCreatedAt: func(a, b *models.Todo) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	},
	SortUpdatedAt: func(a, b *models.Todo) int {
		return a.UpdatedAt.Compare(b.UpdatedAt)
	},
	SortCompleted: func(a, b *models.Todo) int {
		return cmp.Compare(boolRank(a.Completed), boolRank(b.Completed))
	},
}

// columns maps each sort field to its SQL column. Only these strings are ever
// interpolated into ORDER BY. Titles compare byte-wise in both backends.
var columns = map[SortField]string{
	SortTitle:     `t.title COLLATE "C"`,
	SortCreatedAt: "t.created_at",
	SortUpdatedAt: "t.updated_at",
	SortCompleted: "t.completed",
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Sort is a validated ordering. The zero value orders by id ascending.
type Sort struct {
	Field     SortField
	Direction Direction
}

// ParseSort validates a sort field and direction. Unknown fields or
// directions are rejected.
func ParseSort(field, order string) (Sort, error) {
	s := Sort{Field: SortField(field), Direction: Asc}

	if s.Field != SortNone {
		if _, ok := comparators[s.Field]; !ok {
			return Sort{}, common.NewValidationError("sort", "must be one of title, createdAt, updatedAt, completed")
		}
	}

	switch strings.ToLower(order) {
	case "", "asc", "ascending":
	case "desc", "descending":
		s.Direction = Desc
	default:
		return Sort{}, common.NewValidationError("order", "must be asc or desc")
	}

	return s, nil
}

// Compare orders a and b by the sort field, breaking ties by ascending id so
// the order is total.
func (s Sort) Compare(a, b *models.Todo) int {
	if c, ok := comparators[s.Field]; ok {
		r := c(a, b)
		if s.Direction == Desc {
			r = -r
		}
		if r != 0 {
			return r
		}
	}
	return cmp.Compare(a.ID, b.ID)
}

// Apply sorts todos in place.
func (s Sort) Apply(todos []*models.Todo) {
	slices.SortStableFunc(todos, s.Compare)
}

// OrderBy renders the ORDER BY clause (without the keyword) for the todos
// table aliased as t.
func (s Sort) OrderBy() string {
	col, ok := columns[s.Field]
	if !ok {
		return "t.id ASC"
	}
	dir := "ASC"
	if s.Direction == Desc {
		dir = "DESC"
	}
	return col + " " + dir + ", t.id ASC"
}
