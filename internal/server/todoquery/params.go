// Package todoquery turns raw list parameters into a validated, bounded query
// plan: owner scope, filters, a whitelisted sort and a pagination window.
package todoquery

import (
	"strconv"
	"strings"

	"github.com/dmitrijs2005/todokeeper/internal/common"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// RawParams are list parameters as they arrive on the query string.
type RawParams struct {
	Completed string
	Search    string
	Sort      string
	Order     string
	Limit     string
	Offset    string
}

// Filter selects the todos of one owner. Completed is nil when the caller
// did not filter on it; Search is matched case-insensitively against titles.
type Filter struct {
	OwnerID   string
	Completed *bool
	Search    string
}

// Page is the window requested by the caller.
type Page struct {
	Limit  int
	Offset int
}

// Params is a complete, validated list query.
type Params struct {
	Filter Filter
	Sort   Sort
	Page   Page
}

// Meta describes the returned window.
type Meta struct {
	Limit   int
	Offset  int
	Total   int
	HasMore bool
}

// Parse validates raw list parameters for ownerID. Every rejection is a
// *common.ValidationError naming the offending parameter.
func Parse(ownerID string, raw RawParams) (Params, error) {
	p := Params{
		Filter: Filter{OwnerID: ownerID, Search: raw.Search},
		Page:   Page{Limit: DefaultLimit},
	}

	switch raw.Completed {
	case "":
	case "true", "false":
		v := raw.Completed == "true"
		p.Filter.Completed = &v
	default:
		return Params{}, common.NewValidationError("completed", "must be true or false")
	}

	sort, err := ParseSort(raw.Sort, raw.Order)
	if err != nil {
		return Params{}, err
	}
	p.Sort = sort

	if raw.Limit != "" {
		n, err := strconv.Atoi(strings.TrimSpace(raw.Limit))
		if err != nil || n < 1 || n > MaxLimit {
			return Params{}, common.NewValidationError("limit", "must be an integer between 1 and %d", MaxLimit)
		}
		p.Page.Limit = n
	}

	if raw.Offset != "" {
		n, err := strconv.Atoi(strings.TrimSpace(raw.Offset))
		if err != nil || n < 0 {
			return Params{}, common.NewValidationError("offset", "must be a non-negative integer")
		}
		p.Page.Offset = n
	}

	return p, nil
}

// Window checks the page against the size of the filtered set. An empty set
// yields common.ErrNoResults; an offset at or past the end yields a
// *common.OutOfBoundsError.
func (p Params) Window(total int) (Meta, error) {
	if total == 0 {
		return Meta{}, common.ErrNoResults
	}
	if p.Page.Offset >= total {
		return Meta{}, &common.OutOfBoundsError{Total: total}
	}
	return Meta{
		Limit:   p.Page.Limit,
		Offset:  p.Page.Offset,
		Total:   total,
		HasMore: p.Page.Offset+p.Page.Limit < total,
	}, nil
}
