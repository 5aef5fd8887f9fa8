// Package models holds the client-side shapes of API payloads.
package models

import (
	"fmt"
	"net/url"
	"strconv"
	"time"
)

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// Session is the result of a successful signin.
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      User      `json:"user"`
}

type Owner struct {
	Email string `json:"email"`
}

type Todo struct {
	ID          int64     `json:"id"`
	UserID      string    `json:"userId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	User        *Owner    `json:"user,omitempty"`
}

func (t *Todo) String() string {
	mark := " "
	if t.Completed {
		mark = "x"
	}
	return fmt.Sprintf("[%s] %d  %s", mark, t.ID, t.Title)
}

// TodoInput is the body of create and replace.
type TodoInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

type Meta struct {
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	Total   int  `json:"total"`
	HasMore bool `json:"hasMore"`
}

type TodoPage struct {
	Data []Todo `json:"data"`
	Meta Meta   `json:"meta"`
}

// ListQuery holds list parameters. Zero values are not sent, so the server
// applies its defaults.
type ListQuery struct {
	Completed *bool
	Search    string
	Sort      string
	Order     string
	Limit     int
	Offset    int
}

// Values encodes q as a query string.
func (q ListQuery) Values() url.Values {
	v := url.Values{}
	if q.Completed != nil {
		v.Set("completed", strconv.FormatBool(*q.Completed))
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.Sort != "" {
		v.Set("sort", q.Sort)
	}
	if q.Order != "" {
		v.Set("order", q.Order)
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Offset > 0 {
		v.Set("offset", strconv.Itoa(q.Offset))
	}
	return v
}
