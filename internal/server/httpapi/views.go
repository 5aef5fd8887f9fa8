package httpapi

import (
	"time"

	"github.com/dmitrijs2005/todokeeper/internal/server/models"
	"github.com/dmitrijs2005/todokeeper/internal/server/todoquery"
)

// UserView is the public face of a user; the password digest never leaves
// the server.
type UserView struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt,omitzero"`
}

func newUserView(u *models.User) UserView {
	return UserView{ID: u.ID, Email: u.Email, CreatedAt: u.CreatedAt}
}

type OwnerView struct {
	Email string `json:"email"`
}

type TodoView struct {
	ID          int64      `json:"id"`
	UserID      string     `json:"userId"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	User        *OwnerView `json:"user,omitempty"`
}

func newTodoView(t *models.Todo) TodoView {
	v := TodoView{
		ID:          t.ID,
		UserID:      t.OwnerID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	if t.OwnerEmail != "" {
		v.User = &OwnerView{Email: t.OwnerEmail}
	}
	return v
}

type MetaView struct {
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	Total   int  `json:"total"`
	HasMore bool `json:"hasMore"`
}

func newMetaView(m todoquery.Meta) MetaView {
	return MetaView{Limit: m.Limit, Offset: m.Offset, Total: m.Total, HasMore: m.HasMore}
}

type SignupResponse struct {
	Message string   `json:"message"`
	User    UserView `json:"user"`
}

type SigninResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      UserView  `json:"user"`
}

type ProfileResponse struct {
	User UserView `json:"user"`
}

type TodoResponse struct {
	Message string   `json:"message,omitempty"`
	Todo    TodoView `json:"todo"`
}

type ListResponse struct {
	Data []TodoView `json:"data"`
	Meta MetaView   `json:"meta"`
}
