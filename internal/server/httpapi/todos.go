package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/todokeeper/internal/server/todoquery"
	"github.com/gin-gonic/gin"
)

type createTodoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type replaceTodoRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   looseBool `json:"completed"`
}

// looseBool is true for JSON true and the string "true"; any other value,
// including a missing field, is false.
type looseBool bool

func (b *looseBool) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*b = looseBool(v == true || v == "true")
	return nil
}

// todoID parses the :id path parameter as a positive integer.
func todoID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		abortWithError(c, badRequest(invalidTodoIDMessage, "id"))
		return 0, false
	}
	return id, true
}

func (h *Handler) ListTodos(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	p, err := todoquery.Parse(owner, todoquery.RawParams{
		Completed: c.Query("completed"),
		Search:    c.Query("search"),
		Sort:      c.Query("sort"),
		Order:     c.Query("order"),
		Limit:     c.Query("limit"),
		Offset:    c.Query("offset"),
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	res, err := h.todos.List(c.Request.Context(), p)
	if err != nil {
		abortWithError(c, err)
		return
	}

	data := make([]TodoView, 0, len(res.Items))
	for _, t := range res.Items {
		data = append(data, newTodoView(t))
	}
	c.JSON(http.StatusOK, ListResponse{Data: data, Meta: newMetaView(res.Meta)})
}

func (h *Handler) GetTodo(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	id, ok := todoID(c)
	if !ok {
		return
	}

	t, err := h.todos.Get(c.Request.Context(), owner, id)
	if err != nil {
		abortWithError(c, notFound("Todo", err))
		return
	}

	c.JSON(http.StatusOK, TodoResponse{Todo: newTodoView(t)})
}

func (h *Handler) CreateTodo(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	var req createTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, badRequest(malformedBodyMessage, ""))
		return
	}

	t, err := h.todos.Create(c.Request.Context(), owner, req.Title, req.Description)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, TodoResponse{Todo: newTodoView(t)})
}

func (h *Handler) ReplaceTodo(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	id, ok := todoID(c)
	if !ok {
		return
	}

	var req replaceTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, badRequest(malformedBodyMessage, ""))
		return
	}

	t, err := h.todos.Replace(c.Request.Context(), owner, id, req.Title, req.Description, bool(req.Completed))
	if err != nil {
		abortWithError(c, notFound("Todo", err))
		return
	}

	c.JSON(http.StatusCreated, TodoResponse{Todo: newTodoView(t)})
}

func (h *Handler) ToggleTodo(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	id, ok := todoID(c)
	if !ok {
		return
	}

	t, err := h.todos.Toggle(c.Request.Context(), owner, id)
	if err != nil {
		abortWithError(c, notFound("Todo", err))
		return
	}

	c.JSON(http.StatusOK, TodoResponse{Message: "todo updated", Todo: newTodoView(t)})
}

func (h *Handler) DeleteTodo(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	id, ok := todoID(c)
	if !ok {
		return
	}

	if err := h.todos.Delete(c.Request.Context(), owner, id); err != nil {
		abortWithError(c, notFound("Todo", err))
		return
	}

	c.Status(http.StatusNoContent)
}
