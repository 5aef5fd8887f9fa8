package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/todokeeper/internal/client/models"
	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/google/uuid"
)

// HTTPClient talks to the todokeeper REST API. The bearer token set with
// SetToken is attached to every request.
type HTTPClient struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
}

func NewHTTPClient(baseURL string, timeout time.Duration) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server address %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid server address %q: scheme must be http or https", baseURL)
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}, nil
}

func (c *HTTPClient) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *HTTPClient) bearer() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/ping", nil, nil)
}

func (c *HTTPClient) Signup(ctx context.Context, email string, password []byte) (*models.User, error) {
	var resp struct {
		User models.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodPost, "/signup", credentials{email, string(password)}, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

func (c *HTTPClient) Signin(ctx context.Context, email string, password []byte) (*models.Session, error) {
	var resp models.Session
	if err := c.do(ctx, http.MethodPost, "/signin", credentials{email, string(password)}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) Profile(ctx context.Context) (*models.User, error) {
	var resp struct {
		User models.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/profile", nil, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

func (c *HTTPClient) ListTodos(ctx context.Context, q models.ListQuery) (*models.TodoPage, error) {
	path := "/todos"
	if v := q.Values(); len(v) > 0 {
		path += "?" + v.Encode()
	}

	var page models.TodoPage
	if err := c.do(ctx, http.MethodGet, path, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

type todoEnvelope struct {
	Todo models.Todo `json:"todo"`
}

func todoPath(id int64) string {
	return "/todos/" + strconv.FormatInt(id, 10)
}

func (c *HTTPClient) GetTodo(ctx context.Context, id int64) (*models.Todo, error) {
	var resp todoEnvelope
	if err := c.do(ctx, http.MethodGet, todoPath(id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Todo, nil
}

func (c *HTTPClient) CreateTodo(ctx context.Context, title, description string) (*models.Todo, error) {
	var resp todoEnvelope
	body := models.TodoInput{Title: title, Description: description}
	if err := c.do(ctx, http.MethodPost, "/todos", body, &resp); err != nil {
		return nil, err
	}
	return &resp.Todo, nil
}

func (c *HTTPClient) ReplaceTodo(ctx context.Context, id int64, in models.TodoInput) (*models.Todo, error) {
	var resp todoEnvelope
	if err := c.do(ctx, http.MethodPut, todoPath(id), in, &resp); err != nil {
		return nil, err
	}
	return &resp.Todo, nil
}

func (c *HTTPClient) ToggleTodo(ctx context.Context, id int64) (*models.Todo, error) {
	var resp todoEnvelope
	if err := c.do(ctx, http.MethodPatch, todoPath(id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Todo, nil
}

func (c *HTTPClient) DeleteTodo(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, todoPath(id), nil, nil)
}

// do sends one request. A non-2xx response becomes *APIError; transport
// failures wrap ErrUnavailable.
func (c *HTTPClient) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(common.RequestIDHeaderName, uuid.NewString())
	if token := c.bearer(); token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerScheme+" "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
			Field   string `json:"field"`
			Meta    *struct {
				Total int `json:"total"`
			} `json:"meta"`
		} `json:"error"`
	}

	apiErr := &APIError{Status: resp.StatusCode}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil {
		apiErr.Code = envelope.Error.Code
		apiErr.Message = envelope.Error.Message
		apiErr.Field = envelope.Error.Field
		if envelope.Error.Meta != nil {
			apiErr.Total = envelope.Error.Meta.Total
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	if resp.StatusCode >= 500 {
		return fmt.Errorf("%w: %s", ErrUnavailable, apiErr.Message)
	}
	return apiErr
}
