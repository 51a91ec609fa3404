// Package apiclient is a typed HTTP client for the We Learn API.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/yigit/welearn/internal/app/models"
	"github.com/yigit/welearn/internal/app/models/dto"
)

// DefaultBaseURL points at a locally running API
const DefaultBaseURL = "http://localhost:8080/api"

// Client talks to the API. It is safe for concurrent use once configured.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithToken sets the bearer token sent on every request
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// New creates a client for baseURL, e.g. "http://localhost:8080/api".
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Token returns the bearer token in use
func (c *Client) Token() string {
	return c.token
}

// Session is the result of a successful login.
type Session struct {
	Token     string
	ExpiresAt time.Time
	Actor     models.Actor
}

type loginUser struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      loginUser `json:"user"`
}

// LoginTeacher authenticates a teacher and keeps the token for later calls.
func (c *Client) LoginTeacher(ctx context.Context, email, password string) (*Session, error) {
	return c.login(ctx, "/auth/login", models.RoleTeacher, email, password)
}

// LoginStudent authenticates a student and keeps the token for later calls.
func (c *Client) LoginStudent(ctx context.Context, email, password string) (*Session, error) {
	return c.login(ctx, "/loginStudent", models.RoleStudent, email, password)
}

func (c *Client) login(ctx context.Context, path string, role models.RoleType, email, password string) (*Session, error) {
	var resp loginResponse
	req := dto.LoginRequest{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, path, req, &resp); err != nil {
		return nil, err
	}

	c.token = resp.Token
	return &Session{
		Token:     resp.Token,
		ExpiresAt: resp.ExpiresAt,
		Actor: models.Actor{
			ID:    resp.User.ID,
			Name:  resp.User.Name,
			Email: resp.User.Email,
			Role:  role,
		},
	}, nil
}

// Verify reports whether the current token is still accepted.
func (c *Client) Verify(ctx context.Context) (bool, error) {
	var resp dto.VerifyResponse
	if err := c.do(ctx, http.MethodGet, "/auth/verify", nil, &resp); err != nil {
		if IsStatus(err, http.StatusUnauthorized) {
			return false, nil
		}
		return false, err
	}
	return resp.Valid, nil
}

// ListPosts returns every post, newest first.
func (c *Client) ListPosts(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	if err := c.do(ctx, http.MethodGet, "/posts", nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// SearchPosts runs a server side search.
func (c *Client) SearchPosts(ctx context.Context, term string) ([]models.Post, error) {
	var posts []models.Post
	path := "/posts/search?q=" + url.QueryEscape(term)
	if err := c.do(ctx, http.MethodGet, path, nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// GetPost fetches one post.
func (c *Client) GetPost(ctx context.Context, id int64) (*models.Post, error) {
	var post models.Post
	if err := c.do(ctx, http.MethodGet, postPath(id), nil, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// CreatePost publishes a post as the logged in actor.
func (c *Client) CreatePost(ctx context.Context, req dto.CreatePostRequest) (*models.Post, error) {
	var post models.Post
	if err := c.do(ctx, http.MethodPost, "/posts", req, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// UpdatePost sends a partial update.
func (c *Client) UpdatePost(ctx context.Context, id int64, req dto.UpdatePostRequest) (*models.Post, error) {
	var post models.Post
	if err := c.do(ctx, http.MethodPut, postPath(id), req, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// DeletePost removes a post.
func (c *Client) DeletePost(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, postPath(id), nil, nil)
}

// StudentPosts lists the posts written by one student.
func (c *Client) StudentPosts(ctx context.Context, studentID int64) ([]models.Post, error) {
	var posts []models.Post
	path := "/students/" + strconv.FormatInt(studentID, 10) + "/posts"
	if err := c.do(ctx, http.MethodGet, path, nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func postPath(id int64) string {
	return "/posts/" + strconv.FormatInt(id, 10)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("error encoding request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("error building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("error decoding %s %s response: %w", method, path, err)
	}
	return nil
}
