// Package client talks to the blog API the way the browser app does: the
// identity cookie lives in a cookie jar and callers only ever see a
// display-safe profile.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Profile is the signed-in user as shown in the UI. It never carries the
// password or the token.
type Profile struct {
	ID             uint   `json:"id"`
	Username       string `json:"username"`
	Email          string `json:"email"`
	ProfilePicture string `json:"profilePicture"`
	IsAdmin        bool   `json:"isAdmin"`
}

// APIError is a non-2xx envelope decoded from the server.
type APIError struct {
	StatusCode int
	Message    string
	Fields     map[string][]string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d: %s", e.StatusCode, e.Message)
}

var ErrNotSignedIn = errors.New("client: not signed in")

type envelope struct {
	Success    bool                `json:"success"`
	StatusCode int                 `json:"statusCode"`
	Message    string              `json:"message"`
	Data       json.RawMessage     `json:"data"`
	Errors     map[string][]string `json:"errors"`
}

type Client struct {
	baseURL *url.URL
	http    *http.Client

	mu      sync.RWMutex
	session *Profile
}

type Option func(*Client)

// WithHTTPClient replaces the transport. Its Jar is overwritten.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		jar := c.http.Jar
		c.http = hc
		c.http.Jar = jar
	}
}

func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("client: parsing base url: %w", err)
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	c := &Client{
		baseURL: u,
		http:    &http.Client{Jar: jar, Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Session returns a copy of the current profile, or nil when signed out.
func (c *Client) Session() *Profile {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.session == nil {
		return nil
	}
	p := *c.session
	return &p
}

func (c *Client) setSession(p *Profile) {
	c.mu.Lock()
	c.session = p
	c.mu.Unlock()
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	target := c.baseURL.JoinPath(path)
	if len(query) > 0 {
		target.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return &APIError{StatusCode: resp.StatusCode, Message: env.Message, Fields: env.Errors}
	}
	if out != nil && len(env.Data) > 0 && string(env.Data) != "null" {
		return json.Unmarshal(env.Data, out)
	}
	return nil
}

func (c *Client) SignUp(ctx context.Context, username, email, password string) error {
	return c.do(ctx, http.MethodPost, "/auth/signup", nil, map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}, nil)
}

// SignIn accepts a username or an email as identifier.
func (c *Client) SignIn(ctx context.Context, identifier, password string) (*Profile, error) {
	var p Profile
	err := c.do(ctx, http.MethodPost, "/auth/signin", nil, map[string]string{
		"identifier": identifier,
		"password":   password,
	}, &p)
	if err != nil {
		return nil, err
	}
	c.setSession(&p)
	return c.Session(), nil
}

// SignOut forgets the local session even when the request fails.
func (c *Client) SignOut(ctx context.Context) error {
	defer c.setSession(nil)
	return c.do(ctx, http.MethodPost, "/user/signout", nil, nil, nil)
}

// ProfileUpdate holds the fields to change; nil means unchanged.
type ProfileUpdate struct {
	Username       *string `json:"username,omitempty"`
	Email          *string `json:"email,omitempty"`
	Password       *string `json:"password,omitempty"`
	ProfilePicture *string `json:"profilePicture,omitempty"`
}

func (c *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) (*Profile, error) {
	current := c.Session()
	if current == nil {
		return nil, ErrNotSignedIn
	}

	var p Profile
	if err := c.do(ctx, http.MethodPut, "/user/update/"+strconv.FormatUint(uint64(current.ID), 10), nil, update, &p); err != nil {
		return nil, err
	}
	c.setSession(&p)
	return c.Session(), nil
}

func (c *Client) DeleteAccount(ctx context.Context) error {
	current := c.Session()
	if current == nil {
		return ErrNotSignedIn
	}
	if err := c.do(ctx, http.MethodDelete, "/user/delete/"+strconv.FormatUint(uint64(current.ID), 10), nil, nil, nil); err != nil {
		return err
	}
	c.setSession(nil)
	return nil
}

type Post struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"userId"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Content   string    `json:"content"`
	Category  string    `json:"category"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type PostPage struct {
	Posts          []Post `json:"posts"`
	TotalPosts     int64  `json:"totalPosts"`
	LastMonthPosts int64  `json:"lastMonthPosts"`
}

type PostQuery struct {
	UserID     uint
	Category   string
	Slug       string
	PostID     uint
	SearchTerm string
	Page       int
	Limit      int
	Order      string
}

func (q PostQuery) values() url.Values {
	v := url.Values{}
	if q.UserID != 0 {
		v.Set("userId", strconv.FormatUint(uint64(q.UserID), 10))
	}
	if q.Category != "" {
		v.Set("category", q.Category)
	}
	if q.Slug != "" {
		v.Set("slug", q.Slug)
	}
	if q.PostID != 0 {
		v.Set("postId", strconv.FormatUint(uint64(q.PostID), 10))
	}
	if q.SearchTerm != "" {
		v.Set("searchTerm", q.SearchTerm)
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Order != "" {
		v.Set("order", q.Order)
	}
	return v
}

func (c *Client) GetPosts(ctx context.Context, q PostQuery) (*PostPage, error) {
	var page PostPage
	if err := c.do(ctx, http.MethodGet, "/post/getposts", q.values(), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

type NewPost struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category,omitempty"`
	Image    string `json:"image,omitempty"`
}

func (c *Client) CreatePost(ctx context.Context, post NewPost) (*Post, error) {
	var created Post
	if err := c.do(ctx, http.MethodPost, "/post/create", nil, post, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

type Comment struct {
	ID        uint      `json:"id"`
	PostID    uint      `json:"postId"`
	UserID    uint      `json:"userId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

func (c *Client) CreateComment(ctx context.Context, postID uint, content string) (*Comment, error) {
	var created Comment
	err := c.do(ctx, http.MethodPost, "/comment/create", nil, map[string]interface{}{
		"postId":  postID,
		"content": content,
	}, &created)
	if err != nil {
		return nil, err
	}
	return &created, nil
}
