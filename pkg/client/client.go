// Package client is the Go session client for the funding platform API.
//
// A Client holds the bearer credential obtained at login together with a
// cached copy of the authenticated profile. Any response with status 401
// destroys the session locally before the error is returned, so a caller can
// never keep issuing requests against a credential the server has rejected.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"
)

const (
	requestTimeout = 10 * time.Second
	readAttempts   = 3
	retryWait      = 100 * time.Millisecond
)

// ErrSessionExpired is returned when the server answers 401. The local
// session has already been destroyed when the caller sees this error.
var ErrSessionExpired = errors.New("session expired")

// APIError carries a non-401 error response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// User mirrors the server's user representation so importers of this package
// do not depend on the server's internal packages.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Phone     string    `json:"phone,omitempty"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Document mirrors one uploaded file attached to an application.
type Document struct {
	ID         string    `json:"id"`
	Type       string    `json:"document_type"`
	FileName   string    `json:"file_name"`
	SizeBytes  int64     `json:"size_bytes"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// Application mirrors the server's application representation.
type Application struct {
	ID          string            `json:"id"`
	OwnerID     string            `json:"owner_id"`
	FundType    string            `json:"fund_type"`
	Status      string            `json:"status"`
	Fields      ApplicationFields `json:"fields"`
	ReviewNotes string            `json:"review_notes,omitempty"`
	Documents   []Document        `json:"documents"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// Client is a session-holding API client. Safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client

	mu      sync.Mutex
	token   string
	profile *User
}

// New creates a Client for the given base URL (e.g. "http://localhost:8080").
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: requestTimeout},
	}
}

// Token returns the current bearer credential, empty when logged out.
func (c *Client) Token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

// Profile returns the cached user, nil when logged out.
func (c *Client) Profile() *User {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.profile
}

// LoggedIn reports whether a credential is held.
func (c *Client) LoggedIn() bool {
	return c.Token() != ""
}

type authPayload struct {
	Token string       `json:"token"`
	User  *User `json:"user"`
}

// Login authenticates and stores the returned credential and profile.
func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	var out authPayload
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &out); err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.token = out.Token
	c.profile = out.User
	c.mu.Unlock()
	return out.User, nil
}

// RegisterInput carries the fields for account creation.
type RegisterInput struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone,omitempty"`
}

// Register creates an account. It does not log in; call Login afterwards.
func (c *Client) Register(ctx context.Context, in RegisterInput) (*User, error) {
	var out authPayload
	if err := c.do(ctx, http.MethodPost, "/auth/register", in, &out); err != nil {
		return nil, err
	}
	return out.User, nil
}

// Logout revokes the credential server-side (best effort) and always
// destroys the local session.
func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/auth/logout", nil, nil)
	c.clearSession()
	if errors.Is(err, ErrSessionExpired) {
		// Already invalid server-side; the local session is gone either way.
		return nil
	}
	return err
}

// RefreshProfile re-fetches the authenticated user, validating that the
// credential is still accepted, and refreshes the cache.
func (c *Client) RefreshProfile(ctx context.Context) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &user); err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.profile = &user
	c.mu.Unlock()
	return &user, nil
}

// UpdateProfileInput uses pointers so omitted fields are left unchanged.
type UpdateProfileInput struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Phone     *string `json:"phone,omitempty"`
}

// UpdateProfile updates the caller's own profile and refreshes the cache.
func (c *Client) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodPut, "/auth/profile", in, &user); err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.profile = &user
	c.mu.Unlock()
	return &user, nil
}

// ChangePassword replaces the caller's password.
func (c *Client) ChangePassword(ctx context.Context, current, newPassword string) error {
	body := map[string]string{"current_password": current, "new_password": newPassword}
	return c.do(ctx, http.MethodPut, "/auth/change-password", body, nil)
}

// ApplicationFields mirrors the application form payload.
type ApplicationFields struct {
	BusinessName    string  `json:"business_name"`
	BusinessSector  string  `json:"business_sector"`
	Summary         string  `json:"summary"`
	AmountRequested float64 `json:"amount_requested"`
	YearsTrading    int     `json:"years_trading"`
}

// CreateApplication opens a new DRAFT application.
func (c *Client) CreateApplication(ctx context.Context, fundType string, fields ApplicationFields) (*Application, error) {
	var app Application
	body := map[string]any{"fund_type": fundType, "fields": fields}
	if err := c.do(ctx, http.MethodPost, "/applications", body, &app); err != nil {
		return nil, err
	}
	return &app, nil
}

// UpdateApplication replaces the form fields of an editable application.
func (c *Client) UpdateApplication(ctx context.Context, id string, fields ApplicationFields) (*Application, error) {
	var app Application
	body := map[string]any{"fields": fields}
	if err := c.do(ctx, http.MethodPut, "/applications/"+id, body, &app); err != nil {
		return nil, err
	}
	return &app, nil
}

// SubmitApplication moves the application into review.
func (c *Client) SubmitApplication(ctx context.Context, id string) (*Application, error) {
	var app Application
	if err := c.do(ctx, http.MethodPost, "/applications/"+id+"/submit", nil, &app); err != nil {
		return nil, err
	}
	return &app, nil
}

// GetApplication fetches a single application.
func (c *Client) GetApplication(ctx context.Context, id string) (*Application, error) {
	var app Application
	if err := c.do(ctx, http.MethodGet, "/applications/"+id, nil, &app); err != nil {
		return nil, err
	}
	return &app, nil
}

// MyApplications lists the caller's own applications.
func (c *Client) MyApplications(ctx context.Context) ([]*Application, error) {
	var apps []*Application
	if err := c.do(ctx, http.MethodGet, "/applications/my-applications", nil, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

// UploadDocument attaches a file to an editable application.
func (c *Client) UploadDocument(ctx context.Context, applicationID, documentType, fileName string, data []byte) (*Document, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.WriteField("documentType", documentType); err != nil {
		return nil, err
	}
	part, err := w.CreateFormFile("document", fileName)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/applications/"+applicationID+"/upload", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	var doc Document
	if err := c.send(req, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Pagination mirrors the server's pagination envelope.
type Pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

// ApplicationsPage is one page of the admin application listing.
type ApplicationsPage struct {
	Data       []*Application `json:"data"`
	Pagination Pagination            `json:"pagination"`
}

// ListApplicationsOptions are the admin listing filters.
type ListApplicationsOptions struct {
	Status   string
	FundType string
	Search   string
	Page     int
	Limit    int
}

// ListApplications is the admin listing with filters and pagination.
func (c *Client) ListApplications(ctx context.Context, opts ListApplicationsOptions) (*ApplicationsPage, error) {
	q := url.Values{}
	if opts.Status != "" {
		q.Set("status", opts.Status)
	}
	if opts.FundType != "" {
		q.Set("fundType", opts.FundType)
	}
	if opts.Search != "" {
		q.Set("search", opts.Search)
	}
	if opts.Page > 0 {
		q.Set("page", strconv.Itoa(opts.Page))
	}
	if opts.Limit > 0 {
		q.Set("limit", strconv.Itoa(opts.Limit))
	}

	path := "/applications/admin/all"
	if enc := q.Encode(); enc != "" {
		path += "?" + enc
	}

	var page ApplicationsPage
	if err := c.do(ctx, http.MethodGet, path, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// SetApplicationStatus applies a review transition (admin).
func (c *Client) SetApplicationStatus(ctx context.Context, id, status, reviewNotes string) (*Application, error) {
	var app Application
	body := map[string]string{"status": status}
	if reviewNotes != "" {
		body["review_notes"] = reviewNotes
	}
	if err := c.do(ctx, http.MethodPatch, "/applications/"+id+"/status", body, &app); err != nil {
		return nil, err
	}
	return &app, nil
}

// DeleteApplication removes an application and its documents (admin).
func (c *Client) DeleteApplication(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/applications/"+id, nil, nil)
}

// UsersPage is one page of the admin user listing.
type UsersPage struct {
	Data       []*User `json:"data"`
	Pagination Pagination     `json:"pagination"`
}

// ListUsers is the admin user listing.
func (c *Client) ListUsers(ctx context.Context, role, search string, page, limit int) (*UsersPage, error) {
	q := url.Values{}
	if role != "" {
		q.Set("role", role)
	}
	if search != "" {
		q.Set("search", search)
	}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	path := "/users"
	if enc := q.Encode(); enc != "" {
		path += "?" + enc
	}

	var out UsersPage
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SetUserRole changes a user's role (admin).
func (c *Client) SetUserRole(ctx context.Context, id, role string) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodPatch, "/users/"+id+"/role", map[string]string{"role": role}, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// SetUserActive toggles a user's active flag (admin).
func (c *Client) SetUserActive(ctx context.Context, id string, active bool) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodPatch, "/users/"+id+"/status", map[string]bool{"is_active": active}, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser removes an account and its applications (admin).
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/users/"+id, nil, nil)
}

// Stats is the admin aggregate overview.
type Stats struct {
	ApplicationsByStatus map[string]int64 `json:"applications_by_status"`
	UsersByRole          map[string]int64 `json:"users_by_role"`
}

// GetStats fetches the aggregate counts (admin).
func (c *Client) GetStats(ctx context.Context) (*Stats, error) {
	var stats Stats
	if err := c.do(ctx, http.MethodGet, "/users/stats/overview", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// do builds a JSON request and sends it. GET requests are retried up to
// readAttempts times on transport failure; mutations are sent exactly once.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return err
		}
	}

	attempts := 1
	if method == http.MethodGet {
		attempts = readAttempts
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(retryWait * time.Duration(attempt)):
			}
		}

		var reader io.Reader
		if payload != nil {
			reader = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
		if err != nil {
			return err
		}
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		err = c.send(req, out)
		if err == nil {
			return nil
		}

		// Server answered: API and session errors are never retried.
		var apiErr *APIError
		if errors.Is(err, ErrSessionExpired) || errors.As(err, &apiErr) {
			return err
		}
		lastErr = err
	}
	return lastErr
}

// send attaches the bearer credential, executes the request and decodes the
// response. A 401 destroys the session before ErrSessionExpired is returned.
func (c *Client) send(req *http.Request, out any) error {
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		c.clearSession()
		return ErrSessionExpired
	}

	if resp.StatusCode >= 400 {
		var envelope struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&envelope)
		if envelope.Error == "" {
			envelope.Error = resp.Status
		}
		return &APIError{StatusCode: resp.StatusCode, Message: envelope.Error}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) clearSession() {
	c.mu.Lock()
	c.token = ""
	c.profile = nil
	c.mu.Unlock()
}
