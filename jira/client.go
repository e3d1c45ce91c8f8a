// Package jira talks to the backend endpoints the Jira panel uses to show the
// organization and the cloud resources shared with an issue.
package jira

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"costconsole/backend/config"
)

// Error codes the panel turns into states instead of failures
const (
	CodeUserNotConnected        = "OJ0008"
	CodeOrganizationNotAssigned = "OJ0022"
)

const tokenTTL = 5 * time.Minute

var ErrNotConfigured = errors.New("jira integration not configured")

// State is what the panel shows for a user
type State string

const (
	StateReady                   State = "ready"
	StateUserNotConnected        State = "user_not_connected"
	StateOrganizationNotAssigned State = "organization_not_assigned"
)

// APIError is a non-2xx answer carrying a domain error code
type APIError struct {
	Status int
	Code   string
	Reason string
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("jira backend returned %d: %s", e.Status, e.Reason)
	}
	return fmt.Sprintf("jira backend returned %d (%s): %s", e.Status, e.Code, e.Reason)
}

// HasCode reports whether err is an APIError with the given code
func HasCode(err error, code string) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == code
}

type OrganizationAssignment struct {
	OrganizationID   string `json:"organization_id"`
	OrganizationName string `json:"organization_name"`
}

type UserAssignment struct {
	UserID     string `json:"auth_user_id"`
	EmployeeID string `json:"employee_id"`
}

type ShareableResource struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	CloudResourceID string  `json:"cloud_resource_id"`
	PoolID          *string `json:"pool_id"`
	BookingID       string  `json:"booking_id,omitempty"`
}

// Status is the panel state for a user together with what was resolved
type Status struct {
	State        State                   `json:"state"`
	Organization *OrganizationAssignment `json:"organization,omitempty"`
	User         *UserAssignment         `json:"user,omitempty"`
}

type Client struct {
	baseURL *url.URL
	issuer  string
	secret  []byte
	http    *http.Client
	now     func() time.Time
}

// NewClient builds a client from the Jira settings
func NewClient(cfg config.JiraConfig) (*Client, error) {
	if cfg.BaseURL == "" || cfg.SharedSecret == "" {
		return nil, ErrNotConfigured
	}
	base, err := url.Parse(strings.TrimSuffix(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid jira base url: %w", err)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: base,
		issuer:  cfg.Issuer,
		secret:  []byte(cfg.SharedSecret),
		http:    &http.Client{Timeout: timeout},
		now:     time.Now,
	}, nil
}

// token signs a short-lived HS256 token for the user on whose behalf the call is made
func (c *Client) token(subject string) (string, error) {
	now := c.now()
	claims := jwt.RegisteredClaims{
		Issuer:    c.issuer,
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

func (c *Client) get(ctx context.Context, path, subject string, out any) error {
	token, err := c.token(subject)
	if err != nil {
		return fmt.Errorf("error signing request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL.String()+path, nil)
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Authorization", "JWT "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("error making request to jira backend: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error reading response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode, Reason: strings.TrimSpace(string(body))}
		var payload struct {
			Error struct {
				Code   string `json:"error_code"`
				Reason string `json:"reason"`
			} `json:"error"`
		}
		if json.Unmarshal(body, &payload) == nil && payload.Error.Code != "" {
			apiErr.Code = payload.Error.Code
			apiErr.Reason = payload.Error.Reason
		}
		return apiErr
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("error parsing jira backend response: %w", err)
	}
	return nil
}

func (c *Client) GetOrganizationAssignment(ctx context.Context, userID string) (*OrganizationAssignment, error) {
	var out OrganizationAssignment
	if err := c.get(ctx, "/jira_bus/v2/organization_assignment", userID, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetUserAssignment(ctx context.Context, userID string) (*UserAssignment, error) {
	var out UserAssignment
	if err := c.get(ctx, "/jira_bus/v2/user_assignment", userID, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetShareableResources lists the resources attached to an issue
func (c *Client) GetShareableResources(ctx context.Context, userID, issueKey string) ([]ShareableResource, error) {
	var out struct {
		Resources []ShareableResource `json:"shareable_resources"`
	}
	path := "/jira_bus/v2/issue/" + url.PathEscape(issueKey) + "/shareable_resources"
	if err := c.get(ctx, path, userID, &out); err != nil {
		return nil, err
	}
	if out.Resources == nil {
		out.Resources = []ShareableResource{}
	}
	return out.Resources, nil
}

// Status resolves the panel state. Missing assignments are states, not errors.
func (c *Client) Status(ctx context.Context, userID string) (Status, error) {
	org, err := c.GetOrganizationAssignment(ctx, userID)
	if HasCode(err, CodeOrganizationNotAssigned) {
		return Status{State: StateOrganizationNotAssigned}, nil
	}
	if err != nil {
		return Status{}, err
	}

	user, err := c.GetUserAssignment(ctx, userID)
	if HasCode(err, CodeUserNotConnected) {
		return Status{State: StateUserNotConnected, Organization: org}, nil
	}
	if err != nil {
		return Status{}, err
	}

	return Status{State: StateReady, Organization: org, User: user}, nil
}
