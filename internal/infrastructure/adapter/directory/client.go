package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/amirhossein-jamali/account-opening-service/internal/domain/entity"
	errs "github.com/amirhossein-jamali/account-opening-service/internal/domain/error"
	coreport "github.com/amirhossein-jamali/account-opening-service/internal/domain/port/core"
	directoryport "github.com/amirhossein-jamali/account-opening-service/internal/domain/port/directory"
)

// userRecord mirrors the directory service's wire format
type userRecord struct {
	ID          string `json:"id"`
	Surname     string `json:"surname"`
	GivenName   string `json:"givenName"`
	Mail        string `json:"mail"`
	DisplayName string `json:"displayName"`
}

// Client fetches candidate users from the corporate directory over HTTP
type Client struct {
	config     Config
	httpClient *http.Client
	logger     coreport.Logger
}

// Compile-time check that Client implements the Gateway interface
var _ directoryport.Gateway = (*Client)(nil)

// NewClient creates a directory client with its own tuned transport
func NewClient(config Config, logger coreport.Logger) *Client {
	return &Client{
		config:     config,
		httpClient: newHTTPClient(config.Timeout),
		logger:     logger,
	}
}

// newHTTPClient builds an HTTP client for directory calls.
// http.DefaultClient carries no timeout, so a custom client is always used.
func newHTTPClient(timeout time.Duration) *http.Client {
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: t}
}

// FetchUsers queries the directory's user search. The directory expects a
// POST with a JSON criteria object; an empty criteria returns every entry
// visible to this service account.
func (c *Client) FetchUsers(ctx context.Context) ([]entity.DirectoryUser, error) {
	endpoint := strings.TrimRight(c.config.BaseURL, "/") + "/users"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader("{}"))
	if err != nil {
		return nil, fmt.Errorf("%w: building directory request: %s", errs.ErrDirectoryUnavailable, err.Error())
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Directory request failed", map[string]any{
			"endpoint": endpoint,
			"error":    err.Error(),
		})
		return nil, errs.NewDirectoryError(endpoint, 0)
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			c.logger.Warn("Failed to close directory response body", map[string]any{
				"error": err.Error(),
			})
		}
	}()

	if res.StatusCode >= 400 {
		c.logger.Error("Directory returned an error status", map[string]any{
			"endpoint": endpoint,
			"status":   res.StatusCode,
		})
		return nil, errs.NewDirectoryError(endpoint, res.StatusCode)
	}

	var records []userRecord
	if err := json.NewDecoder(res.Body).Decode(&records); err != nil {
		c.logger.Error("Failed to decode directory response", map[string]any{
			"endpoint": endpoint,
			"error":    err.Error(),
		})
		return nil, fmt.Errorf("%w: decoding directory response: %s", errs.ErrDirectoryUnavailable, err.Error())
	}

	users := make([]entity.DirectoryUser, 0, len(records))
	for _, record := range records {
		users = append(users, entity.DirectoryUser{
			ID:          record.ID,
			Surname:     record.Surname,
			GivenName:   record.GivenName,
			Mail:        record.Mail,
			DisplayName: record.DisplayName,
		})
	}

	c.logger.Debug("Directory users fetched", map[string]any{
		"endpoint": endpoint,
		"count":    len(users),
	})

	return users, nil
}
