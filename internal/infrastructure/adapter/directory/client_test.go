package directory

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/amirhossein-jamali/account-opening-service/internal/domain/error"
	"github.com/amirhossein-jamali/account-opening-service/internal/infrastructure/adapter/logger"
)

func newTestClient(baseURL string) *Client {
	return NewClient(Config{
		BaseURL: baseURL,
		APIKey:  "test-key",
		Timeout: 5 * time.Second,
	}, logger.NewNoopLogger())
}

func TestClientFetchUsers(t *testing.T) {
	ctx := context.Background()

	t.Run("Fetches and maps directory entries", func(t *testing.T) {
		var gotMethod, gotPath, gotAuth, gotContentType, gotBody string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotMethod = r.Method
			gotPath = r.URL.Path
			gotAuth = r.Header.Get("Authorization")
			gotContentType = r.Header.Get("Content-Type")
			body, _ := io.ReadAll(r.Body)
			gotBody = string(body)

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[
				{"id": "dir-1", "surname": "Johnson", "givenName": "Alice", "mail": "alice@example.com", "displayName": "Alice Johnson"},
				{"id": "dir-2", "surname": "Smith", "givenName": "Bob", "mail": "bob@example.com", "displayName": "Bob Smith"}
			]`))
		}))
		defer server.Close()

		users, err := newTestClient(server.URL).FetchUsers(ctx)

		require.NoError(t, err)

		// The directory's search endpoint wants a POST with empty criteria
		assert.Equal(t, http.MethodPost, gotMethod)
		assert.Equal(t, "/users", gotPath)
		assert.Equal(t, "Bearer test-key", gotAuth)
		assert.Equal(t, "application/json", gotContentType)
		assert.JSONEq(t, "{}", gotBody)

		require.Len(t, users, 2)
		assert.Equal(t, "dir-1", users[0].ID)
		assert.Equal(t, "Johnson", users[0].Surname)
		assert.Equal(t, "Alice", users[0].GivenName)
		assert.Equal(t, "alice@example.com", users[0].Mail)
		assert.Equal(t, "Alice Johnson", users[0].DisplayName)
	})

	t.Run("Trailing slash in the base URL is tolerated", func(t *testing.T) {
		var gotPath string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			_, _ = w.Write([]byte("[]"))
		}))
		defer server.Close()

		_, err := newTestClient(server.URL + "/").FetchUsers(ctx)

		require.NoError(t, err)
		assert.Equal(t, "/users", gotPath)
	})

	t.Run("Empty directory yields an empty list", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("[]"))
		}))
		defer server.Close()

		users, err := newTestClient(server.URL).FetchUsers(ctx)

		require.NoError(t, err)
		assert.NotNil(t, users)
		assert.Empty(t, users)
	})

	t.Run("No Authorization header without an API key", func(t *testing.T) {
		var gotAuth string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			_, _ = w.Write([]byte("[]"))
		}))
		defer server.Close()

		client := NewClient(Config{BaseURL: server.URL, Timeout: 5 * time.Second}, logger.NewNoopLogger())
		_, err := client.FetchUsers(ctx)

		require.NoError(t, err)
		assert.Empty(t, gotAuth)
	})

	t.Run("Error status becomes a directory error carrying the status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "directory exploded", http.StatusInternalServerError)
		}))
		defer server.Close()

		users, err := newTestClient(server.URL).FetchUsers(ctx)

		assert.Nil(t, users)
		assert.ErrorIs(t, err, errs.ErrDirectoryUnavailable)

		var dirErr *errs.DirectoryError
		require.True(t, errors.As(err, &dirErr))
		assert.Equal(t, http.StatusInternalServerError, dirErr.StatusCode)
		assert.Equal(t, server.URL+"/users", dirErr.Endpoint)
	})

	t.Run("Unreachable directory becomes a directory error without a status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close()

		users, err := newTestClient(server.URL).FetchUsers(ctx)

		assert.Nil(t, users)
		assert.ErrorIs(t, err, errs.ErrDirectoryUnavailable)

		var dirErr *errs.DirectoryError
		require.True(t, errors.As(err, &dirErr))
		assert.Equal(t, 0, dirErr.StatusCode)
	})

	t.Run("Malformed payload is reported as unavailable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("this is not json"))
		}))
		defer server.Close()

		users, err := newTestClient(server.URL).FetchUsers(ctx)

		assert.Nil(t, users)
		assert.ErrorIs(t, err, errs.ErrDirectoryUnavailable)
	})
}

func TestConfigValidate(t *testing.T) {
	valid := Config{BaseURL: "http://directory.local", Timeout: 10 * time.Second}
	assert.NoError(t, valid.Validate())

	noURL := Config{Timeout: 10 * time.Second}
	assert.Error(t, noURL.Validate())

	noTimeout := Config{BaseURL: "http://directory.local"}
	assert.Error(t, noTimeout.Validate())
}
