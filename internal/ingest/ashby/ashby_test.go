package ashby

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(url string) *Client {
	return New(Config{Board: "Board", URL: url, Timeout: 2 * time.Second})
}

func TestFetchNormalizesBoardBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"jobs": [
			{"id": "1", "title": "SRE", "department": "Infra", "isRemote": true, "employmentType": "FullTime"},
			{"id": "2", "title": "Recruiter"}
		]}`))
	}))
	defer srv.Close()

	jobs, err := newTestClient(srv.URL).Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, jobs, 2)

	assert.Equal(t, "Board:1", jobs[0].Identity)
	assert.Equal(t, "Full-Time", jobs[0].EmploymentType)
	assert.True(t, jobs[0].IsRemote)
	assert.Equal(t, "Unknown", jobs[1].Department)
}

func TestFetchSkipsNonObjectEntries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"jobs": ["garbage", 42, null, true, [1], {"id": "ok", "title": "Kept"}]}`))
	}))
	defer srv.Close()

	jobs, err := newTestClient(srv.URL).Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "Board:ok", jobs[0].Identity)
}

func TestFetchHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Fetch(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestFetchMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"jobs": [`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Fetch(context.Background())
	require.Error(t, err)
}

func TestFetchTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	_, err := newTestClient(srv.URL).Fetch(context.Background())
	require.Error(t, err)
}
