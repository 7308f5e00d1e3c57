package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naveenspark/catalyst/pkg/domain"
)

type recordingObserver struct {
	mu       sync.Mutex
	outcomes []string
}

func (r *recordingObserver) ObserveRequest(endpoint, outcome string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, endpoint+":"+outcome)
}

func TestListPrograms(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/collections/programs" {
			http.NotFound(w, r)
			return
		}
		assert.Equal(t, "widget", r.URL.Query().Get("relations"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		json.NewEncoder(w).Encode(domain.ProgramList{Data: []domain.ProgramSummary{ //nolint:errcheck
			{ID: "b", Title: "Beta"},
			{ID: "a", Title: "Alpha"},
		}})
	}))
	defer srv.Close()

	c := New(srv.URL)
	programs, err := c.ListPrograms(context.Background())
	require.NoError(t, err)
	require.Len(t, programs, 2)
	assert.Equal(t, "b", programs[0].ID, "source order must be preserved")
	assert.Equal(t, "a", programs[1].ID)
}

func TestListPrograms_EmptyData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{}`)) //nolint:errcheck
	}))
	defer srv.Close()

	programs, err := New(srv.URL).ListPrograms(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, programs)
	assert.Empty(t, programs)
}

func TestListPrograms_ResponseError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "boom"}) //nolint:errcheck
	}))
	defer srv.Close()

	obs := &recordingObserver{}
	_, err := New(srv.URL, WithObserver(obs)).ListPrograms(context.Background())
	require.Error(t, err)
	assert.True(t, IsStatus(err, http.StatusInternalServerError))
	assert.False(t, IsTransport(err))
	assert.Contains(t, err.Error(), "client.ListPrograms")
	assert.Contains(t, err.Error(), "boom")
	assert.Equal(t, []string{"list_programs:response_error"}, obs.outcomes)
}

func TestGetProgram(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/collections/programs/b" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`{"id":"b","title":"Beta","description":"...","widget":{"title":"Apply","buttonLink":"https://x"}}`)) //nolint:errcheck
	}))
	defer srv.Close()

	p, err := New(srv.URL).GetProgram(context.Background(), "b")
	require.NoError(t, err)
	assert.Equal(t, "b", p.ID)
	require.NotNil(t, p.Widget)
	assert.Equal(t, "Apply", p.Widget.Title)
	assert.True(t, p.Widget.HasPrimaryAction())
}

func TestGetProgram_PathEscapesID(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.Write([]byte(`{"id":"a/b"}`)) //nolint:errcheck
	}))
	defer srv.Close()

	_, err := New(srv.URL).GetProgram(context.Background(), "a/b")
	require.NoError(t, err)
	assert.Equal(t, "/api/collections/programs/a%2Fb", gotPath)
}

func TestGetProgram_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("no such program")) //nolint:errcheck
	}))
	defer srv.Close()

	_, err := New(srv.URL).GetProgram(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, IsStatus(err, http.StatusNotFound))
	assert.Contains(t, err.Error(), "HTTP 404: no such program")
}

func TestGetProgram_EmptyID(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		called = true
	}))
	defer srv.Close()

	_, err := New(srv.URL).GetProgram(context.Background(), "")
	require.ErrorIs(t, err, ErrEmptyID)
	assert.False(t, called, "no request may be issued for an empty id")
}

func TestGetProgram_MalformedBodyIsTransport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"id":`)) //nolint:errcheck
	}))
	defer srv.Close()

	_, err := New(srv.URL).GetProgram(context.Background(), "a")
	require.Error(t, err)
	assert.True(t, IsTransport(err))
}

func TestTransportError_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	obs := &recordingObserver{}
	_, err := New(url, WithObserver(obs), WithTimeout(time.Second)).ListPrograms(context.Background())
	require.Error(t, err)
	assert.True(t, IsTransport(err))
	assert.Equal(t, []string{"list_programs:transport_error"}, obs.outcomes)
}

func TestDoRequest_CancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(2 * time.Second)
		w.Write([]byte(`{"data":[]}`)) //nolint:errcheck
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(srv.URL).ListPrograms(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNew_TrimsTrailingSlash(t *testing.T) {
	c := New("http://example.test/")
	assert.Equal(t, "http://example.test", c.BaseURL())
}
