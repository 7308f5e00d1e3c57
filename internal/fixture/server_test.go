package fixture

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naveenspark/catalyst/pkg/client"
	"github.com/naveenspark/catalyst/pkg/domain"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	programs, err := Programs()
	require.NoError(t, err)
	srv := httptest.NewServer(New(programs, zerolog.Nop()).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func TestProgramsBundle(t *testing.T) {
	programs, err := Programs()
	require.NoError(t, err)
	require.Len(t, programs, 3)
	assert.Equal(t, "early-stage", programs[0].ID)
	assert.Equal(t, "growth", programs[1].ID)
	assert.Equal(t, "impact", programs[2].ID)
	assert.Nil(t, programs[2].Widget, "impact ships without a widget")
}

func TestListThroughClient(t *testing.T) {
	srv := newTestServer(t)

	summaries, err := client.New(srv.URL).ListPrograms(context.Background())
	require.NoError(t, err)
	require.Len(t, summaries, 3)
	assert.Equal(t, "Early Stage Program", summaries[0].Title)
	assert.Equal(t, "12 weeks", summaries[0].Duration)
}

func TestGetThroughClient(t *testing.T) {
	srv := newTestServer(t)

	p, err := client.New(srv.URL).GetProgram(context.Background(), "growth")
	require.NoError(t, err)
	assert.Equal(t, "growth", p.ID)
	require.NotNil(t, p.Widget)
	assert.Equal(t, "Apply to Growth", p.Widget.PrimaryLabel())
	assert.False(t, p.Widget.HasCallAction())
	assert.NotEmpty(t, p.Overview)
	assert.Len(t, p.Curriculum, 6)
	assert.Len(t, p.Mentors, 3)
	assert.Len(t, p.Outcomes, 4)
}

func TestBundleHasDetailSections(t *testing.T) {
	programs, err := Programs()
	require.NoError(t, err)
	for _, p := range programs {
		assert.NotEmpty(t, p.Overview, p.ID)
		assert.NotEmpty(t, p.Curriculum, p.ID)
		assert.Len(t, p.Mentors, 3, p.ID)
		assert.Len(t, p.Outcomes, 4, p.ID)
		for _, c := range p.Curriculum {
			assert.NotEmpty(t, c.Week, p.ID)
			assert.NotEmpty(t, c.Title, p.ID)
		}
	}
}

func TestGetUnknownIsNotFound(t *testing.T) {
	srv := newTestServer(t)

	_, err := client.New(srv.URL).GetProgram(context.Background(), "nope")
	require.Error(t, err)
	assert.True(t, client.IsStatus(err, http.StatusNotFound))
	assert.Contains(t, err.Error(), "program not found")
}

func TestGetWithoutRelationDropsWidget(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/collections/programs/early-stage")
	require.NoError(t, err)
	defer resp.Body.Close() //nolint:errcheck
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var p domain.ProgramDetail
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&p))
	assert.Equal(t, "early-stage", p.ID)
	assert.Nil(t, p.Widget)
}

func TestUnknownRoute(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/other")
	require.NoError(t, err)
	defer resp.Body.Close() //nolint:errcheck
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
