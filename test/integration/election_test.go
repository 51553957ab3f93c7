package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSingleActiveElection(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	adminToken := app.seedAdmin(t)

	first := app.createActiveElection(t, adminToken)
	second := app.createActiveElection(t, adminToken)

	var activeCount int
	require.NoError(t, app.DB.QueryRow(`SELECT COUNT(*) FROM elections WHERE active`).Scan(&activeCount))
	assert.Equal(t, 1, activeCount)

	resp, err := app.Client.Get(app.Server.URL + "/api/elections/active")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var active struct {
		ID uuid.UUID `json:"id"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&active))
	assert.Equal(t, second, active.ID)
	assert.NotEqual(t, first, active.ID)
}

func TestDeactivateClosesVoting(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	adminToken := app.seedAdmin(t)
	candidateID := app.addCandidate(t, adminToken, "Ada", "Progress")
	electionID := app.createActiveElection(t, adminToken)
	_, voterToken := app.verifiedVoter(t, adminToken)

	resp := app.do(t, "POST", "/admin/elections/"+electionID.String()+"/deactivate", adminToken, nil)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	active, err := app.Client.Get(app.Server.URL + "/api/elections/active")
	require.NoError(t, err)
	active.Body.Close()
	assert.Equal(t, http.StatusNotFound, active.StatusCode)

	cast, _ := app.castVote(t, voterToken, candidateID)
	cast.Body.Close()
	assert.Equal(t, http.StatusConflict, cast.StatusCode)
}

func TestElectionValidation(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	adminToken := app.seedAdmin(t)

	t.Run("missing title", func(t *testing.T) {
		body, _ := json.Marshal(map[string]any{
			"starts_at": time.Now().Format(time.RFC3339),
			"ends_at":   time.Now().Add(time.Hour).Format(time.RFC3339),
		})
		resp := app.do(t, "POST", "/admin/elections", adminToken, bytes.NewReader(body))
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("ends before it starts", func(t *testing.T) {
		body, _ := json.Marshal(map[string]any{
			"title":     "Backwards",
			"starts_at": time.Now().Add(time.Hour).Format(time.RFC3339),
			"ends_at":   time.Now().Format(time.RFC3339),
		})
		resp := app.do(t, "POST", "/admin/elections", adminToken, bytes.NewReader(body))
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("activating a missing election", func(t *testing.T) {
		resp := app.do(t, "POST", "/admin/elections/"+uuid.NewString()+"/activate", adminToken, nil)
		resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}
