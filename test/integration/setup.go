package integration

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"golang.org/x/crypto/bcrypt"

	handler "github.com/ballothub/ballot/internal/adapters/handler/http"
	repo "github.com/ballothub/ballot/internal/adapters/repository/postgres"
	"github.com/ballothub/ballot/internal/adapters/storage"
	"github.com/ballothub/ballot/internal/core/services"
	"github.com/ballothub/ballot/internal/metrics"
)

const adminPassword = "admin-pass-123"

var testMetrics = metrics.New()

func setupPostgresContainer(ctx context.Context) (testcontainers.Container, string, error) {
	pgContainer, err := postgres.Run(ctx, "postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second),
		),
	)
	if err != nil {
		return nil, "", fmt.Errorf("failed to start postgres container: %w", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", err
	}

	return pgContainer, connStr, nil
}

func applyMigrations(db *sql.DB) error {
	dirPath := "../../internal/adapters/repository/postgres/migrations"

	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".up.sql") {
			continue
		}

		content, err := os.ReadFile(filepath.Join(dirPath, entry.Name()))
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", entry.Name(), err)
		}
		if _, err := db.Exec(string(content)); err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", entry.Name(), err)
		}
	}

	return nil
}

type TestApp struct {
	DB          *sql.DB
	Server      *httptest.Server
	Client      *http.Client
	DBContainer testcontainers.Container
}

func setupTestApp(t *testing.T) *TestApp {
	t.Helper()
	ctx := context.Background()

	dbContainer, dbURL, err := setupPostgresContainer(ctx)
	require.NoError(t, err)

	db, err := sql.Open("postgres", dbURL)
	require.NoError(t, err)

	require.NoError(t, applyMigrations(db))

	artifacts, err := storage.NewFilesystemStore(t.TempDir())
	require.NoError(t, err)

	accountRepo := repo.NewAccountRepository(db)
	candidateRepo := repo.NewCandidateRepository(db)
	electionRepo := repo.NewElectionRepository(db)
	voteRepo := repo.NewVoteRepository(db)
	tallyRepo := repo.NewTallyRepository(db)

	secret := []byte("test-secret")
	registrationSvc := services.NewRegistrationService(accountRepo, artifacts, true)
	authSvc := services.NewAuthService(accountRepo, secret, true)
	candidateSvc := services.NewCandidateService(candidateRepo, artifacts)
	electionSvc := services.NewElectionService(electionRepo)
	voteSvc := services.NewVoteService(voteRepo, candidateRepo, accountRepo, electionRepo, true)
	tallySvc := services.NewTallyService(tallyRepo)

	router := handler.NewHandler(handler.Handlers{
		Auth:      handler.NewAuthHandler(registrationSvc, authSvc, testMetrics),
		Account:   handler.NewAccountHandler(registrationSvc, accountRepo, testMetrics),
		Candidate: handler.NewCandidateHandler(candidateSvc),
		Election:  handler.NewElectionHandler(electionSvc),
		Vote:      handler.NewVoteHandler(voteSvc, testMetrics),
		Tally:     handler.NewTallyHandler(tallySvc),
	}, authSvc)

	server := httptest.NewServer(router)

	return &TestApp{
		DB:          db,
		Server:      server,
		Client:      server.Client(),
		DBContainer: dbContainer,
	}
}

func (app *TestApp) Teardown(t *testing.T) {
	app.Server.Close()
	app.DB.Close()
	if err := app.DBContainer.Terminate(context.Background()); err != nil {
		t.Logf("failed to terminate container: %v", err)
	}
}

// seedAdmin inserts a verified administrator directly and logs in over HTTP.
func (app *TestApp) seedAdmin(t *testing.T) string {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.MinCost)
	require.NoError(t, err)

	username := fmt.Sprintf("admin-%s", uuid.NewString()[:8])
	_, err = app.DB.Exec(
		`INSERT INTO accounts (id, username, email, password_hash, is_admin, verified) VALUES ($1, $2, $3, $4, TRUE, TRUE)`,
		uuid.New(), username, username+"@example.com", string(hash),
	)
	require.NoError(t, err)

	return app.login(t, username, adminPassword)
}

func (app *TestApp) login(t *testing.T, username, password string) string {
	t.Helper()

	body, _ := json.Marshal(map[string]string{"username": username, "password": password})
	resp, err := app.Client.Post(app.Server.URL+"/auth/login", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out.Token
}

type registration struct {
	Username       string
	DocumentNumber string
	AccountID      uuid.UUID
}

// registerVoter registers a fresh account over the multipart endpoint,
// attaching a small identity proof.
func (app *TestApp) registerVoter(t *testing.T) registration {
	t.Helper()

	reg := registration{
		Username:       fmt.Sprintf("voter-%s", uuid.NewString()[:8]),
		DocumentNumber: randomNationalID(),
	}

	resp := app.postRegisterForm(t, map[string]string{
		"username":         reg.Username,
		"email":            reg.Username + "@example.com",
		"password":         "s3cret-pass",
		"confirm_password": "s3cret-pass",
		"document_type":    "national_id",
		"document_number":  reg.DocumentNumber,
	}, "proof image bytes")
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var account struct {
		ID uuid.UUID `json:"id"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&account))
	reg.AccountID = account.ID
	return reg
}

func (app *TestApp) postRegisterForm(t *testing.T, fields map[string]string, proof string) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if proof != "" {
		fw, err := mw.CreateFormFile("id_proof", "whatever-the-client-said.jpg")
		require.NoError(t, err)
		_, err = io.WriteString(fw, proof)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	resp, err := app.Client.Post(app.Server.URL+"/auth/register", mw.FormDataContentType(), &buf)
	require.NoError(t, err)
	return resp
}

func (app *TestApp) approve(t *testing.T, adminToken string, accountID uuid.UUID) {
	t.Helper()
	resp := app.do(t, "POST", "/admin/accounts/"+accountID.String()+"/approve", adminToken, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

// verifiedVoter registers, approves, and logs in a voter, returning its token.
func (app *TestApp) verifiedVoter(t *testing.T, adminToken string) (registration, string) {
	t.Helper()
	reg := app.registerVoter(t)
	app.approve(t, adminToken, reg.AccountID)
	return reg, app.login(t, reg.Username, "s3cret-pass")
}

func (app *TestApp) addCandidate(t *testing.T, adminToken, name, party string) uuid.UUID {
	t.Helper()

	form := fmt.Sprintf("name=%s&party=%s", name, party)
	req, err := http.NewRequest("POST", app.Server.URL+"/admin/candidates", strings.NewReader(form))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+adminToken)

	resp, err := app.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var candidate struct {
		ID uuid.UUID `json:"id"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&candidate))
	return candidate.ID
}

func (app *TestApp) createActiveElection(t *testing.T, adminToken string) uuid.UUID {
	t.Helper()

	payload := map[string]any{
		"title":     "General Election",
		"starts_at": time.Now().Add(-time.Hour).Format(time.RFC3339),
		"ends_at":   time.Now().Add(24 * time.Hour).Format(time.RFC3339),
	}
	body, _ := json.Marshal(payload)

	resp := app.do(t, "POST", "/admin/elections", adminToken, bytes.NewReader(body))
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var election struct {
		ID uuid.UUID `json:"id"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&election))

	activate := app.do(t, "POST", "/admin/elections/"+election.ID.String()+"/activate", adminToken, nil)
	defer activate.Body.Close()
	require.Equal(t, http.StatusOK, activate.StatusCode)

	return election.ID
}

func (app *TestApp) castVote(t *testing.T, token string, candidateID uuid.UUID) (*http.Response, string) {
	t.Helper()

	body, _ := json.Marshal(map[string]string{"candidate_id": candidateID.String()})
	resp := app.do(t, "POST", "/api/votes", token, bytes.NewReader(body))

	code := ""
	if resp.StatusCode == http.StatusCreated {
		var vote struct {
			ConfirmationCode string `json:"confirmation_code"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&vote))
		code = vote.ConfirmationCode
	}
	return resp, code
}

func (app *TestApp) do(t *testing.T, method, path, token string, body io.Reader) *http.Response {
	t.Helper()

	req, err := http.NewRequest(method, app.Server.URL+path, body)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Client.Do(req)
	require.NoError(t, err)
	return resp
}

func randomNationalID() string {
	id := uuid.New()
	digits := make([]byte, 12)
	for i := range digits {
		digits[i] = '0' + id[i]%10
	}
	return string(digits)
}
