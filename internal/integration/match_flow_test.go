package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skill-match/internal/app"
	"skill-match/internal/config"
	"skill-match/internal/database"
	"skill-match/internal/database/migration"
	dbpostgres "skill-match/internal/database/postgres"
	"skill-match/internal/database/seeder"
	"skill-match/internal/domain/skill"
)

type semanticResponse struct {
	Status    int             `json:"status"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
	RequestID string          `json:"request_id"`
}

// TestIntegration_CurateAndMatch runs the curator flow against a real
// database: create a role, give it keywords, add a synonym and score skills.
func TestIntegration_CurateAndMatch(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	cfg, db := connectTestDB(t, ctx)
	defer func() { _ = db.Close() }()

	require.NoError(t, migration.Runner{FS: migration.Embedded()}.Run(ctx, db.SQLDB()))
	require.NoError(t, seeder.Runner{Seeders: seeder.Defaults()}.Run(ctx, db))

	c, err := app.Wire(cfg, nil, db, nil)
	require.NoError(t, err)
	server := app.New(c).Fiber

	token, err := c.JWT.Issue("integration")
	require.NoError(t, err)

	suffix := strings.ReplaceAll(uuid.NewString()[:8], "-", "")
	roleName := "it-role-" + suffix
	synToken := "itsyn" + suffix
	t.Cleanup(func() {
		cctx, ccancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer ccancel()
		_, _ = db.Exec(cctx, `DELETE FROM roles WHERE name = $1`, roleName)
		_, _ = db.Exec(cctx, `DELETE FROM synonyms WHERE lower(token) = $1`, synToken)
	})

	rolePath := "/api/v1/roles/" + url.PathEscape(roleName)

	st, _ := call(t, server, http.MethodPut, rolePath, "", map[string]any{"jd_text": "python sql nlp"})
	assert.Equal(t, http.StatusUnauthorized, st)

	st, _ = call(t, server, http.MethodPut, rolePath, token, map[string]any{"jd_text": "python sql nlp"})
	require.Equal(t, http.StatusOK, st)

	for _, kw := range []string{"python", "sql", "nlp"} {
		st, _ = call(t, server, http.MethodPost, rolePath+"/keywords", token,
			map[string]any{"keyword": kw, "importance": "critical"})
		require.Equal(t, http.StatusOK, st, kw)
	}
	st, _ = call(t, server, http.MethodPost, rolePath+"/keywords", token,
		map[string]any{"keyword": "PYTHON", "importance": "optional"})
	assert.Equal(t, http.StatusConflict, st)

	st, body := call(t, server, http.MethodPost, "/api/v1/match", "",
		map[string]any{"role": strings.ToUpper(roleName), "skills": []string{"Python", "SQL"}})
	require.Equal(t, http.StatusOK, st)
	var scored struct {
		Scored  bool     `json:"scored"`
		Score   *float64 `json:"score"`
		Missing []string `json:"missing"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &scored))
	require.True(t, scored.Scored)
	assert.Equal(t, 66.67, *scored.Score)
	assert.Equal(t, []string{"nlp"}, scored.Missing)

	st, _ = call(t, server, http.MethodPost, "/api/v1/synonyms", token,
		map[string]any{"token": synToken, "expands_to": "nlp", "category": "skill"})
	require.Equal(t, http.StatusCreated, st)

	st, body = call(t, server, http.MethodGet, "/api/v1/synonyms/resolve?tokens="+synToken, "", nil)
	require.Equal(t, http.StatusOK, st)
	var resolved struct {
		Canonical map[string]string `json:"canonical"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &resolved))
	assert.Equal(t, "nlp", resolved.Canonical[synToken])

	st, body = call(t, server, http.MethodPost, "/api/v1/match", "",
		map[string]any{"role": roleName, "skills": []string{"python", "sql", synToken}})
	require.Equal(t, http.StatusOK, st)
	require.NoError(t, json.Unmarshal(body.Data, &scored))
	assert.Equal(t, 100.0, *scored.Score)

	st, _ = call(t, server, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, st)
}

func connectTestDB(t *testing.T, ctx context.Context) (config.Config, database.DB) {
	t.Helper()

	host := firstNonEmpty(os.Getenv("SKILLMATCH_TEST_DB_HOST"), os.Getenv("DB_HOST"))
	port := firstNonEmpty(os.Getenv("SKILLMATCH_TEST_DB_PORT"), os.Getenv("DB_PORT"))
	name := firstNonEmpty(os.Getenv("SKILLMATCH_TEST_DB_NAME"), os.Getenv("DB_NAME"))
	user := firstNonEmpty(os.Getenv("SKILLMATCH_TEST_DB_USER"), os.Getenv("DB_USER"))
	pass := firstNonEmpty(os.Getenv("SKILLMATCH_TEST_DB_PASSWORD"), os.Getenv("DB_PASSWORD"))
	ssl := firstNonEmpty(os.Getenv("SKILLMATCH_TEST_DB_SSL_MODE"), os.Getenv("DB_SSL_MODE"), "disable")

	if host == "" || port == "" || name == "" || user == "" {
		t.Skip("missing test DB env vars: set SKILLMATCH_TEST_DB_HOST/PORT/NAME/USER/PASSWORD (or DB_HOST/DB_PORT/DB_NAME/DB_USER/DB_PASSWORD)")
	}

	cfg := config.Config{
		App: config.AppConfig{AppName: "skill-match-it", Environment: "test", HTTPPort: "0"},
		Database: config.DatabaseConfig{
			DBHost:     host,
			DBPort:     port,
			DBName:     name,
			DBUser:     user,
			DBPassword: pass,
			DBSSLMode:  ssl,
		},
		Auth: config.AuthConfig{JWTSecret: "integration-secret", Issuer: "skill-match", TokenTTL: time.Hour},
		Engine: config.EngineConfig{
			CanonicalThreshold: skill.DefaultCanonicalThreshold,
			FuzzyThreshold:     0.9,
			VariantTTL:         time.Minute,
			RefreshBackoff:     time.Second,
		},
	}

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	return cfg, db
}

func call(t *testing.T, app *fiber.App, method, path, token string, body any) (int, semanticResponse) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rdr = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, fiber.TestConfig{Timeout: 10 * time.Second})
	require.NoError(t, err)
	defer resp.Body.Close()

	var out semanticResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
