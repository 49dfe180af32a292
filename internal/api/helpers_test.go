package api

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/brandvoice/internal/auth"
	"github.com/alexanderramin/brandvoice/internal/intelligence"
	"github.com/alexanderramin/brandvoice/internal/llm"
	"github.com/alexanderramin/brandvoice/internal/prompt"
	"github.com/alexanderramin/brandvoice/internal/repository"
	"github.com/alexanderramin/brandvoice/internal/service"
	"github.com/alexanderramin/brandvoice/internal/testutil"
)

const testSecret = "api-test-secret-0123456789abcdef"

// scriptedLLM replays responses in order; the last one repeats.
type scriptedLLM struct {
	mu        sync.Mutex
	responses []string
	err       error
	calls     []llm.GenerateRequest
}

func (s *scriptedLLM) Generate(_ context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, req)
	if s.err != nil {
		return nil, s.err
	}
	if len(s.responses) == 0 {
		return nil, errors.New("no scripted response")
	}
	text := s.responses[0]
	if len(s.responses) > 1 {
		s.responses = s.responses[1:]
	}
	return &llm.GenerateResponse{Text: text, Model: "test"}, nil
}

func (s *scriptedLLM) Available(context.Context) bool { return s.err == nil }

type testAPI struct {
	handler http.Handler
	db      *sql.DB
	llm     *scriptedLLM
	issuer  *auth.Issuer
}

func newTestAPI(t *testing.T, responses ...string) *testAPI {
	t.Helper()
	database := testutil.NewTestDB(t)
	client := &scriptedLLM{responses: responses}

	overrides := repository.NewSQLitePromptOverrideRepo(database)
	catalog, err := prompt.DefaultCatalog()
	require.NoError(t, err)
	catalog.WithOverrides(overrides)

	brands := repository.NewSQLiteBrandRepo(database)
	projects := repository.NewSQLiteProjectRepo(database)
	uow := testutil.NewTestUoW(database)

	svc := Services{
		Brands:   service.NewBrandService(brands),
		Projects: service.NewProjectService(projects, brands),
		Briefs: service.NewBriefService(repository.NewSQLiteBriefRepo(database), projects, brands,
			repository.NewSQLiteAudienceRepo(database), intelligence.NewAudienceService(client, catalog, nil), uow),
		Tone: service.NewToneProfileService(intelligence.NewToneService(client, catalog, nil),
			brands, repository.NewSQLiteToneProfileRepo(database), uow),
		CoreMessage: service.NewCoreMessageService(intelligence.NewMessageService(client, catalog, nil),
			repository.NewSQLiteOnboardingRepo(database), uow),
		Prompts: service.NewPromptService(catalog, overrides),
	}

	issuer := auth.NewIssuer(testSecret, time.Hour)
	h := NewRouter(NewHandler(svc, nil), RouterConfig{Verifier: issuer, CORSOrigins: []string{"*"}})
	return &testAPI{handler: h, db: database, llm: client, issuer: issuer}
}

func (a *testAPI) token(t *testing.T, userID, role string) string {
	t.Helper()
	tok, err := a.issuer.Issue(userID, role)
	require.NoError(t, err)
	return tok
}

// do sends body (marshalled unless it is already a string) as userID.
// An empty userID sends no Authorization header.
func (a *testAPI) do(t *testing.T, method, path, userID string, body any) *httptest.ResponseRecorder {
	t.Helper()
	return a.doAs(t, method, path, userID, auth.RoleUser, body)
}

func (a *testAPI) doAs(t *testing.T, method, path, userID, role string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("Authorization", "Bearer "+a.token(t, userID, role))
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder, data any) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	if data != nil {
		require.NoError(t, json.Unmarshal(env.Data, data), string(env.Data))
	}
	return env
}
