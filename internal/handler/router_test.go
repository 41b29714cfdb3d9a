package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/biztech/portal-bff-go/internal/domain"
	"github.com/biztech/portal-bff-go/internal/infra/cache"
	"github.com/biztech/portal-bff-go/internal/infra/observability"
	"github.com/biztech/portal-bff-go/internal/service"
	"github.com/biztech/portal-bff-go/internal/settings"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const testSecret = "router-test-secret"

// stubStores satisfies every store port with empty but well-formed data,
// enough to drive the router end to end.
type stubStores struct{}

func (stubStores) ListRequests(ctx context.Context, status string) ([]domain.ServiceRequest, error) {
	return []domain.ServiceRequest{}, nil
}

func (stubStores) AssignAgent(ctx context.Context, requestID, agentID int64) error { return nil }

func (stubStores) ListProjects(ctx context.Context) ([]domain.Project, error) {
	return []domain.Project{}, nil
}

func (stubStores) GetProject(ctx context.Context, projectID int64) (*domain.Project, error) {
	return &domain.Project{ID: projectID, GlobalStatus: "In Progress"}, nil
}

func (stubStores) UpdateProject(ctx context.Context, projectID int64, progressPercent int, ecd string) (*domain.Project, error) {
	return &domain.Project{ID: projectID, GlobalStatus: "In Progress", ProgressPercent: progressPercent, ECD: ecd}, nil
}

func (stubStores) UploadAsset(ctx context.Context, projectID int64, assetType, fileName string, file io.Reader) (*domain.Asset, error) {
	return &domain.Asset{ID: 1, Type: assetType, FileName: fileName}, nil
}

func (stubStores) ListNotes(ctx context.Context, projectID int64) ([]domain.Note, error) {
	return []domain.Note{}, nil
}

func (stubStores) CreateNote(ctx context.Context, projectID int64, content string) (*domain.Note, error) {
	return &domain.Note{ID: 1, ProjectID: projectID, Content: content}, nil
}

func (stubStores) GetProjectVault(ctx context.Context, projectID int64) (string, error) {
	return "", nil
}

func (stubStores) CreateProposal(ctx context.Context, requestID int64, items []domain.ProposalItemPayload) (*domain.Proposal, error) {
	return &domain.Proposal{ID: 7, RequestID: requestID, Status: domain.ProposalStatusDraft}, nil
}

func (stubStores) SendProposal(ctx context.Context, proposalID int64) error   { return nil }
func (stubStores) AcceptProposal(ctx context.Context, proposalID int64) error { return nil }

func (stubStores) GetOwnClient(ctx context.Context) (*domain.ClientAccount, error) {
	return &domain.ClientAccount{ID: 1, CompanyName: "Acme"}, nil
}

func (stubStores) UpdateOwnVault(ctx context.Context, vault string) (*domain.ClientAccount, error) {
	return &domain.ClientAccount{ID: 1, TechnicalVault: vault}, nil
}

func (stubStores) ListAgentClients(ctx context.Context) ([]domain.ClientSummary, error) {
	return []domain.ClientSummary{}, nil
}

func (stubStores) ListPendingUsers(ctx context.Context) ([]domain.User, error) {
	return []domain.User{}, nil
}

func (stubStores) SetUserStatus(ctx context.Context, userID int64, status string) error { return nil }

func (stubStores) ListAdminClients(ctx context.Context) ([]domain.User, error) {
	return []domain.User{}, nil
}

func (stubStores) ListAdminAgents(ctx context.Context) ([]domain.User, error) {
	return []domain.User{}, nil
}

func (stubStores) CreateAgent(ctx context.Context, agent *domain.NewAgent) (*domain.User, error) {
	return &domain.User{ID: 5, FullName: agent.FullName, Email: agent.Email, Role: domain.RoleAgent}, nil
}

func (stubStores) DeleteAgent(ctx context.Context, agentID int64) error              { return nil }
func (stubStores) SetAgentStatus(ctx context.Context, agentID int64, s string) error { return nil }

func (stubStores) GetClientJourney(ctx context.Context, clientID int64) ([]domain.JourneyRecord, error) {
	return []domain.JourneyRecord{}, nil
}

func (stubStores) GetCoreHealth(ctx context.Context) (*domain.CoreHealth, error) {
	return &domain.CoreHealth{Status: "ok", Database: "connected"}, nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	logger := zap.NewNop()
	metrics := observability.NewMetrics()
	stores := stubStores{}
	settingsStore := settings.NewFileStore(filepath.Join(t.TempDir(), "settings.json"))
	drafts := cache.New[*domain.ProposalDraft](time.Hour)

	const apiBase = "http://core.test/api/v1"
	svcs := Services{
		Client:    service.NewClientViewService(stores, stores, stores, stores, metrics, logger, apiBase),
		Agent:     service.NewAgentViewService(stores, stores, stores, stores, metrics, logger, apiBase),
		Admin:     service.NewAdminViewService(stores, stores, stores, settingsStore, drafts, metrics, logger, apiBase),
		Proposals: service.NewProposalService(stores, drafts, metrics, logger),
		Notes:     service.NewNotesService(stores, logger),
	}

	return NewRouter(svcs, service.NewTokenVerifier(testSecret), metrics, logger)
}

func mintToken(t *testing.T, role string) string {
	t.Helper()
	claims := service.Claims{
		Sub:  "42",
		Role: role,
		Type: "access",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func doRequest(t *testing.T, router http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestOperationalEndpoints(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{"/healthz", "/readyz", "/ping"} {
		rec := doRequest(t, router, http.MethodGet, path, "", nil)
		if rec.Code != http.StatusOK {
			t.Errorf("%s: status = %d, want 200", path, rec.Code)
		}
	}

	rec := doRequest(t, router, http.MethodGet, "/metrics", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("/metrics: status = %d, want 200", rec.Code)
	}
}

func TestAuthRequired(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/v1/client/dashboard", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("no token: status = %d, want 401", rec.Code)
	}

	rec = doRequest(t, router, http.MethodGet, "/v1/client/dashboard", "not-a-jwt", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("garbage token: status = %d, want 401", rec.Code)
	}
}

func TestRoleEnforcement(t *testing.T) {
	router := newTestRouter(t)
	agentToken := mintToken(t, domain.RoleAgent)
	clientToken := mintToken(t, domain.RoleClient)

	rec := doRequest(t, router, http.MethodGet, "/v1/client/dashboard", agentToken, nil)
	if rec.Code != http.StatusForbidden {
		t.Errorf("agent on client route: status = %d, want 403", rec.Code)
	}

	rec = doRequest(t, router, http.MethodGet, "/v1/admin/settings", clientToken, nil)
	if rec.Code != http.StatusForbidden {
		t.Errorf("client on admin route: status = %d, want 403", rec.Code)
	}

	rec = doRequest(t, router, http.MethodGet, "/v1/agent/dashboard", agentToken, nil)
	if rec.Code != http.StatusOK {
		t.Errorf("agent on agent route: status = %d, want 200", rec.Code)
	}
}

func TestClientDashboardRoute(t *testing.T) {
	router := newTestRouter(t)
	rec := doRequest(t, router, http.MethodGet, "/v1/client/dashboard", mintToken(t, domain.RoleClient), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var dashboard domain.ClientDashboard
	if err := json.Unmarshal(rec.Body.Bytes(), &dashboard); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if dashboard.Requests == nil {
		t.Error("requests should decode to an empty slice, not null")
	}
}

func TestAdminSettingsRoundTrip(t *testing.T) {
	router := newTestRouter(t)
	token := mintToken(t, domain.RoleAdmin)

	rec := doRequest(t, router, http.MethodGet, "/v1/admin/settings", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get: status = %d", rec.Code)
	}
	var got domain.PlatformSettings
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.PlatformName != "BizTech Digital" {
		t.Errorf("default platform name = %q", got.PlatformName)
	}

	got.PlatformName = "Renamed Platform"
	rec = doRequest(t, router, http.MethodPut, "/v1/admin/settings", token, got)
	if rec.Code != http.StatusOK {
		t.Fatalf("put: status = %d, body = %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(t, router, http.MethodGet, "/v1/admin/settings", token, nil)
	var again domain.PlatformSettings
	if err := json.Unmarshal(rec.Body.Bytes(), &again); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if again.PlatformName != "Renamed Platform" {
		t.Errorf("platform name after update = %q", again.PlatformName)
	}
}

func TestDraftSessionOverHTTP(t *testing.T) {
	router := newTestRouter(t)
	token := mintToken(t, domain.RoleAgent)

	rec := doRequest(t, router, http.MethodPost, "/v1/agent/drafts", token, map[string]any{"requestId": 12})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create draft: status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var view domain.ProposalDraftView
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(view.Draft.Items) != 1 {
		t.Fatalf("seed rows = %d, want 1", len(view.Draft.Items))
	}
	draftID := view.Draft.ID
	itemID := view.Draft.Items[0].ID

	// The last row cannot be removed.
	rec = doRequest(t, router, http.MethodDelete, "/v1/agent/drafts/"+draftID+"/items/"+itemID, token, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("remove last row: status = %d, want 400", rec.Code)
	}

	rec = doRequest(t, router, http.MethodPost, "/v1/agent/drafts/"+draftID+"/items", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("add item: status = %d", rec.Code)
	}

	// Numeric values arrive as JSON numbers and still land in the draft.
	rec = doRequest(t, router, http.MethodPatch, "/v1/agent/drafts/"+draftID+"/items/"+itemID, token,
		map[string]any{"field": "unitPrice", "value": 750})
	if rec.Code != http.StatusOK {
		t.Fatalf("update item: status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if view.Draft.Items[0].UnitPrice != 750 {
		t.Errorf("unit price = %v, want 750", view.Draft.Items[0].UnitPrice)
	}

	rec = doRequest(t, router, http.MethodPost, "/v1/agent/drafts/"+draftID+"/submit", token, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("submit: status = %d, body = %s", rec.Code, rec.Body.String())
	}

	// Submit consumes the session.
	rec = doRequest(t, router, http.MethodGet, "/v1/agent/drafts/"+draftID, token, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("draft after submit: status = %d, want 404", rec.Code)
	}
}

func TestDraftOwnershipOverHTTP(t *testing.T) {
	router := newTestRouter(t)
	owner := mintToken(t, domain.RoleAgent)

	rec := doRequest(t, router, http.MethodPost, "/v1/agent/drafts", owner, map[string]any{"requestId": 3})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create draft: status = %d", rec.Code)
	}
	var view domain.ProposalDraftView
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode: %v", err)
	}

	// A different agent gets a 403 for the same session.
	otherClaims := service.Claims{
		Sub:  "99",
		Role: domain.RoleAgent,
		Type: "access",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	other, err := jwt.NewWithClaims(jwt.SigningMethodHS256, otherClaims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	rec = doRequest(t, router, http.MethodGet, "/v1/agent/drafts/"+view.Draft.ID, other, nil)
	if rec.Code != http.StatusForbidden {
		t.Errorf("other agent: status = %d, want 403", rec.Code)
	}
}

func TestNotesRoute(t *testing.T) {
	router := newTestRouter(t)
	token := mintToken(t, domain.RoleClient)

	rec := doRequest(t, router, http.MethodPost, "/v1/projects/4/notes", token, map[string]string{"content": "kickoff done"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("add note: status = %d, body = %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(t, router, http.MethodPost, "/v1/projects/4/notes", token, map[string]string{"content": "   "})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("blank note: status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "content") {
		t.Errorf("blank note error should mention the field, got %s", rec.Body.String())
	}
}
