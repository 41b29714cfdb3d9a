// Package port defines the interfaces (ports) for external dependencies.
// Following hexagonal architecture, these ports decouple the service layer
// from the core API client and other infrastructure.
package port

import (
	"context"
	"io"

	"github.com/biztech/portal-bff-go/internal/domain"
)

// RequestStore covers service-request reads and triage mutations. The core
// API scopes GET /requests to the authenticated caller, so the same call
// serves client, agent and admin views.
type RequestStore interface {
	ListRequests(ctx context.Context, status string) ([]domain.ServiceRequest, error)
	AssignAgent(ctx context.Context, requestID, agentID int64) error
}

// ProjectStore covers project reads, progress updates, assets and notes.
type ProjectStore interface {
	ListProjects(ctx context.Context) ([]domain.Project, error)
	GetProject(ctx context.Context, projectID int64) (*domain.Project, error)
	UpdateProject(ctx context.Context, projectID int64, progressPercent int, ecd string) (*domain.Project, error)
	UploadAsset(ctx context.Context, projectID int64, assetType, fileName string, file io.Reader) (*domain.Asset, error)
	ListNotes(ctx context.Context, projectID int64) ([]domain.Note, error)
	CreateNote(ctx context.Context, projectID int64, content string) (*domain.Note, error)
	GetProjectVault(ctx context.Context, projectID int64) (string, error)
}

// ProposalStore covers the proposal lifecycle against the core API.
// CreateProposal transmits the already-collapsed per-line totals; quantity
// never crosses this boundary.
type ProposalStore interface {
	CreateProposal(ctx context.Context, requestID int64, items []domain.ProposalItemPayload) (*domain.Proposal, error)
	SendProposal(ctx context.Context, proposalID int64) error
	AcceptProposal(ctx context.Context, proposalID int64) error
}

// ClientStore covers the caller's own client record and the agent's roster.
type ClientStore interface {
	GetOwnClient(ctx context.Context) (*domain.ClientAccount, error)
	UpdateOwnVault(ctx context.Context, vault string) (*domain.ClientAccount, error)
	ListAgentClients(ctx context.Context) ([]domain.ClientSummary, error)
}

// AdminStore covers user/agent triage and the admin drill-down reads.
type AdminStore interface {
	ListPendingUsers(ctx context.Context) ([]domain.User, error)
	SetUserStatus(ctx context.Context, userID int64, status string) error
	ListAdminClients(ctx context.Context) ([]domain.User, error)
	ListAdminAgents(ctx context.Context) ([]domain.User, error)
	CreateAgent(ctx context.Context, agent *domain.NewAgent) (*domain.User, error)
	DeleteAgent(ctx context.Context, agentID int64) error
	SetAgentStatus(ctx context.Context, agentID int64, status string) error
	GetClientJourney(ctx context.Context, clientID int64) ([]domain.JourneyRecord, error)
	GetCoreHealth(ctx context.Context) (*domain.CoreHealth, error)
}

// Cache provides generic caching with TTL. Len reports live entries so
// the health view can surface how many sessions are open.
type Cache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, value T)
	Delete(key string)
	Len() int
}

// SettingsStore persists the admin platform settings. Injected explicitly so
// the settings page has a real source of truth instead of ambient state.
type SettingsStore interface {
	Get(ctx context.Context) (*domain.PlatformSettings, error)
	Put(ctx context.Context, settings *domain.PlatformSettings) error
}
