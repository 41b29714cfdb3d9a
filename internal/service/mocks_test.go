package service

import (
	"context"
	"io"

	"github.com/biztech/portal-bff-go/internal/domain"
)

// Mock port implementations shared by the service tests. Each mock returns
// canned data and records mutations so tests can assert on what crossed the
// port boundary.

type mockRequestStore struct {
	requests []domain.ServiceRequest
	err      error

	assigned map[int64]int64 // requestID -> agentID
}

func (m *mockRequestStore) ListRequests(ctx context.Context, status string) ([]domain.ServiceRequest, error) {
	if m.err != nil {
		return nil, m.err
	}
	if status == "" {
		return m.requests, nil
	}
	var out []domain.ServiceRequest
	for _, r := range m.requests {
		if r.Status == status {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockRequestStore) AssignAgent(ctx context.Context, requestID, agentID int64) error {
	if m.err != nil {
		return m.err
	}
	if m.assigned == nil {
		m.assigned = make(map[int64]int64)
	}
	m.assigned[requestID] = agentID
	return nil
}

type mockProjectStore struct {
	projects []domain.Project
	notes    []domain.Note
	vault    string
	err      error

	updatedProgress int
	updatedECD      string
	uploadedType    string
	createdNote     string
}

func (m *mockProjectStore) ListProjects(ctx context.Context) ([]domain.Project, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.projects, nil
}

func (m *mockProjectStore) GetProject(ctx context.Context, projectID int64) (*domain.Project, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.projects {
		if m.projects[i].ID == projectID {
			return &m.projects[i], nil
		}
	}
	return nil, &domain.ErrNotFound{Resource: "project"}
}

func (m *mockProjectStore) UpdateProject(ctx context.Context, projectID int64, progressPercent int, ecd string) (*domain.Project, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.updatedProgress = progressPercent
	m.updatedECD = ecd
	p, err := m.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	p.ProgressPercent = progressPercent
	p.ECD = ecd
	return p, nil
}

func (m *mockProjectStore) UploadAsset(ctx context.Context, projectID int64, assetType, fileName string, file io.Reader) (*domain.Asset, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.uploadedType = assetType
	return &domain.Asset{ID: 99, ProjectID: projectID, Type: assetType, FileName: fileName, FilePath: "/uploads/" + fileName}, nil
}

func (m *mockProjectStore) ListNotes(ctx context.Context, projectID int64) ([]domain.Note, error) {
	return m.notes, m.err
}

func (m *mockProjectStore) CreateNote(ctx context.Context, projectID int64, content string) (*domain.Note, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.createdNote = content
	return &domain.Note{ID: 1, ProjectID: projectID, Content: content}, nil
}

func (m *mockProjectStore) GetProjectVault(ctx context.Context, projectID int64) (string, error) {
	return m.vault, m.err
}

type mockProposalStore struct {
	err error

	createdRequestID int64
	createdItems     []domain.ProposalItemPayload
	sentID           int64
	acceptedID       int64
}

func (m *mockProposalStore) CreateProposal(ctx context.Context, requestID int64, items []domain.ProposalItemPayload) (*domain.Proposal, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.createdRequestID = requestID
	m.createdItems = items
	total := 0.0
	for _, it := range items {
		total += it.Price
	}
	return &domain.Proposal{ID: 7, RequestID: requestID, Status: domain.ProposalStatusDraft, TotalAmount: total}, nil
}

func (m *mockProposalStore) SendProposal(ctx context.Context, proposalID int64) error {
	m.sentID = proposalID
	return m.err
}

func (m *mockProposalStore) AcceptProposal(ctx context.Context, proposalID int64) error {
	m.acceptedID = proposalID
	return m.err
}

type mockClientStore struct {
	account *domain.ClientAccount
	roster  []domain.ClientSummary
	err     error
}

func (m *mockClientStore) GetOwnClient(ctx context.Context) (*domain.ClientAccount, error) {
	return m.account, m.err
}

func (m *mockClientStore) UpdateOwnVault(ctx context.Context, vault string) (*domain.ClientAccount, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.account.TechnicalVault = vault
	return m.account, nil
}

func (m *mockClientStore) ListAgentClients(ctx context.Context) ([]domain.ClientSummary, error) {
	return m.roster, m.err
}

type mockAdminStore struct {
	pendingUsers []domain.User
	clients      []domain.User
	agents       []domain.User
	journey      []domain.JourneyRecord
	coreHealth   *domain.CoreHealth
	err          error

	userStatuses  map[int64]string
	agentStatuses map[int64]string
	deletedAgent  int64
}

func (m *mockAdminStore) ListPendingUsers(ctx context.Context) ([]domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	// Pending list excludes anything already toggled away from Active.
	var out []domain.User
	for _, u := range m.pendingUsers {
		if m.userStatuses[u.ID] == "" {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *mockAdminStore) SetUserStatus(ctx context.Context, userID int64, status string) error {
	if m.err != nil {
		return m.err
	}
	if m.userStatuses == nil {
		m.userStatuses = make(map[int64]string)
	}
	m.userStatuses[userID] = status
	return nil
}

func (m *mockAdminStore) ListAdminClients(ctx context.Context) ([]domain.User, error) {
	return m.clients, m.err
}

func (m *mockAdminStore) ListAdminAgents(ctx context.Context) ([]domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]domain.User, len(m.agents))
	copy(out, m.agents)
	for i := range out {
		if s, ok := m.agentStatuses[out[i].ID]; ok {
			out[i].Status = s
		}
	}
	return out, nil
}

func (m *mockAdminStore) CreateAgent(ctx context.Context, agent *domain.NewAgent) (*domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &domain.User{ID: 42, FullName: agent.FullName, Email: agent.Email, Role: domain.RoleAgent, Status: domain.UserStatusActive}, nil
}

func (m *mockAdminStore) DeleteAgent(ctx context.Context, agentID int64) error {
	m.deletedAgent = agentID
	return m.err
}

func (m *mockAdminStore) SetAgentStatus(ctx context.Context, agentID int64, status string) error {
	if m.err != nil {
		return m.err
	}
	if m.agentStatuses == nil {
		m.agentStatuses = make(map[int64]string)
	}
	m.agentStatuses[agentID] = status
	return nil
}

func (m *mockAdminStore) GetClientJourney(ctx context.Context, clientID int64) ([]domain.JourneyRecord, error) {
	return m.journey, m.err
}

func (m *mockAdminStore) GetCoreHealth(ctx context.Context) (*domain.CoreHealth, error) {
	return m.coreHealth, m.err
}

// mockDraftCache is a plain map cache without TTL, enough for draft tests.
type mockDraftCache struct {
	items map[string]*domain.ProposalDraft
}

func newMockDraftCache() *mockDraftCache {
	return &mockDraftCache{items: make(map[string]*domain.ProposalDraft)}
}

func (c *mockDraftCache) Get(key string) (*domain.ProposalDraft, bool) {
	d, ok := c.items[key]
	return d, ok
}

func (c *mockDraftCache) Set(key string, value *domain.ProposalDraft) {
	c.items[key] = value
}

func (c *mockDraftCache) Delete(key string) {
	delete(c.items, key)
}

func (c *mockDraftCache) Len() int {
	return len(c.items)
}
