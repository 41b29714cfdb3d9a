package coreapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/biztech/portal-bff-go/internal/domain"
)

// --- Admin triage and drill-down (implements port.AdminStore) ---

// ListPendingUsers fetches accounts awaiting approval.
func (c *Client) ListPendingUsers(ctx context.Context) ([]domain.User, error) {
	ctx, span := tracer.Start(ctx, "CoreAPI.ListPendingUsers")
	defer span.End()

	body, err := c.doGet(ctx, "/admin/users/pending")
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "coreapi/admin", Err: err}
	}
	return decodeList[domain.User](body, "pending users")
}

// SetUserStatus approves, rejects or deactivates a user account.
func (c *Client) SetUserStatus(ctx context.Context, userID int64, status string) error {
	ctx, span := tracer.Start(ctx, "CoreAPI.SetUserStatus")
	defer span.End()

	path := fmt.Sprintf("/admin/users/%d/status", userID)
	if _, err := c.doSend(ctx, http.MethodPatch, path, map[string]any{"status": status}); err != nil {
		return &domain.ErrExternalService{Service: "coreapi/admin", Err: err}
	}
	return nil
}

// ListAdminClients fetches every client account for the admin roster.
func (c *Client) ListAdminClients(ctx context.Context) ([]domain.User, error) {
	ctx, span := tracer.Start(ctx, "CoreAPI.ListAdminClients")
	defer span.End()

	body, err := c.doGet(ctx, "/admin/clients")
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "coreapi/admin", Err: err}
	}
	return decodeList[domain.User](body, "clients")
}

// ListAdminAgents fetches every agent account for the admin roster.
func (c *Client) ListAdminAgents(ctx context.Context) ([]domain.User, error) {
	ctx, span := tracer.Start(ctx, "CoreAPI.ListAdminAgents")
	defer span.End()

	body, err := c.doGet(ctx, "/admin/agents")
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "coreapi/admin", Err: err}
	}
	return decodeList[domain.User](body, "agents")
}

// CreateAgent provisions a new agent account.
func (c *Client) CreateAgent(ctx context.Context, agent *domain.NewAgent) (*domain.User, error) {
	ctx, span := tracer.Start(ctx, "CoreAPI.CreateAgent")
	defer span.End()

	body, err := c.doSend(ctx, http.MethodPost, "/admin/agents", agent)
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "coreapi/admin", Err: err}
	}

	var created domain.User
	if err := json.Unmarshal(body, &created); err != nil {
		return nil, fmt.Errorf("decode created agent: %w", err)
	}
	return &created, nil
}

// DeleteAgent removes an agent account.
func (c *Client) DeleteAgent(ctx context.Context, agentID int64) error {
	ctx, span := tracer.Start(ctx, "CoreAPI.DeleteAgent")
	defer span.End()

	path := fmt.Sprintf("/admin/agents/%d", agentID)
	if _, err := c.doSend(ctx, http.MethodDelete, path, nil); err != nil {
		return &domain.ErrExternalService{Service: "coreapi/admin", Err: err}
	}
	return nil
}

// SetAgentStatus toggles an agent between Active and Rejected.
func (c *Client) SetAgentStatus(ctx context.Context, agentID int64, status string) error {
	ctx, span := tracer.Start(ctx, "CoreAPI.SetAgentStatus")
	defer span.End()

	path := fmt.Sprintf("/admin/agents/%d/status", agentID)
	if _, err := c.doSend(ctx, http.MethodPatch, path, map[string]any{"status": status}); err != nil {
		return &domain.ErrExternalService{Service: "coreapi/admin", Err: err}
	}
	return nil
}

// GetClientJourney fetches the pre-joined request/proposal/project records
// for one client. The join happens server-side; the BFF only composes the
// timeline cards.
func (c *Client) GetClientJourney(ctx context.Context, clientID int64) ([]domain.JourneyRecord, error) {
	ctx, span := tracer.Start(ctx, "CoreAPI.GetClientJourney")
	defer span.End()

	body, err := c.doGet(ctx, fmt.Sprintf("/admin/clients/%d/journey", clientID))
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "coreapi/admin", Err: err}
	}
	return decodeList[domain.JourneyRecord](body, "client journey")
}

// GetCoreHealth asks the core API for its own health report.
func (c *Client) GetCoreHealth(ctx context.Context) (*domain.CoreHealth, error) {
	ctx, span := tracer.Start(ctx, "CoreAPI.GetCoreHealth")
	defer span.End()

	body, err := c.doGet(ctx, "/admin/health")
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "coreapi/admin", Err: err}
	}

	var health domain.CoreHealth
	if err := json.Unmarshal(body, &health); err != nil {
		return nil, fmt.Errorf("decode health: %w", err)
	}
	return &health, nil
}
