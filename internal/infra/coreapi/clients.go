package coreapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/biztech/portal-bff-go/internal/domain"
)

// --- Client records and rosters (implements port.ClientStore) ---

// GetOwnClient fetches the caller's own client record, vault included.
func (c *Client) GetOwnClient(ctx context.Context) (*domain.ClientAccount, error) {
	ctx, span := tracer.Start(ctx, "CoreAPI.GetOwnClient")
	defer span.End()

	body, err := c.doGet(ctx, "/clients/me")
	if err != nil {
		return nil, err
	}

	var account domain.ClientAccount
	if err := json.Unmarshal(body, &account); err != nil {
		return nil, fmt.Errorf("decode client record: %w", err)
	}
	return &account, nil
}

// UpdateOwnVault replaces the caller's technical vault text. The backend
// encrypts at rest; the BFF only ever relays the plaintext over TLS.
func (c *Client) UpdateOwnVault(ctx context.Context, vault string) (*domain.ClientAccount, error) {
	ctx, span := tracer.Start(ctx, "CoreAPI.UpdateOwnVault")
	defer span.End()

	body, err := c.doSend(ctx, http.MethodPut, "/clients/me", map[string]any{"technicalVault": vault})
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "coreapi/clients", Err: err}
	}

	var account domain.ClientAccount
	if len(body) > 0 {
		if err := json.Unmarshal(body, &account); err != nil {
			return nil, fmt.Errorf("decode client record: %w", err)
		}
	}
	return &account, nil
}

// ListAgentClients fetches the roster of clients the calling agent works
// with, including derived project counters.
func (c *Client) ListAgentClients(ctx context.Context) ([]domain.ClientSummary, error) {
	ctx, span := tracer.Start(ctx, "CoreAPI.ListAgentClients")
	defer span.End()

	body, err := c.doGet(ctx, "/clients/agent-list")
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "coreapi/clients", Err: err}
	}
	return decodeList[domain.ClientSummary](body, "agent clients")
}
