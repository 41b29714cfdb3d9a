package coreapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/biztech/portal-bff-go/internal/domain"
)

// --- Proposals (implements port.ProposalStore) ---

// CreateProposal creates a draft proposal for a request. Items arrive
// already collapsed to {description, price}; the core API never sees
// quantities.
func (c *Client) CreateProposal(ctx context.Context, requestID int64, items []domain.ProposalItemPayload) (*domain.Proposal, error) {
	ctx, span := tracer.Start(ctx, "CoreAPI.CreateProposal")
	defer span.End()

	body, err := c.doSend(ctx, http.MethodPost, "/proposals", map[string]any{
		"requestId": requestID,
		"items":     items,
	})
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "coreapi/proposals", Err: err}
	}

	var proposal domain.Proposal
	if err := json.Unmarshal(body, &proposal); err != nil {
		return nil, fmt.Errorf("decode proposal: %w", err)
	}
	return &proposal, nil
}

// SendProposal emails the proposal to the client; the backend flips its
// status to Sent and the request to Quoted.
func (c *Client) SendProposal(ctx context.Context, proposalID int64) error {
	ctx, span := tracer.Start(ctx, "CoreAPI.SendProposal")
	defer span.End()

	path := fmt.Sprintf("/proposals/%d/send", proposalID)
	if _, err := c.doSend(ctx, http.MethodPost, path, nil); err != nil {
		return &domain.ErrExternalService{Service: "coreapi/proposals", Err: err}
	}
	return nil
}

// AcceptProposal records the client's acceptance. The core API creates the
// project as a side effect.
func (c *Client) AcceptProposal(ctx context.Context, proposalID int64) error {
	ctx, span := tracer.Start(ctx, "CoreAPI.AcceptProposal")
	defer span.End()

	path := fmt.Sprintf("/proposals/%d/accept", proposalID)
	if _, err := c.doSend(ctx, http.MethodPatch, path, nil); err != nil {
		return &domain.ErrExternalService{Service: "coreapi/proposals", Err: err}
	}
	return nil
}
