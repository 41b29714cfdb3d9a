package coreapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/biztech/portal-bff-go/internal/domain"
)

// --- Service requests (implements port.RequestStore) ---

// ListRequests fetches the caller-scoped request collection, optionally
// filtered by backend status.
func (c *Client) ListRequests(ctx context.Context, status string) ([]domain.ServiceRequest, error) {
	ctx, span := tracer.Start(ctx, "CoreAPI.ListRequests")
	defer span.End()

	path := "/requests"
	if status != "" {
		path += "?status=" + url.QueryEscape(status)
	}

	body, err := c.doGet(ctx, path)
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "coreapi/requests", Err: err}
	}
	return decodeList[domain.ServiceRequest](body, "requests")
}

// AssignAgent assigns an agent to a request (admin triage).
func (c *Client) AssignAgent(ctx context.Context, requestID, agentID int64) error {
	ctx, span := tracer.Start(ctx, "CoreAPI.AssignAgent")
	defer span.End()

	path := fmt.Sprintf("/requests/%d/assign", requestID)
	if _, err := c.doSend(ctx, http.MethodPatch, path, map[string]any{"agentId": agentID}); err != nil {
		return &domain.ErrExternalService{Service: "coreapi/requests", Err: err}
	}
	return nil
}
