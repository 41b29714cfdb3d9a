package coreapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/biztech/portal-bff-go/internal/domain"

	"go.uber.org/zap"
)

// --- Projects, assets, notes, vault (implements port.ProjectStore) ---

// ListProjects fetches the caller-scoped project collection.
func (c *Client) ListProjects(ctx context.Context) ([]domain.Project, error) {
	ctx, span := tracer.Start(ctx, "CoreAPI.ListProjects")
	defer span.End()

	body, err := c.doGet(ctx, "/projects")
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "coreapi/projects", Err: err}
	}
	return decodeList[domain.Project](body, "projects")
}

// GetProject fetches one project with its nested assets.
func (c *Client) GetProject(ctx context.Context, projectID int64) (*domain.Project, error) {
	ctx, span := tracer.Start(ctx, "CoreAPI.GetProject")
	defer span.End()

	body, err := c.doGet(ctx, fmt.Sprintf("/projects/%d", projectID))
	if err != nil {
		return nil, err
	}

	var project domain.Project
	if err := json.Unmarshal(body, &project); err != nil {
		return nil, fmt.Errorf("decode project: %w", err)
	}
	return &project, nil
}

// UpdateProject patches progress and estimated completion date.
func (c *Client) UpdateProject(ctx context.Context, projectID int64, progressPercent int, ecd string) (*domain.Project, error) {
	ctx, span := tracer.Start(ctx, "CoreAPI.UpdateProject")
	defer span.End()

	path := fmt.Sprintf("/projects/%d", projectID)
	body, err := c.doSend(ctx, http.MethodPatch, path, map[string]any{
		"progressPercent": progressPercent,
		"ecd":             ecd,
	})
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "coreapi/projects", Err: err}
	}

	var project domain.Project
	if len(body) > 0 {
		if err := json.Unmarshal(body, &project); err != nil {
			return nil, fmt.Errorf("decode updated project: %w", err)
		}
	}
	return &project, nil
}

// UploadAsset streams one file to the project as multipart form data. The
// type query parameter records which party uploaded it. Uploads share a
// bulkhead so a burst cannot exhaust the HTTP client.
func (c *Client) UploadAsset(ctx context.Context, projectID int64, assetType, fileName string, file io.Reader) (*domain.Asset, error) {
	ctx, span := tracer.Start(ctx, "CoreAPI.UploadAsset")
	defer span.End()

	if err := c.uploads.Acquire(ctx); err != nil {
		return nil, err
	}
	defer c.uploads.Release()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", fileName)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	path := fmt.Sprintf("/projects/%d/assets?type=%s", projectID, url.QueryEscape(assetType))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return nil, err
	}
	c.setAuth(ctx, req)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("coreapi: upload failed",
			zap.Int64("project_id", projectID),
			zap.String("type", assetType),
			zap.Error(err),
		)
		return nil, &domain.ErrExternalService{Service: "coreapi/assets", Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("coreapi: upload non-2xx",
			zap.Int64("project_id", projectID),
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(respBody)),
		)
		return nil, apiError(http.MethodPost, path, resp.StatusCode, respBody)
	}

	var asset domain.Asset
	if err := json.Unmarshal(respBody, &asset); err != nil {
		return nil, fmt.Errorf("decode asset: %w", err)
	}
	return &asset, nil
}

// ListNotes fetches a project's discussion thread.
func (c *Client) ListNotes(ctx context.Context, projectID int64) ([]domain.Note, error) {
	ctx, span := tracer.Start(ctx, "CoreAPI.ListNotes")
	defer span.End()

	body, err := c.doGet(ctx, fmt.Sprintf("/projects/%d/notes", projectID))
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "coreapi/notes", Err: err}
	}
	return decodeList[domain.Note](body, "notes")
}

// CreateNote appends one message to a project's discussion thread.
func (c *Client) CreateNote(ctx context.Context, projectID int64, content string) (*domain.Note, error) {
	ctx, span := tracer.Start(ctx, "CoreAPI.CreateNote")
	defer span.End()

	path := fmt.Sprintf("/projects/%d/notes", projectID)
	body, err := c.doSend(ctx, http.MethodPost, path, map[string]any{"content": content})
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "coreapi/notes", Err: err}
	}

	var note domain.Note
	if err := json.Unmarshal(body, &note); err != nil {
		return nil, fmt.Errorf("decode note: %w", err)
	}
	return &note, nil
}

// GetProjectVault reveals the owning client's technical vault for a project
// the agent manages.
func (c *Client) GetProjectVault(ctx context.Context, projectID int64) (string, error) {
	ctx, span := tracer.Start(ctx, "CoreAPI.GetProjectVault")
	defer span.End()

	body, err := c.doGet(ctx, fmt.Sprintf("/projects/%d/vault", projectID))
	if err != nil {
		return "", err
	}

	var payload struct {
		Vault string `json:"vault"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("decode vault: %w", err)
	}
	return payload.Vault, nil
}
