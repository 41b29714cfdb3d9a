package service

import (
	"context"
	"io"
	"time"

	"github.com/biztech/portal-bff-go/internal/domain"
	"github.com/biztech/portal-bff-go/internal/infra/observability"
	"github.com/biztech/portal-bff-go/internal/port"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var clientTracer = otel.Tracer("service/clientview")

// ClientViewService renders the client-facing pages: dashboard, project
// command center and technical vault. Mutations acknowledge and rely on the
// caller re-fetching; no view state is patched in place.
type ClientViewService struct {
	requests  port.RequestStore
	projects  port.ProjectStore
	proposals port.ProposalStore
	clients   port.ClientStore
	metrics   *observability.Metrics
	logger    *zap.Logger
	apiBase   string
}

// NewClientViewService creates the client view service. apiBase is the core
// API root used to resolve file URLs.
func NewClientViewService(
	requests port.RequestStore,
	projects port.ProjectStore,
	proposals port.ProposalStore,
	clients port.ClientStore,
	metrics *observability.Metrics,
	logger *zap.Logger,
	apiBase string,
) *ClientViewService {
	return &ClientViewService{
		requests:  requests,
		projects:  projects,
		proposals: proposals,
		clients:   clients,
		metrics:   metrics,
		logger:    logger,
		apiBase:   apiBase,
	}
}

// Dashboard lists the caller's requests with derived counts. The core API
// scopes the collection to the authenticated client.
func (s *ClientViewService) Dashboard(ctx context.Context) (*domain.ClientDashboard, error) {
	ctx, span := clientTracer.Start(ctx, "ClientViewService.Dashboard")
	defer span.End()

	start := time.Now()
	defer func() { s.metrics.RecordRequestDuration("client_dashboard", time.Since(start)) }()

	requests, err := s.requests.ListRequests(ctx, "")
	if err != nil {
		return nil, err
	}

	dashboard := &domain.ClientDashboard{
		Requests: make([]domain.ClientRequestView, 0, len(requests)),
	}
	for i := range requests {
		view := clientRequestView(&requests[i], s.apiBase)
		dashboard.Requests = append(dashboard.Requests, view)

		switch view.Status {
		case domain.ClientCategoryPendingReview, domain.ClientCategoryPending:
			dashboard.PendingCount++
		case domain.ClientCategoryActionRequired:
			dashboard.ActionCount++
			if dashboard.ActionRequired == nil {
				first := view
				dashboard.ActionRequired = &first
			}
		}
	}

	return dashboard, nil
}

// AcceptProposal accepts a quoted proposal on the caller's behalf. The core
// API converts the request and creates the project; the fresh state comes
// from the next dashboard fetch.
func (s *ClientViewService) AcceptProposal(ctx context.Context, proposalID int64) error {
	ctx, span := clientTracer.Start(ctx, "ClientViewService.AcceptProposal")
	defer span.End()

	if err := s.proposals.AcceptProposal(ctx, proposalID); err != nil {
		s.logger.Error("failed to accept proposal",
			zap.Int64("proposal_id", proposalID),
			zap.Error(err),
		)
		return err
	}

	s.logger.Info("proposal accepted", zap.Int64("proposal_id", proposalID))
	return nil
}

// Workspace renders the project command center for one of the caller's
// projects.
func (s *ClientViewService) Workspace(ctx context.Context, projectID int64) (*domain.ProjectWorkspace, error) {
	ctx, span := clientTracer.Start(ctx, "ClientViewService.Workspace")
	defer span.End()

	project, err := s.projects.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return workspaceView(project, s.apiBase), nil
}

// UploadAsset forwards a client file to the project, tagged ClientAsset.
func (s *ClientViewService) UploadAsset(ctx context.Context, projectID int64, fileName string, file io.Reader) (*domain.AssetView, error) {
	ctx, span := clientTracer.Start(ctx, "ClientViewService.UploadAsset")
	defer span.End()

	if fileName == "" {
		return nil, &domain.ErrValidation{Field: "file", Message: "file name is required"}
	}

	asset, err := s.projects.UploadAsset(ctx, projectID, domain.AssetTypeClient, fileName, file)
	if err != nil {
		s.logger.Error("client asset upload failed",
			zap.Int64("project_id", projectID),
			zap.String("file_name", fileName),
			zap.Error(err),
		)
		return nil, err
	}
	s.metrics.IncrUpload("client_asset")

	view := assetViews([]domain.Asset{*asset}, s.apiBase)[0]
	return &view, nil
}

// Vault returns the caller's technical vault text.
func (s *ClientViewService) Vault(ctx context.Context) (*domain.VaultView, error) {
	ctx, span := clientTracer.Start(ctx, "ClientViewService.Vault")
	defer span.End()

	account, err := s.clients.GetOwnClient(ctx)
	if err != nil {
		return nil, err
	}
	return &domain.VaultView{Vault: account.TechnicalVault}, nil
}

// UpdateVault replaces the caller's technical vault text.
func (s *ClientViewService) UpdateVault(ctx context.Context, vault string) (*domain.VaultView, error) {
	ctx, span := clientTracer.Start(ctx, "ClientViewService.UpdateVault")
	defer span.End()

	account, err := s.clients.UpdateOwnVault(ctx, vault)
	if err != nil {
		s.logger.Error("vault update failed", zap.Error(err))
		return nil, err
	}

	s.logger.Info("vault updated", zap.Int64("client_id", account.ID))
	return &domain.VaultView{Vault: account.TechnicalVault}, nil
}
