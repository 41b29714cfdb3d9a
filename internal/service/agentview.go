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
	"golang.org/x/sync/errgroup"
)

var agentTracer = otel.Tracer("service/agentview")

// AgentViewService renders the agent-facing pages: the work queue dashboard,
// project management and the client roster.
type AgentViewService struct {
	requests  port.RequestStore
	projects  port.ProjectStore
	proposals port.ProposalStore
	clients   port.ClientStore
	metrics   *observability.Metrics
	logger    *zap.Logger
	apiBase   string
}

// NewAgentViewService creates the agent view service.
func NewAgentViewService(
	requests port.RequestStore,
	projects port.ProjectStore,
	proposals port.ProposalStore,
	clients port.ClientStore,
	metrics *observability.Metrics,
	logger *zap.Logger,
	apiBase string,
) *AgentViewService {
	return &AgentViewService{
		requests:  requests,
		projects:  projects,
		proposals: proposals,
		clients:   clients,
		metrics:   metrics,
		logger:    logger,
		apiBase:   apiBase,
	}
}

// Dashboard fetches the agent's requests and projects in parallel. Requests
// pass through the agent projection and only the relevant set survives.
func (s *AgentViewService) Dashboard(ctx context.Context) (*domain.AgentDashboard, error) {
	ctx, span := agentTracer.Start(ctx, "AgentViewService.Dashboard")
	defer span.End()

	start := time.Now()
	defer func() { s.metrics.RecordRequestDuration("agent_dashboard", time.Since(start)) }()

	var (
		requests []domain.ServiceRequest
		projects []domain.Project
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := s.requests.ListRequests(gctx, "")
		if err != nil {
			return err
		}
		requests = rows
		return nil
	})
	g.Go(func() error {
		rows, err := s.projects.ListProjects(gctx)
		if err != nil {
			return err
		}
		projects = rows
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	dashboard := &domain.AgentDashboard{
		Requests: make([]domain.AgentRequestView, 0, len(requests)),
		Projects: make([]domain.AgentProjectView, 0, len(projects)),
	}

	for i := range requests {
		view := agentRequestView(&requests[i], s.apiBase)
		if !domain.AgentRelevantStatus(view.Status) {
			continue
		}
		dashboard.Requests = append(dashboard.Requests, view)
	}
	dashboard.RelevantRequests = len(dashboard.Requests)

	for i := range projects {
		dashboard.Projects = append(dashboard.Projects, agentProjectView(&projects[i]))
		if projects[i].GlobalStatus != domain.ProjectStatusDelivered {
			dashboard.ActiveProjects++
		}
	}

	return dashboard, nil
}

// SendProposal marks a drafted proposal as sent to the client.
func (s *AgentViewService) SendProposal(ctx context.Context, proposalID int64) error {
	ctx, span := agentTracer.Start(ctx, "AgentViewService.SendProposal")
	defer span.End()

	if err := s.proposals.SendProposal(ctx, proposalID); err != nil {
		s.logger.Error("failed to send proposal",
			zap.Int64("proposal_id", proposalID),
			zap.Error(err),
		)
		return err
	}

	s.logger.Info("proposal sent", zap.Int64("proposal_id", proposalID))
	return nil
}

// Project renders the management view for one of the agent's projects.
func (s *AgentViewService) Project(ctx context.Context, projectID int64) (*domain.ProjectWorkspace, error) {
	ctx, span := agentTracer.Start(ctx, "AgentViewService.Project")
	defer span.End()

	project, err := s.projects.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return workspaceView(project, s.apiBase), nil
}

// UpdateProject sets progress and estimated completion date. Progress is
// clamped to [0,100] before it reaches the core API.
func (s *AgentViewService) UpdateProject(ctx context.Context, projectID int64, progressPercent int, ecd string) (*domain.ProjectWorkspace, error) {
	ctx, span := agentTracer.Start(ctx, "AgentViewService.UpdateProject")
	defer span.End()

	if progressPercent < 0 {
		progressPercent = 0
	}
	if progressPercent > 100 {
		progressPercent = 100
	}

	project, err := s.projects.UpdateProject(ctx, projectID, progressPercent, ecd)
	if err != nil {
		s.logger.Error("project update failed",
			zap.Int64("project_id", projectID),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Info("project updated",
		zap.Int64("project_id", projectID),
		zap.Int("progress", progressPercent),
		zap.String("ecd", ecd),
	)
	return workspaceView(project, s.apiBase), nil
}

// UploadDeliverable forwards an agent file to the project, tagged
// Deliverable.
func (s *AgentViewService) UploadDeliverable(ctx context.Context, projectID int64, fileName string, file io.Reader) (*domain.AssetView, error) {
	ctx, span := agentTracer.Start(ctx, "AgentViewService.UploadDeliverable")
	defer span.End()

	if fileName == "" {
		return nil, &domain.ErrValidation{Field: "file", Message: "file name is required"}
	}

	asset, err := s.projects.UploadAsset(ctx, projectID, domain.AssetTypeDeliverable, fileName, file)
	if err != nil {
		s.logger.Error("deliverable upload failed",
			zap.Int64("project_id", projectID),
			zap.String("file_name", fileName),
			zap.Error(err),
		)
		return nil, err
	}
	s.metrics.IncrUpload("deliverable")

	view := assetViews([]domain.Asset{*asset}, s.apiBase)[0]
	return &view, nil
}

// Vault reveals the client vault of a project the agent manages.
func (s *AgentViewService) Vault(ctx context.Context, projectID int64) (*domain.VaultView, error) {
	ctx, span := agentTracer.Start(ctx, "AgentViewService.Vault")
	defer span.End()

	vault, err := s.projects.GetProjectVault(ctx, projectID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("project vault revealed", zap.Int64("project_id", projectID))
	return &domain.VaultView{Vault: vault}, nil
}

// Clients renders the agent's client roster with derived stats.
func (s *AgentViewService) Clients(ctx context.Context) (*domain.AgentClientsView, error) {
	ctx, span := agentTracer.Start(ctx, "AgentViewService.Clients")
	defer span.End()

	clients, err := s.clients.ListAgentClients(ctx)
	if err != nil {
		return nil, err
	}

	view := &domain.AgentClientsView{
		Clients:      clients,
		TotalClients: len(clients),
	}
	for _, c := range clients {
		if c.ActiveProjects > 0 {
			view.ActiveClients++
		}
		view.TotalActiveProjects += c.ActiveProjects
	}
	return view, nil
}
