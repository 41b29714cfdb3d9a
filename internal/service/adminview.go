package service

import (
	"context"
	"strings"
	"time"

	"github.com/biztech/portal-bff-go/internal/domain"
	"github.com/biztech/portal-bff-go/internal/infra/observability"
	"github.com/biztech/portal-bff-go/internal/port"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var adminTracer = otel.Tracer("service/adminview")

// AdminViewService renders the admin triage pages: pending approvals, the
// agent roster, request assignment, client journeys, platform settings and
// the health panel.
type AdminViewService struct {
	admin    port.AdminStore
	requests port.RequestStore
	projects port.ProjectStore
	settings port.SettingsStore
	drafts   port.Cache[*domain.ProposalDraft]
	metrics  *observability.Metrics
	logger   *zap.Logger
	apiBase  string
}

// NewAdminViewService creates the admin view service. drafts is the shared
// proposal-draft session cache; the health panel reports its live size.
func NewAdminViewService(
	admin port.AdminStore,
	requests port.RequestStore,
	projects port.ProjectStore,
	settings port.SettingsStore,
	drafts port.Cache[*domain.ProposalDraft],
	metrics *observability.Metrics,
	logger *zap.Logger,
	apiBase string,
) *AdminViewService {
	return &AdminViewService{
		admin:    admin,
		requests: requests,
		projects: projects,
		settings: settings,
		drafts:   drafts,
		metrics:  metrics,
		logger:   logger,
		apiBase:  apiBase,
	}
}

// Dashboard fetches the triage queues and the agent roster in parallel.
// Users from the pending list are flagged pendingApproval so they stay
// distinguishable from admin-deactivated accounts. The request queue is
// re-filtered to Pending Triage in case the core API returns a wider set.
func (s *AdminViewService) Dashboard(ctx context.Context) (*domain.AdminDashboard, error) {
	ctx, span := adminTracer.Start(ctx, "AdminViewService.Dashboard")
	defer span.End()

	start := time.Now()
	defer func() { s.metrics.RecordRequestDuration("admin_dashboard", time.Since(start)) }()

	var (
		pendingUsers []domain.User
		requests     []domain.ServiceRequest
		agents       []domain.User
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := s.admin.ListPendingUsers(gctx)
		if err != nil {
			return err
		}
		pendingUsers = rows
		return nil
	})
	g.Go(func() error {
		rows, err := s.requests.ListRequests(gctx, domain.RequestStatusPendingTriage)
		if err != nil {
			return err
		}
		requests = rows
		return nil
	})
	g.Go(func() error {
		rows, err := s.admin.ListAdminAgents(gctx)
		if err != nil {
			return err
		}
		agents = rows
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i := range pendingUsers {
		pendingUsers[i].PendingApproval = true
	}

	dashboard := &domain.AdminDashboard{
		PendingUsers:     pendingUsers,
		PendingRequests:  make([]domain.AgentRequestView, 0, len(requests)),
		Agents:           agents,
		PendingApprovals: len(pendingUsers),
	}

	for i := range requests {
		if requests[i].Status != domain.RequestStatusPendingTriage {
			continue
		}
		dashboard.PendingRequests = append(dashboard.PendingRequests, agentRequestView(&requests[i], s.apiBase))
	}
	dashboard.NewRequests = len(dashboard.PendingRequests)

	for _, a := range agents {
		if a.Status == domain.UserStatusActive {
			dashboard.ActiveAgents++
		}
	}

	return dashboard, nil
}

// SetUserStatus approves or rejects a user account.
func (s *AdminViewService) SetUserStatus(ctx context.Context, userID int64, status string) error {
	ctx, span := adminTracer.Start(ctx, "AdminViewService.SetUserStatus")
	defer span.End()

	if err := validAccountStatus(status); err != nil {
		return err
	}

	if err := s.admin.SetUserStatus(ctx, userID, status); err != nil {
		s.logger.Error("failed to set user status",
			zap.Int64("user_id", userID),
			zap.String("status", status),
			zap.Error(err),
		)
		return err
	}

	s.logger.Info("user status changed",
		zap.Int64("user_id", userID),
		zap.String("status", status),
	)
	return nil
}

// SetAgentStatus toggles an agent between Active and Rejected.
func (s *AdminViewService) SetAgentStatus(ctx context.Context, agentID int64, status string) error {
	ctx, span := adminTracer.Start(ctx, "AdminViewService.SetAgentStatus")
	defer span.End()

	if err := validAccountStatus(status); err != nil {
		return err
	}

	if err := s.admin.SetAgentStatus(ctx, agentID, status); err != nil {
		s.logger.Error("failed to set agent status",
			zap.Int64("agent_id", agentID),
			zap.String("status", status),
			zap.Error(err),
		)
		return err
	}

	s.logger.Info("agent status changed",
		zap.Int64("agent_id", agentID),
		zap.String("status", status),
	)
	return nil
}

// CreateAgent provisions a new agent account.
func (s *AdminViewService) CreateAgent(ctx context.Context, agent *domain.NewAgent) (*domain.User, error) {
	ctx, span := adminTracer.Start(ctx, "AdminViewService.CreateAgent")
	defer span.End()

	if strings.TrimSpace(agent.FullName) == "" {
		return nil, &domain.ErrValidation{Field: "fullName", Message: "required"}
	}
	if !strings.Contains(agent.Email, "@") {
		return nil, &domain.ErrValidation{Field: "email", Message: "invalid email"}
	}

	created, err := s.admin.CreateAgent(ctx, agent)
	if err != nil {
		s.logger.Error("failed to create agent", zap.String("email", agent.Email), zap.Error(err))
		return nil, err
	}

	s.logger.Info("agent created",
		zap.Int64("agent_id", created.ID),
		zap.String("email", created.Email),
	)
	return created, nil
}

// DeleteAgent removes an agent account.
func (s *AdminViewService) DeleteAgent(ctx context.Context, agentID int64) error {
	ctx, span := adminTracer.Start(ctx, "AdminViewService.DeleteAgent")
	defer span.End()

	if err := s.admin.DeleteAgent(ctx, agentID); err != nil {
		s.logger.Error("failed to delete agent", zap.Int64("agent_id", agentID), zap.Error(err))
		return err
	}

	s.logger.Info("agent deleted", zap.Int64("agent_id", agentID))
	return nil
}

// Clients lists every client account.
func (s *AdminViewService) Clients(ctx context.Context) ([]domain.User, error) {
	ctx, span := adminTracer.Start(ctx, "AdminViewService.Clients")
	defer span.End()

	return s.admin.ListAdminClients(ctx)
}

// Agents lists every agent account.
func (s *AdminViewService) Agents(ctx context.Context) ([]domain.User, error) {
	ctx, span := adminTracer.Start(ctx, "AdminViewService.Agents")
	defer span.End()

	return s.admin.ListAdminAgents(ctx)
}

// Requests lists all service requests through the agent projection, without
// the relevance filter; admins see the full queue.
func (s *AdminViewService) Requests(ctx context.Context) ([]domain.AgentRequestView, error) {
	ctx, span := adminTracer.Start(ctx, "AdminViewService.Requests")
	defer span.End()

	requests, err := s.requests.ListRequests(ctx, "")
	if err != nil {
		return nil, err
	}

	views := make([]domain.AgentRequestView, 0, len(requests))
	for i := range requests {
		views = append(views, agentRequestView(&requests[i], s.apiBase))
	}
	return views, nil
}

// Projects lists all projects platform-wide.
func (s *AdminViewService) Projects(ctx context.Context) ([]domain.AgentProjectView, error) {
	ctx, span := adminTracer.Start(ctx, "AdminViewService.Projects")
	defer span.End()

	projects, err := s.projects.ListProjects(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]domain.AgentProjectView, 0, len(projects))
	for i := range projects {
		views = append(views, agentProjectView(&projects[i]))
	}
	return views, nil
}

// AssignAgent routes a pending request to an agent.
func (s *AdminViewService) AssignAgent(ctx context.Context, requestID, agentID int64) error {
	ctx, span := adminTracer.Start(ctx, "AdminViewService.AssignAgent")
	defer span.End()

	if agentID <= 0 {
		return &domain.ErrValidation{Field: "agentId", Message: "required"}
	}

	if err := s.requests.AssignAgent(ctx, requestID, agentID); err != nil {
		s.logger.Error("failed to assign agent",
			zap.Int64("request_id", requestID),
			zap.Int64("agent_id", agentID),
			zap.Error(err),
		)
		return err
	}

	s.logger.Info("request assigned",
		zap.Int64("request_id", requestID),
		zap.Int64("agent_id", agentID),
	)
	return nil
}

// Journey renders a client's full lifecycle timeline. Backend record order
// is preserved; missing stages render placeholders.
func (s *AdminViewService) Journey(ctx context.Context, clientID int64) ([]domain.TimelineCard, error) {
	ctx, span := adminTracer.Start(ctx, "AdminViewService.Journey")
	defer span.End()

	records, err := s.admin.GetClientJourney(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return domain.AssembleTimeline(records, s.apiBase), nil
}

// Settings returns the persisted platform settings.
func (s *AdminViewService) Settings(ctx context.Context) (*domain.PlatformSettings, error) {
	ctx, span := adminTracer.Start(ctx, "AdminViewService.Settings")
	defer span.End()

	return s.settings.Get(ctx)
}

// UpdateSettings replaces the platform settings.
func (s *AdminViewService) UpdateSettings(ctx context.Context, settings *domain.PlatformSettings) (*domain.PlatformSettings, error) {
	ctx, span := adminTracer.Start(ctx, "AdminViewService.UpdateSettings")
	defer span.End()

	if strings.TrimSpace(settings.PlatformName) == "" {
		return nil, &domain.ErrValidation{Field: "platformName", Message: "required"}
	}
	if settings.SessionTimeoutMinutes <= 0 {
		return nil, &domain.ErrValidation{Field: "sessionTimeoutMinutes", Message: "must be positive"}
	}

	if err := s.settings.Put(ctx, settings); err != nil {
		s.logger.Error("failed to persist settings", zap.Error(err))
		return nil, err
	}

	s.logger.Info("platform settings updated", zap.String("platform_name", settings.PlatformName))
	return settings, nil
}

// Health composes the admin health panel: core API health, the BFF's own
// counters and the active agent count. An unreachable core API degrades the
// panel instead of failing it.
func (s *AdminViewService) Health(ctx context.Context) (*domain.PlatformHealth, error) {
	ctx, span := adminTracer.Start(ctx, "AdminViewService.Health")
	defer span.End()

	health := &domain.PlatformHealth{}

	core, err := s.admin.GetCoreHealth(ctx)
	if err != nil {
		s.logger.Warn("core health check failed", zap.Error(err))
	} else {
		health.Core = core
		health.CoreReachable = true
	}

	agents, err := s.admin.ListAdminAgents(ctx)
	if err != nil {
		s.logger.Warn("could not count agents for health panel", zap.Error(err))
	} else {
		for _, a := range agents {
			if a.Status == domain.UserStatusActive {
				health.ActiveAgents++
			}
		}
	}

	health.OpenDraftCount = s.drafts.Len()

	snap := s.metrics.Snapshot()
	health.TotalRequests = snap.TotalRequests
	health.ErrorRate = snap.ErrorRate
	health.CacheHitRate = snap.CacheHitRate

	return health, nil
}

// validAccountStatus rejects anything but the two statuses the core API
// stores.
func validAccountStatus(status string) error {
	if status != domain.UserStatusActive && status != domain.UserStatusRejected {
		return &domain.ErrValidation{Field: "status", Message: "must be Active or Rejected"}
	}
	return nil
}
