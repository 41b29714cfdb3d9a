package handler

import (
	"net/http"
	"time"

	"github.com/biztech/portal-bff-go/internal/domain"
	"github.com/biztech/portal-bff-go/internal/infra/observability"
	"github.com/biztech/portal-bff-go/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("handler")

// Services bundles the role view services the router dispatches to.
type Services struct {
	Client    *service.ClientViewService
	Agent     *service.AgentViewService
	Admin     *service.AdminViewService
	Proposals *service.ProposalService
	Notes     *service.NotesService
}

// NewRouter creates the HTTP router with all routes and middleware.
// Everything under /v1 sits behind bearer auth with per-group role
// enforcement; operational endpoints stay open.
func NewRouter(svcs Services, verifier *service.TokenVerifier, metrics *observability.Metrics, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// --- Middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observability.ZapLoggerMiddleware(logger))
	r.Use(observability.TracingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/ping"))

	// --- Operational endpoints ---
	r.Get("/healthz", healthzHandler(svcs.Admin, logger))
	r.Get("/readyz", readyzHandler())
	r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	// --- API v1 ---
	r.Route("/v1", func(r chi.Router) {
		r.Use(AuthMiddleware(verifier, logger))
		r.Use(requestMetricsMiddleware(metrics))

		// =============================================
		// Client portal
		// =============================================
		r.Group(func(r chi.Router) {
			r.Use(RequireRole(logger, domain.RoleClient))
			r.Get("/client/dashboard", clientDashboardHandler(svcs.Client, logger))
			r.Patch("/proposals/{proposalID}/accept", acceptProposalHandler(svcs.Client, logger))
			r.Get("/client/projects/{projectID}", clientProjectHandler(svcs.Client, logger))
			r.Post("/client/projects/{projectID}/assets", clientAssetUploadHandler(svcs.Client, logger))
			r.Get("/client/vault", vaultGetHandler(svcs.Client, logger))
			r.Put("/client/vault", vaultPutHandler(svcs.Client, logger))
		})

		// =============================================
		// Agent portal
		// =============================================
		r.Group(func(r chi.Router) {
			r.Use(RequireRole(logger, domain.RoleAgent))
			r.Get("/agent/dashboard", agentDashboardHandler(svcs.Agent, logger))
			r.Get("/agent/clients", agentClientsHandler(svcs.Agent, logger))

			r.Post("/proposals", createProposalHandler(svcs.Proposals, logger))
			r.Post("/proposals/{proposalID}/send", sendProposalHandler(svcs.Agent, logger))

			// Draft sessions back the proposal calculator.
			r.Post("/agent/drafts", createDraftHandler(svcs.Proposals, logger))
			r.Get("/agent/drafts/{draftID}", getDraftHandler(svcs.Proposals, logger))
			r.Post("/agent/drafts/{draftID}/items", draftAddItemHandler(svcs.Proposals, logger))
			r.Patch("/agent/drafts/{draftID}/items/{itemID}", draftUpdateItemHandler(svcs.Proposals, logger))
			r.Delete("/agent/drafts/{draftID}/items/{itemID}", draftRemoveItemHandler(svcs.Proposals, logger))
			r.Post("/agent/drafts/{draftID}/submit", draftSubmitHandler(svcs.Proposals, logger))

			r.Get("/agent/projects/{projectID}", agentProjectHandler(svcs.Agent, logger))
			r.Patch("/agent/projects/{projectID}", agentProjectUpdateHandler(svcs.Agent, logger))
			r.Post("/agent/projects/{projectID}/assets", deliverableUploadHandler(svcs.Agent, logger))
			r.Get("/agent/projects/{projectID}/vault", agentVaultHandler(svcs.Agent, logger))
		})

		// =============================================
		// Project notes (client and agent on own projects)
		// =============================================
		r.Group(func(r chi.Router) {
			r.Use(RequireRole(logger, domain.RoleClient, domain.RoleAgent))
			r.Get("/projects/{projectID}/notes", listNotesHandler(svcs.Notes, logger))
			r.Post("/projects/{projectID}/notes", addNoteHandler(svcs.Notes, logger))
		})

		// =============================================
		// Admin console
		// =============================================
		r.Group(func(r chi.Router) {
			r.Use(RequireRole(logger, domain.RoleAdmin))
			r.Get("/admin/dashboard", adminDashboardHandler(svcs.Admin, logger))
			r.Patch("/admin/users/{userID}/status", userStatusHandler(svcs.Admin, logger))
			r.Patch("/admin/agents/{agentID}/status", agentStatusHandler(svcs.Admin, logger))
			r.Post("/admin/agents", createAgentHandler(svcs.Admin, logger))
			r.Delete("/admin/agents/{agentID}", deleteAgentHandler(svcs.Admin, logger))
			r.Get("/admin/clients", adminClientsHandler(svcs.Admin, logger))
			r.Get("/admin/agents", adminAgentsHandler(svcs.Admin, logger))
			r.Get("/admin/requests", adminRequestsHandler(svcs.Admin, logger))
			r.Get("/admin/projects", adminProjectsHandler(svcs.Admin, logger))
			r.Patch("/admin/requests/{requestID}/assign", assignAgentHandler(svcs.Admin, logger))
			r.Get("/admin/clients/{clientID}/journey", journeyHandler(svcs.Admin, logger))
			r.Get("/admin/settings", settingsGetHandler(svcs.Admin, logger))
			r.Put("/admin/settings", settingsPutHandler(svcs.Admin, logger))
			r.Get("/admin/health", adminHealthHandler(svcs.Admin, logger))
		})
	})

	return r
}

// requestMetricsMiddleware records per-route latency and a
// success/error counter for the platform health snapshot.
func requestMetricsMiddleware(metrics *observability.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			operation := r.Method
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				operation = r.Method + " " + rctx.RoutePattern()
			}
			metrics.RecordRequestDuration(operation, time.Since(start))

			status := "success"
			if ww.Status() >= http.StatusInternalServerError {
				status = "error"
			}
			metrics.IncrRequest(status)
		})
	}
}

// ============================================================
// Probes
// ============================================================

func healthzHandler(adminSvc *service.AdminViewService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		health, err := adminSvc.Health(r.Context())
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		status := "healthy"
		if !health.CoreReachable {
			status = "degraded"
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"status":         status,
			"core_reachable": health.CoreReachable,
			"checked_at":     time.Now().Format(time.RFC3339),
		})
	}
}

func readyzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

// ============================================================
// Project notes
// ============================================================

func listNotesHandler(svc *service.NotesService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/projects/{projectID}/notes")
		defer span.End()

		projectID, err := idParam(r, "projectID")
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		notes, err := svc.List(ctx, projectID)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"notes": notes})
	}
}

func addNoteHandler(svc *service.NotesService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/projects/{projectID}/notes")
		defer span.End()

		projectID, err := idParam(r, "projectID")
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		var body struct {
			Content string `json:"content"`
		}
		if err := decodeBody(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		note, err := svc.Add(ctx, projectID, body.Content)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, note)
	}
}
