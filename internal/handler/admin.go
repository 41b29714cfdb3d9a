package handler

import (
	"net/http"

	"github.com/biztech/portal-bff-go/internal/domain"
	"github.com/biztech/portal-bff-go/internal/service"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ============================================================
// Admin console handlers
// ============================================================

func adminDashboardHandler(svc *service.AdminViewService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/admin/dashboard")
		defer span.End()

		dashboard, err := svc.Dashboard(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, dashboard)
	}
}

func userStatusHandler(svc *service.AdminViewService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PATCH /v1/admin/users/{userID}/status")
		defer span.End()

		userID, err := idParam(r, "userID")
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		var body struct {
			Status string `json:"status"`
		}
		if err := decodeBody(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		span.SetAttributes(
			attribute.Int64("user.id", userID),
			attribute.String("user.status", body.Status),
		)

		if err := svc.SetUserStatus(ctx, userID, body.Status); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func agentStatusHandler(svc *service.AdminViewService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PATCH /v1/admin/agents/{agentID}/status")
		defer span.End()

		agentID, err := idParam(r, "agentID")
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		var body struct {
			Status string `json:"status"`
		}
		if err := decodeBody(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		if err := svc.SetAgentStatus(ctx, agentID, body.Status); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func createAgentHandler(svc *service.AdminViewService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/admin/agents")
		defer span.End()

		var body domain.NewAgent
		if err := decodeBody(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		agent, err := svc.CreateAgent(ctx, &body)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, agent)
	}
}

func deleteAgentHandler(svc *service.AdminViewService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /v1/admin/agents/{agentID}")
		defer span.End()

		agentID, err := idParam(r, "agentID")
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		if err := svc.DeleteAgent(ctx, agentID); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func adminClientsHandler(svc *service.AdminViewService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/admin/clients")
		defer span.End()

		clients, err := svc.Clients(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"clients": clients})
	}
}

func adminAgentsHandler(svc *service.AdminViewService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/admin/agents")
		defer span.End()

		agents, err := svc.Agents(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"agents": agents})
	}
}

func adminRequestsHandler(svc *service.AdminViewService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/admin/requests")
		defer span.End()

		requests, err := svc.Requests(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"requests": requests})
	}
}

func adminProjectsHandler(svc *service.AdminViewService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/admin/projects")
		defer span.End()

		projects, err := svc.Projects(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"projects": projects})
	}
}

func assignAgentHandler(svc *service.AdminViewService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PATCH /v1/admin/requests/{requestID}/assign")
		defer span.End()

		requestID, err := idParam(r, "requestID")
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		var body struct {
			AgentID int64 `json:"agentId"`
		}
		if err := decodeBody(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		span.SetAttributes(
			attribute.Int64("request.id", requestID),
			attribute.Int64("agent.id", body.AgentID),
		)

		if err := svc.AssignAgent(ctx, requestID, body.AgentID); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func journeyHandler(svc *service.AdminViewService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/admin/clients/{clientID}/journey")
		defer span.End()

		clientID, err := idParam(r, "clientID")
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		timeline, err := svc.Journey(ctx, clientID)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"timeline": timeline})
	}
}

func settingsGetHandler(svc *service.AdminViewService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/admin/settings")
		defer span.End()

		settings, err := svc.Settings(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, settings)
	}
}

func settingsPutHandler(svc *service.AdminViewService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PUT /v1/admin/settings")
		defer span.End()

		var body domain.PlatformSettings
		if err := decodeBody(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		settings, err := svc.UpdateSettings(ctx, &body)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, settings)
	}
}

func adminHealthHandler(svc *service.AdminViewService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/admin/health")
		defer span.End()

		health, err := svc.Health(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, health)
	}
}
