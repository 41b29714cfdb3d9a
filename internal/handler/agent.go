package handler

import (
	"net/http"
	"strconv"

	"github.com/biztech/portal-bff-go/internal/domain"
	"github.com/biztech/portal-bff-go/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ============================================================
// Agent portal handlers
// ============================================================

func agentDashboardHandler(svc *service.AgentViewService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/agent/dashboard")
		defer span.End()

		dashboard, err := svc.Dashboard(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, dashboard)
	}
}

func agentClientsHandler(svc *service.AgentViewService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/agent/clients")
		defer span.End()

		roster, err := svc.Clients(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, roster)
	}
}

// ============================================================
// Proposals
// ============================================================

func createProposalHandler(svc *service.ProposalService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/proposals")
		defer span.End()

		var body struct {
			RequestID int64 `json:"requestId"`
			Items     []struct {
				Description string  `json:"description"`
				Quantity    int     `json:"quantity"`
				UnitPrice   float64 `json:"unitPrice"`
			} `json:"items"`
		}
		if err := decodeBody(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		span.SetAttributes(attribute.Int64("request.id", body.RequestID))

		items := make(domain.LineItems, 0, len(body.Items))
		for _, item := range body.Items {
			items = append(items, domain.LineItem{
				ID:          uuid.New().String(),
				Description: item.Description,
				Quantity:    item.Quantity,
				UnitPrice:   item.UnitPrice,
			})
		}

		proposal, err := svc.Create(ctx, body.RequestID, items)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, proposal)
	}
}

func sendProposalHandler(svc *service.AgentViewService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/proposals/{proposalID}/send")
		defer span.End()

		proposalID, err := idParam(r, "proposalID")
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		span.SetAttributes(attribute.Int64("proposal.id", proposalID))

		if err := svc.SendProposal(ctx, proposalID); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// ============================================================
// Proposal draft sessions
// ============================================================

func createDraftHandler(svc *service.ProposalService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/agent/drafts")
		defer span.End()

		var body struct {
			RequestID int64 `json:"requestId"`
		}
		if err := decodeBody(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		draft, err := svc.CreateDraft(ctx, body.RequestID)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, draft)
	}
}

func getDraftHandler(svc *service.ProposalService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/agent/drafts/{draftID}")
		defer span.End()

		draft, err := svc.Draft(ctx, chi.URLParam(r, "draftID"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, draft)
	}
}

func draftAddItemHandler(svc *service.ProposalService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/agent/drafts/{draftID}/items")
		defer span.End()

		draft, err := svc.AddItem(ctx, chi.URLParam(r, "draftID"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, draft)
	}
}

func draftUpdateItemHandler(svc *service.ProposalService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PATCH /v1/agent/drafts/{draftID}/items/{itemID}")
		defer span.End()

		var body struct {
			Field string `json:"field"`
			Value any    `json:"value"`
		}
		if err := decodeBody(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		// Numeric fields arrive as strings or JSON numbers; the draft
		// coerces anything unparsable to zero.
		value := ""
		switch v := body.Value.(type) {
		case string:
			value = v
		case float64:
			value = strconv.FormatFloat(v, 'f', -1, 64)
		}

		draft, err := svc.UpdateItem(ctx, chi.URLParam(r, "draftID"), chi.URLParam(r, "itemID"), body.Field, value)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, draft)
	}
}

func draftRemoveItemHandler(svc *service.ProposalService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /v1/agent/drafts/{draftID}/items/{itemID}")
		defer span.End()

		draft, err := svc.RemoveItem(ctx, chi.URLParam(r, "draftID"), chi.URLParam(r, "itemID"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, draft)
	}
}

func draftSubmitHandler(svc *service.ProposalService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/agent/drafts/{draftID}/submit")
		defer span.End()

		proposal, err := svc.Submit(ctx, chi.URLParam(r, "draftID"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, proposal)
	}
}

// ============================================================
// Project management
// ============================================================

func agentProjectHandler(svc *service.AgentViewService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/agent/projects/{projectID}")
		defer span.End()

		projectID, err := idParam(r, "projectID")
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		workspace, err := svc.Project(ctx, projectID)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, workspace)
	}
}

func agentProjectUpdateHandler(svc *service.AgentViewService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PATCH /v1/agent/projects/{projectID}")
		defer span.End()

		projectID, err := idParam(r, "projectID")
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		var body struct {
			ProgressPercent int    `json:"progressPercent"`
			ECD             string `json:"ecd"`
		}
		if err := decodeBody(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		workspace, err := svc.UpdateProject(ctx, projectID, body.ProgressPercent, body.ECD)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, workspace)
	}
}

func deliverableUploadHandler(svc *service.AgentViewService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/agent/projects/{projectID}/assets")
		defer span.End()

		projectID, err := idParam(r, "projectID")
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			writeError(w, http.StatusBadRequest, "invalid multipart body")
			return
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			writeError(w, http.StatusBadRequest, "file field is required")
			return
		}
		defer file.Close()

		asset, err := svc.UploadDeliverable(ctx, projectID, header.Filename, file)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, asset)
	}
}

func agentVaultHandler(svc *service.AgentViewService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/agent/projects/{projectID}/vault")
		defer span.End()

		projectID, err := idParam(r, "projectID")
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		vault, err := svc.Vault(ctx, projectID)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, vault)
	}
}
