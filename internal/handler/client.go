package handler

import (
	"net/http"

	"github.com/biztech/portal-bff-go/internal/service"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// maxUploadBytes caps multipart asset uploads at 25 MiB.
const maxUploadBytes = 25 << 20

// ============================================================
// Client portal handlers
// ============================================================

func clientDashboardHandler(svc *service.ClientViewService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/client/dashboard")
		defer span.End()

		dashboard, err := svc.Dashboard(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, dashboard)
	}
}

func acceptProposalHandler(svc *service.ClientViewService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PATCH /v1/proposals/{proposalID}/accept")
		defer span.End()

		proposalID, err := idParam(r, "proposalID")
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		span.SetAttributes(attribute.Int64("proposal.id", proposalID))

		if err := svc.AcceptProposal(ctx, proposalID); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func clientProjectHandler(svc *service.ClientViewService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/client/projects/{projectID}")
		defer span.End()

		projectID, err := idParam(r, "projectID")
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		workspace, err := svc.Workspace(ctx, projectID)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, workspace)
	}
}

func clientAssetUploadHandler(svc *service.ClientViewService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/client/projects/{projectID}/assets")
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

		asset, err := svc.UploadAsset(ctx, projectID, header.Filename, file)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, asset)
	}
}

func vaultGetHandler(svc *service.ClientViewService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/client/vault")
		defer span.End()

		vault, err := svc.Vault(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, vault)
	}
}

func vaultPutHandler(svc *service.ClientViewService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PUT /v1/client/vault")
		defer span.End()

		var body struct {
			Vault string `json:"vault"`
		}
		if err := decodeBody(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		vault, err := svc.UpdateVault(ctx, body.Vault)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, vault)
	}
}
