package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/biztech/portal-bff-go/internal/domain"
	"github.com/biztech/portal-bff-go/internal/infra/observability"

	"go.uber.org/zap"
)

const testAPIBase = "http://localhost:3000/api/v1"

func newClientService(requests *mockRequestStore, projects *mockProjectStore, proposals *mockProposalStore, clients *mockClientStore) *ClientViewService {
	return NewClientViewService(requests, projects, proposals, clients, observability.NewMetrics(), zap.NewNop(), testAPIBase)
}

func TestClientDashboardProjectionAndCounts(t *testing.T) {
	created := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	requests := &mockRequestStore{requests: []domain.ServiceRequest{
		{ID: 1, Status: domain.RequestStatusPendingTriage, CreatedAt: created,
			Category: &domain.RequestCategory{Name: "Web Development"}},
		{ID: 2, Status: domain.RequestStatusAssigned, CreatedAt: created},
		{ID: 3, Status: domain.RequestStatusQuoted, CreatedAt: created,
			Proposal: &domain.Proposal{ID: 9, Status: domain.ProposalStatusSent, TotalAmount: 275, PDFPath: `uploads\proposals\9.pdf`}},
		{ID: 4, Status: domain.RequestStatusConverted, CreatedAt: created},
	}}

	svc := newClientService(requests, &mockProjectStore{}, &mockProposalStore{}, &mockClientStore{})
	dashboard, err := svc.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}

	if len(dashboard.Requests) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(dashboard.Requests))
	}

	wantStatus := []string{"pending-review", "in-progress", "action-required", "approved"}
	for i, want := range wantStatus {
		if dashboard.Requests[i].Status != want {
			t.Errorf("row %d: expected status %q, got %q", i, want, dashboard.Requests[i].Status)
		}
	}

	if dashboard.Requests[0].Category != "Web Development" {
		t.Errorf("expected joined category, got %q", dashboard.Requests[0].Category)
	}
	if dashboard.Requests[1].Category != "General Service" {
		t.Errorf("expected fallback category, got %q", dashboard.Requests[1].Category)
	}
	if dashboard.Requests[0].DateSubmitted != "Mar 15, 2026" {
		t.Errorf("unexpected date: %q", dashboard.Requests[0].DateSubmitted)
	}

	if dashboard.PendingCount != 1 {
		t.Errorf("expected 1 pending, got %d", dashboard.PendingCount)
	}
	if dashboard.ActionCount != 1 {
		t.Errorf("expected 1 action-required, got %d", dashboard.ActionCount)
	}
	if dashboard.ActionRequired == nil || dashboard.ActionRequired.ID != 3 {
		t.Fatalf("expected request 3 flagged for action, got %+v", dashboard.ActionRequired)
	}
	if dashboard.ActionRequired.ProposalAmount != "275.00" {
		t.Errorf("unexpected proposal amount: %q", dashboard.ActionRequired.ProposalAmount)
	}
	if dashboard.ActionRequired.ProposalPDFURL != "http://localhost:3000/uploads/proposals/9.pdf" {
		t.Errorf("unexpected pdf url: %q", dashboard.ActionRequired.ProposalPDFURL)
	}
}

func TestClientDashboardEmptyState(t *testing.T) {
	svc := newClientService(&mockRequestStore{}, &mockProjectStore{}, &mockProposalStore{}, &mockClientStore{})

	dashboard, err := svc.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if dashboard.Requests == nil {
		t.Error("requests must be an explicit empty slice, not nil")
	}
	if dashboard.ActionRequired != nil {
		t.Error("no action banner expected for an empty dashboard")
	}
}

func TestAcceptProposalProxiesToStore(t *testing.T) {
	proposals := &mockProposalStore{}
	svc := newClientService(&mockRequestStore{}, &mockProjectStore{}, proposals, &mockClientStore{})

	if err := svc.AcceptProposal(context.Background(), 7); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if proposals.acceptedID != 7 {
		t.Errorf("store saw proposal %d", proposals.acceptedID)
	}
}

func TestWorkspaceSplitsAssets(t *testing.T) {
	projects := &mockProjectStore{projects: []domain.Project{{
		ID:           11,
		GlobalStatus: domain.ProjectStatusInProgress,
		ECD:          "2026-04-01",
		Client:       &domain.RequestClient{CompanyName: "Acme Corp"},
		Assets: []domain.Asset{
			{ID: 1, Type: domain.AssetTypeClient, FileName: "brief.pdf", FilePath: "uploads/brief.pdf"},
			{ID: 2, Type: domain.AssetTypeDeliverable, FileName: "mockup.png", FilePath: `uploads\mockup.png`},
			{ID: 3, Type: domain.AssetTypeClient, FileName: "logo.svg", FilePath: "uploads/logo.svg"},
		},
	}}}

	svc := newClientService(&mockRequestStore{}, projects, &mockProposalStore{}, &mockClientStore{})
	ws, err := svc.Workspace(context.Background(), 11)
	if err != nil {
		t.Fatalf("workspace: %v", err)
	}

	if ws.Status != "in-progress" {
		t.Errorf("unexpected status: %q", ws.Status)
	}
	if ws.Client != "Acme Corp" {
		t.Errorf("unexpected client: %q", ws.Client)
	}
	if len(ws.ClientAssets) != 2 || len(ws.Deliverables) != 1 {
		t.Fatalf("unexpected asset split: %d client, %d deliverables", len(ws.ClientAssets), len(ws.Deliverables))
	}
	if ws.Deliverables[0].URL != "http://localhost:3000/uploads/mockup.png" {
		t.Errorf("unexpected deliverable url: %q", ws.Deliverables[0].URL)
	}
	if ws.ECDDisplay != "Apr 1, 2026" {
		t.Errorf("unexpected ecd display: %q", ws.ECDDisplay)
	}
}

func TestClientUploadTagsClientAsset(t *testing.T) {
	projects := &mockProjectStore{}
	svc := newClientService(&mockRequestStore{}, projects, &mockProposalStore{}, &mockClientStore{})

	view, err := svc.UploadAsset(context.Background(), 11, "brief.pdf", strings.NewReader("data"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if projects.uploadedType != domain.AssetTypeClient {
		t.Errorf("expected ClientAsset tag, got %q", projects.uploadedType)
	}
	if view.FileName != "brief.pdf" {
		t.Errorf("unexpected view: %+v", view)
	}
}

func TestVaultRoundTrip(t *testing.T) {
	clients := &mockClientStore{account: &domain.ClientAccount{ID: 3, TechnicalVault: "old secrets"}}
	svc := newClientService(&mockRequestStore{}, &mockProjectStore{}, &mockProposalStore{}, clients)
	ctx := context.Background()

	view, err := svc.Vault(ctx)
	if err != nil {
		t.Fatalf("vault: %v", err)
	}
	if view.Vault != "old secrets" {
		t.Errorf("unexpected vault: %q", view.Vault)
	}

	updated, err := svc.UpdateVault(ctx, "new secrets")
	if err != nil {
		t.Fatalf("update vault: %v", err)
	}
	if updated.Vault != "new secrets" {
		t.Errorf("unexpected updated vault: %q", updated.Vault)
	}
}
