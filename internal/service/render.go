package service

import (
	"github.com/biztech/portal-bff-go/internal/domain"
)

// Rendering helpers shared by the role view services. Raw core API records
// pass through the status projections exactly once, here.

func clientRequestView(r *domain.ServiceRequest, apiBase string) domain.ClientRequestView {
	view := domain.ClientRequestView{
		ID:            r.ID,
		Category:      r.CategoryName(),
		DateSubmitted: domain.FormatDate(r.CreatedAt),
		Status:        domain.ClientRequestStatus(r.Status),
		Details:       r.Details,
	}
	if r.Proposal != nil {
		view.ProposalID = r.Proposal.ID
		view.ProposalAmount = domain.FormatMoney(r.Proposal.TotalAmount)
		if r.Proposal.PDFPath != "" {
			view.ProposalPDFURL = domain.FileURL(apiBase, r.Proposal.PDFPath)
		}
	}
	return view
}

func agentRequestView(r *domain.ServiceRequest, apiBase string) domain.AgentRequestView {
	view := domain.AgentRequestView{
		ID:          r.ID,
		Client:      r.ClientCompany(),
		ClientEmail: r.ClientEmail(),
		Category:    r.CategoryName(),
		Priority:    r.Priority,
		SubmittedAt: domain.FormatDate(r.CreatedAt),
		Status:      domain.AgentRequestStatus(r.Status),
		Details:     r.Details,
	}
	if r.Proposal != nil {
		view.ProposalID = r.Proposal.ID
		view.ProposalStatus = r.Proposal.Status
		if r.Proposal.PDFPath != "" {
			view.ProposalPDFURL = domain.FileURL(apiBase, r.Proposal.PDFPath)
		}
	}
	return view
}

func agentProjectView(p *domain.Project) domain.AgentProjectView {
	return domain.AgentProjectView{
		ID:       p.ID,
		Name:     p.CategoryName() + " Project",
		Client:   p.ClientCompany(),
		Category: p.CategoryName(),
		Status:   domain.ProjectDisplayStatus(p.GlobalStatus),
		Progress: p.ProgressPercent,
		ECD:      domain.FormatDateString(p.ECD),
	}
}

func assetViews(assets []domain.Asset, apiBase string) []domain.AssetView {
	out := make([]domain.AssetView, 0, len(assets))
	for _, a := range assets {
		out = append(out, domain.AssetView{
			ID:         a.ID,
			FileName:   a.FileName,
			Type:       a.Type,
			URL:        domain.FileURL(apiBase, a.FilePath),
			UploadedAt: domain.FormatDate(a.UploadedAt),
		})
	}
	return out
}

func workspaceView(p *domain.Project, apiBase string) *domain.ProjectWorkspace {
	clientAssets, deliverables := p.AssetsByType()
	return &domain.ProjectWorkspace{
		ID:              p.ID,
		Name:            p.CategoryName() + " Project",
		Client:          p.ClientCompany(),
		Category:        p.CategoryName(),
		Status:          domain.ProjectDisplayStatus(p.GlobalStatus),
		ProgressPercent: p.ProgressPercent,
		ECD:             p.ECD,
		ECDDisplay:      domain.FormatDateString(p.ECD),
		ClientAssets:    assetViews(clientAssets, apiBase),
		Deliverables:    assetViews(deliverables, apiBase),
	}
}
