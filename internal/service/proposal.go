package service

import (
	"context"
	"strconv"
	"time"

	"github.com/biztech/portal-bff-go/internal/domain"
	"github.com/biztech/portal-bff-go/internal/infra/observability"
	"github.com/biztech/portal-bff-go/internal/port"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var proposalTracer = otel.Tracer("service/proposal")

// ProposalService manages proposal drafting and submission. Drafts are
// server-held editing sessions kept in the TTL cache: the agent adds,
// updates and removes line items against the draft, and submission collapses
// the rows into the per-line totals the core API accepts.
type ProposalService struct {
	proposals port.ProposalStore
	drafts    port.Cache[*domain.ProposalDraft]
	metrics   *observability.Metrics
	logger    *zap.Logger
}

// NewProposalService creates the proposal service.
func NewProposalService(
	proposals port.ProposalStore,
	drafts port.Cache[*domain.ProposalDraft],
	metrics *observability.Metrics,
	logger *zap.Logger,
) *ProposalService {
	return &ProposalService{
		proposals: proposals,
		drafts:    drafts,
		metrics:   metrics,
		logger:    logger,
	}
}

// CreateDraft opens a draft session for a request, seeded with the default
// first row.
func (s *ProposalService) CreateDraft(ctx context.Context, requestID int64) (*domain.ProposalDraftView, error) {
	ctx, span := proposalTracer.Start(ctx, "ProposalService.CreateDraft")
	defer span.End()

	if requestID <= 0 {
		return nil, &domain.ErrValidation{Field: "requestId", Message: "required"}
	}

	agentID := ""
	if id := domain.IdentityFromContext(ctx); id != nil {
		agentID = strconv.FormatInt(id.UserID, 10)
	}

	draft := domain.NewProposalDraft(requestID, agentID)
	s.drafts.Set(draft.ID, draft)

	s.logger.Info("proposal draft opened",
		zap.String("draft_id", draft.ID),
		zap.Int64("request_id", requestID),
	)
	return draftView(draft), nil
}

// Draft returns a draft session with recomputed totals.
func (s *ProposalService) Draft(ctx context.Context, draftID string) (*domain.ProposalDraftView, error) {
	_, span := proposalTracer.Start(ctx, "ProposalService.Draft")
	defer span.End()

	draft, err := s.ownedDraft(ctx, draftID)
	if err != nil {
		return nil, err
	}
	return draftView(draft), nil
}

// AddItem appends a fresh empty row to the draft.
func (s *ProposalService) AddItem(ctx context.Context, draftID string) (*domain.ProposalDraftView, error) {
	_, span := proposalTracer.Start(ctx, "ProposalService.AddItem")
	defer span.End()

	draft, err := s.ownedDraft(ctx, draftID)
	if err != nil {
		return nil, err
	}

	draft.Items = draft.Items.Add()
	s.drafts.Set(draft.ID, draft)
	return draftView(draft), nil
}

// UpdateItem edits one field of one row. Bad or negative numeric input
// coerces to zero; unknown fields and unknown rows are no-ops.
func (s *ProposalService) UpdateItem(ctx context.Context, draftID, itemID, field, value string) (*domain.ProposalDraftView, error) {
	_, span := proposalTracer.Start(ctx, "ProposalService.UpdateItem")
	defer span.End()

	draft, err := s.ownedDraft(ctx, draftID)
	if err != nil {
		return nil, err
	}

	draft.Items = draft.Items.Update(itemID, field, value)
	s.drafts.Set(draft.ID, draft)
	return draftView(draft), nil
}

// RemoveItem deletes a row. A draft never drops below one item: removal at
// item-count one is rejected here, not in the row list itself.
func (s *ProposalService) RemoveItem(ctx context.Context, draftID, itemID string) (*domain.ProposalDraftView, error) {
	_, span := proposalTracer.Start(ctx, "ProposalService.RemoveItem")
	defer span.End()

	draft, err := s.ownedDraft(ctx, draftID)
	if err != nil {
		return nil, err
	}

	if len(draft.Items) <= 1 {
		return nil, &domain.ErrValidation{Field: "items", Message: "a proposal needs at least one line item"}
	}

	draft.Items = draft.Items.Remove(itemID)
	s.drafts.Set(draft.ID, draft)
	return draftView(draft), nil
}

// Submit collapses the draft into the core API payload, creates the
// proposal and discards the session.
func (s *ProposalService) Submit(ctx context.Context, draftID string) (*domain.Proposal, error) {
	ctx, span := proposalTracer.Start(ctx, "ProposalService.Submit")
	defer span.End()

	start := time.Now()
	defer func() { s.metrics.RecordRequestDuration("proposal_submit", time.Since(start)) }()

	draft, err := s.ownedDraft(ctx, draftID)
	if err != nil {
		return nil, err
	}

	proposal, err := s.proposals.CreateProposal(ctx, draft.RequestID, draft.Items.Payload())
	if err != nil {
		s.logger.Error("proposal submission failed",
			zap.String("draft_id", draftID),
			zap.Int64("request_id", draft.RequestID),
			zap.Error(err),
		)
		return nil, err
	}

	s.drafts.Delete(draftID)
	s.logger.Info("proposal created",
		zap.Int64("proposal_id", proposal.ID),
		zap.Int64("request_id", draft.RequestID),
		zap.Float64("total", draft.Items.Total()),
	)
	return proposal, nil
}

// Create builds a proposal directly from caller-supplied line items,
// without a draft session. At least one item is required.
func (s *ProposalService) Create(ctx context.Context, requestID int64, items domain.LineItems) (*domain.Proposal, error) {
	ctx, span := proposalTracer.Start(ctx, "ProposalService.Create")
	defer span.End()

	if requestID <= 0 {
		return nil, &domain.ErrValidation{Field: "requestId", Message: "required"}
	}
	if len(items) == 0 {
		return nil, &domain.ErrValidation{Field: "items", Message: "a proposal needs at least one line item"}
	}

	proposal, err := s.proposals.CreateProposal(ctx, requestID, items.Payload())
	if err != nil {
		s.logger.Error("proposal creation failed",
			zap.Int64("request_id", requestID),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Info("proposal created",
		zap.Int64("proposal_id", proposal.ID),
		zap.Int64("request_id", requestID),
	)
	return proposal, nil
}

// ownedDraft loads a draft and checks it belongs to the acting agent. The
// returned draft is a private copy: editors mutate it and Set it back, so
// concurrent edits to the same session never touch shared memory and the
// cache entry resolves last-write-wins.
func (s *ProposalService) ownedDraft(ctx context.Context, draftID string) (*domain.ProposalDraft, error) {
	draft, ok := s.drafts.Get(draftID)
	if !ok {
		s.metrics.IncrCacheMiss("drafts")
		return nil, &domain.ErrNotFound{Resource: "proposal draft", ID: draftID}
	}
	s.metrics.IncrCacheHit("drafts")

	if id := domain.IdentityFromContext(ctx); id != nil && draft.AgentID != "" {
		if draft.AgentID != strconv.FormatInt(id.UserID, 10) {
			return nil, &domain.ErrForbidden{Action: "edit another agent's draft"}
		}
	}
	return draft.Clone(), nil
}

func draftView(draft *domain.ProposalDraft) *domain.ProposalDraftView {
	return &domain.ProposalDraftView{
		Draft:     draft,
		Subtotal:  domain.FormatMoney(draft.Items.Subtotal()),
		Tax:       domain.FormatMoney(draft.Items.Tax()),
		Total:     domain.FormatMoney(draft.Items.Total()),
		Removable: len(draft.Items) > 1,
	}
}
