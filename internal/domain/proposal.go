package domain

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Proposal statuses as stored by the core API.
const (
	ProposalStatusDraft    = "Draft"
	ProposalStatusSent     = "Sent"
	ProposalStatusAccepted = "Accepted"
)

// TaxRate is the fixed tax applied to proposal subtotals. Not configurable.
const TaxRate = 0.10

// Proposal is an agent-authored priced quote tied to one request, as the
// core API returns it embedded in request records.
type Proposal struct {
	ID          int64   `json:"id"`
	RequestID   int64   `json:"requestId,omitempty"`
	Status      string  `json:"status"`
	TotalAmount float64 `json:"totalAmount"`
	PDFPath     string  `json:"pdfPath,omitempty"`
}

// LineItem is one editable row of a proposal draft.
type LineItem struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
}

// LineItems is the ordered list of rows in a proposal draft.
type LineItems []LineItem

// Editable line item fields accepted by Update.
const (
	ItemFieldDescription = "description"
	ItemFieldQuantity    = "quantity"
	ItemFieldUnitPrice   = "unitPrice"
)

// SeedLineItems returns the initial draft row set: a single setup row with
// quantity 1 at 500.
func SeedLineItems() LineItems {
	return LineItems{{
		ID:          uuid.New().String(),
		Description: "Initial Setup & Planning",
		Quantity:    1,
		UnitPrice:   500,
	}}
}

// Add appends a fresh empty row (quantity 1, price 0) and returns the new
// list. There is no upper bound on row count.
func (l LineItems) Add() LineItems {
	return append(l, LineItem{
		ID:       uuid.New().String(),
		Quantity: 1,
	})
}

// Remove drops the row with the given id. The operation itself carries no
// minimum-row guard; callers are expected to keep at least one row.
func (l LineItems) Remove(id string) LineItems {
	out := make(LineItems, 0, len(l))
	for _, item := range l {
		if item.ID != id {
			out = append(out, item)
		}
	}
	return out
}

// Update replaces one field of one row, leaving every other row untouched.
// Numeric fields coerce unparseable input to 0 and clamp negatives to 0.
// Unknown fields and unknown ids are ignored.
func (l LineItems) Update(id, field, value string) LineItems {
	out := make(LineItems, len(l))
	copy(out, l)
	for i := range out {
		if out[i].ID != id {
			continue
		}
		switch field {
		case ItemFieldDescription:
			out[i].Description = value
		case ItemFieldQuantity:
			q, err := strconv.Atoi(strings.TrimSpace(value))
			if err != nil || q < 0 {
				q = 0
			}
			out[i].Quantity = q
		case ItemFieldUnitPrice:
			p, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
			if err != nil || p < 0 {
				p = 0
			}
			out[i].UnitPrice = p
		}
	}
	return out
}

// Subtotal is the sum of quantity times unit price over all rows.
func (l LineItems) Subtotal() float64 {
	var sum float64
	for _, item := range l {
		sum += float64(item.Quantity) * item.UnitPrice
	}
	return sum
}

// Tax applies the fixed rate to the subtotal.
func (l LineItems) Tax() float64 {
	return l.Subtotal() * TaxRate
}

// Total is subtotal plus tax.
func (l LineItems) Total() float64 {
	return l.Subtotal() + l.Tax()
}

// ProposalItemPayload is the shape the core API accepts per line. Quantity
// is never transmitted: each row collapses to its extended price. The core
// API only ever sees per-line totals, so this transform is one-way.
type ProposalItemPayload struct {
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

// Payload collapses the rows into the outgoing core API shape.
func (l LineItems) Payload() []ProposalItemPayload {
	out := make([]ProposalItemPayload, 0, len(l))
	for _, item := range l {
		out = append(out, ProposalItemPayload{
			Description: item.Description,
			Price:       float64(item.Quantity) * item.UnitPrice,
		})
	}
	return out
}

// ProposalDraft is a server-held editing session for a proposal. Drafts are
// ephemeral: they live in the TTL cache until submitted or expired.
type ProposalDraft struct {
	ID        string    `json:"id"`
	RequestID int64     `json:"requestId"`
	AgentID   string    `json:"agentId"`
	Items     LineItems `json:"items"`
	CreatedAt time.Time `json:"createdAt"`
}

// Clone returns an independent copy of the draft with its own row slice.
// Editors mutate the copy and write it back, so two sessions touching the
// same draft resolve last-write-wins instead of corrupting shared state.
func (d *ProposalDraft) Clone() *ProposalDraft {
	out := *d
	out.Items = make(LineItems, len(d.Items))
	copy(out.Items, d.Items)
	return &out
}

// NewProposalDraft creates a draft seeded with the default first row.
func NewProposalDraft(requestID int64, agentID string) *ProposalDraft {
	return &ProposalDraft{
		ID:        uuid.New().String(),
		RequestID: requestID,
		AgentID:   agentID,
		Items:     SeedLineItems(),
		CreatedAt: time.Now(),
	}
}
