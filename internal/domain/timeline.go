package domain

// Timeline assembly for the admin client drill-down. The core API performs
// the join and returns one pre-joined record per request; the assembler's
// job is purely presentational composition. It preserves backend order and
// performs no sort or dedup.

// Placeholder labels for lifecycle stages that have not happened yet.
// Absence is always a rendered, labeled state, never an omitted block.
const (
	ProposalPlaceholder = "Proposal not generated yet"
	ProjectPlaceholder  = "Project not started"
)

// JourneyRecord is one pre-joined request/proposal/project row from the
// core API. Proposal and Project are nil until those stages exist.
type JourneyRecord struct {
	Request  ServiceRequest `json:"request"`
	Proposal *Proposal      `json:"proposal,omitempty"`
	Project  *Project       `json:"project,omitempty"`
}

// TimelineCard is one assembled entry of the chronological drill-down view.
// The request block always renders; the proposal and project blocks render
// either concrete fields or an explicit placeholder.
type TimelineCard struct {
	Request  TimelineRequest  `json:"request"`
	Proposal TimelineProposal `json:"proposal"`
	Project  TimelineProject  `json:"project"`
}

// TimelineRequest is the always-present request block of a card.
type TimelineRequest struct {
	ID            int64  `json:"id"`
	Category      string `json:"category"`
	Status        string `json:"status"`
	DateSubmitted string `json:"dateSubmitted"`
	Details       string `json:"details,omitempty"`
}

// TimelineProposal is the proposal block: concrete fields when a proposal
// exists, otherwise the placeholder label.
type TimelineProposal struct {
	Generated   bool    `json:"generated"`
	Placeholder string  `json:"placeholder,omitempty"`
	Status      string  `json:"status,omitempty"`
	Amount      string  `json:"amount,omitempty"`
	AmountValue float64 `json:"amountValue,omitempty"`
	PDFURL      string  `json:"pdfUrl,omitempty"`
}

// TimelineProject is the project block: concrete fields when the proposal
// was accepted and a project exists, otherwise the placeholder label.
type TimelineProject struct {
	Started         bool   `json:"started"`
	Placeholder     string `json:"placeholder,omitempty"`
	Status          string `json:"status,omitempty"`
	ProgressPercent int    `json:"progressPercent,omitempty"`
	ECD             string `json:"ecd,omitempty"`
}

// AssembleTimeline composes the drill-down cards from pre-joined records.
// apiBase is the configured core API base used to build PDF links.
func AssembleTimeline(records []JourneyRecord, apiBase string) []TimelineCard {
	cards := make([]TimelineCard, 0, len(records))
	for _, rec := range records {
		card := TimelineCard{
			Request: TimelineRequest{
				ID:            rec.Request.ID,
				Category:      rec.Request.CategoryName(),
				Status:        ClientRequestStatus(rec.Request.Status),
				DateSubmitted: FormatDate(rec.Request.CreatedAt),
				Details:       rec.Request.Details,
			},
			Proposal: TimelineProposal{Placeholder: ProposalPlaceholder},
			Project:  TimelineProject{Placeholder: ProjectPlaceholder},
		}

		if p := rec.Proposal; p != nil {
			card.Proposal = TimelineProposal{
				Generated:   true,
				Status:      p.Status,
				Amount:      FormatMoney(p.TotalAmount),
				AmountValue: p.TotalAmount,
			}
			if p.PDFPath != "" {
				card.Proposal.PDFURL = FileURL(apiBase, p.PDFPath)
			}
		}

		if pr := rec.Project; pr != nil {
			card.Project = TimelineProject{
				Started:         true,
				Status:          ProjectDisplayStatus(pr.GlobalStatus),
				ProgressPercent: pr.ProgressPercent,
				ECD:             FormatDateString(pr.ECD),
			}
		}

		cards = append(cards, card)
	}
	return cards
}
