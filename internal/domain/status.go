package domain

import "strings"

// Status projections translate backend lifecycle strings into the category a
// given role's views expect. Each projection is total: any input yields a
// usable category, unknown values fall back to a safe default. The lookups
// are literal and case-sensitive because the core API stores exact strings
// ("Pending Triage", not "pending triage").

// Client-facing display categories.
const (
	ClientCategoryPendingReview  = "pending-review"
	ClientCategoryInProgress     = "in-progress"
	ClientCategoryActionRequired = "action-required"
	ClientCategoryApproved       = "approved"
	ClientCategoryRejected       = "rejected"
	ClientCategoryPending        = "pending"
)

// ClientRequestStatus maps a backend request status to the category the
// client dashboard renders.
func ClientRequestStatus(backend string) string {
	switch backend {
	case RequestStatusPendingTriage:
		return ClientCategoryPendingReview
	case RequestStatusAssigned:
		return ClientCategoryInProgress
	case RequestStatusQuoted:
		return ClientCategoryActionRequired
	case RequestStatusConverted:
		return ClientCategoryApproved
	case RequestStatusRejected:
		return ClientCategoryRejected
	default:
		return ClientCategoryPending
	}
}

// AgentRequestStatus maps a backend request status to the lowercased token
// the agent views use. "Assigned" becomes "pending" (an assigned request is
// pending work from the agent's perspective); everything else passes through
// lowercased.
func AgentRequestStatus(backend string) string {
	if backend == RequestStatusAssigned {
		return "pending"
	}
	return strings.ToLower(backend)
}

// agentRelevant is the exact post-projection set the agent dashboard
// surfaces. This is a filter over projected tokens, not a transform.
var agentRelevant = map[string]bool{
	"pending":  true,
	"assigned": true,
	"new":      true,
	"quoted":   true,
}

// AgentRelevantStatus reports whether a projected agent status belongs on
// the agent dashboard.
func AgentRelevantStatus(projected string) bool {
	return agentRelevant[projected]
}

// ProjectDisplayStatus maps a project's backend globalStatus to the UI
// status token. Unrecognized values pass through lowercased.
func ProjectDisplayStatus(global string) string {
	switch global {
	case ProjectStatusPending:
		return "planning"
	case ProjectStatusInProgress:
		return "in-progress"
	case ProjectStatusDelivered:
		return "review"
	default:
		return strings.ToLower(global)
	}
}
