// Package domain defines the core entities of the brokerage portal as the
// core API returns them, plus the pure lifecycle transformations (status
// projection, proposal math, timeline assembly) that every view depends on.
// These models are independent of transport and carry no persistence.
package domain

import "time"

// Request priorities as stored by the core API.
const (
	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"
)

// Backend lifecycle statuses for service requests. The core API stores these
// exact strings; projection is a literal lookup, so casing matters.
const (
	RequestStatusPendingTriage = "Pending Triage"
	RequestStatusAssigned      = "Assigned"
	RequestStatusQuoted        = "Quoted"
	RequestStatusConverted     = "Converted"
	RequestStatusRejected      = "Rejected"
)

// ServiceRequest is a client's submitted service need as returned by the
// core API, including the associations the backend joins in (Sequelize-style
// capitalized keys).
type ServiceRequest struct {
	ID        int64     `json:"id"`
	Status    string    `json:"status"`
	Priority  string    `json:"priority,omitempty"`
	Details   string    `json:"details"`
	CreatedAt time.Time `json:"createdAt"`

	Client        *RequestClient   `json:"Client,omitempty"`
	Category      *RequestCategory `json:"Category,omitempty"`
	AssignedAgent *RequestAgent    `json:"AssignedAgent,omitempty"`
	Proposal      *Proposal        `json:"Proposal,omitempty"`
}

// RequestClient is the client association embedded in a request record.
type RequestClient struct {
	ID          int64        `json:"id"`
	CompanyName string       `json:"companyName"`
	User        *RequestUser `json:"User,omitempty"`
}

// RequestUser carries the contact identity nested under a client.
type RequestUser struct {
	Email    string `json:"email"`
	FullName string `json:"fullName,omitempty"`
}

// RequestCategory is the service category association.
type RequestCategory struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// RequestAgent is the assigned-agent association.
type RequestAgent struct {
	ID       int64  `json:"id"`
	FullName string `json:"fullName"`
}

// CategoryName returns the category label with the display fallback the
// views use when the association is missing.
func (r *ServiceRequest) CategoryName() string {
	if r.Category != nil && r.Category.Name != "" {
		return r.Category.Name
	}
	return "General Service"
}

// ClientCompany returns the owning client's company name, or a placeholder.
func (r *ServiceRequest) ClientCompany() string {
	if r.Client != nil && r.Client.CompanyName != "" {
		return r.Client.CompanyName
	}
	return "Unknown Client"
}

// ClientEmail returns the owning client's contact email if joined in.
func (r *ServiceRequest) ClientEmail() string {
	if r.Client != nil && r.Client.User != nil {
		return r.Client.User.Email
	}
	return ""
}
