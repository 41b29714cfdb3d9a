package domain

import "time"

// User roles.
const (
	RoleClient = "client"
	RoleAgent  = "agent"
	RoleAdmin  = "admin"
)

// Account statuses as stored by the core API. The backend reuses the same
// field both for pending-approval gating and for active/inactive toggling;
// the BFF disambiguates with the PendingApproval flag below.
const (
	UserStatusActive   = "Active"
	UserStatusRejected = "Rejected"
)

// User is a platform account (client, agent or admin) as the admin
// endpoints return it.
type User struct {
	ID       int64  `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Status   string `json:"status"`

	// PendingApproval is set by the BFF on users surfaced via the pending
	// list, so freshly registered users are distinguishable from users an
	// admin explicitly deactivated. The core API's status field alone
	// cannot tell the two apart.
	PendingApproval bool `json:"pendingApproval"`

	CreatedAt time.Time `json:"createdAt"`
}

// ClientAccount is the caller's own client record, including the technical
// vault (free-text credential store, revealed on demand).
type ClientAccount struct {
	ID             int64  `json:"id"`
	CompanyName    string `json:"companyName"`
	Industry       string `json:"industry,omitempty"`
	TechnicalVault string `json:"technicalVault"`

	User *RequestUser `json:"User,omitempty"`
}

// ClientSummary is a roster entry for the agent's client list, with the
// project counters the core API derives.
type ClientSummary struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Company        string    `json:"company"`
	Email          string    `json:"email"`
	Industry       string    `json:"industry,omitempty"`
	ProjectsCount  int       `json:"projectsCount"`
	ActiveProjects int       `json:"activeProjects"`
	JoinedDate     time.Time `json:"joinedDate"`
}

// NewAgent is the payload for creating an agent account.
type NewAgent struct {
	FullName       string `json:"fullName"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	Specialization string `json:"specialization,omitempty"`
}

// PlatformSettings is the admin-editable platform configuration. It is
// persisted through an injected settings store rather than ambient state.
type PlatformSettings struct {
	PlatformName            string `json:"platformName"`
	SupportEmail            string `json:"supportEmail"`
	AllowClientRegistration bool   `json:"allowClientRegistration"`
	RequireAdminApproval    bool   `json:"requireAdminApproval"`
	EnableNotifications     bool   `json:"enableNotifications"`
	MaintenanceMode         bool   `json:"maintenanceMode"`
	Currency                string `json:"currency"`
	Timezone                string `json:"timezone"`
	SessionTimeoutMinutes   int    `json:"sessionTimeoutMinutes"`
}

// DefaultPlatformSettings returns the settings used until an admin saves
// their own.
func DefaultPlatformSettings() *PlatformSettings {
	return &PlatformSettings{
		PlatformName:            "BizTech Digital",
		SupportEmail:            "support@biztech.example",
		AllowClientRegistration: true,
		RequireAdminApproval:    true,
		EnableNotifications:     true,
		Currency:                "USD",
		Timezone:                "UTC",
		SessionTimeoutMinutes:   60,
	}
}

// CoreHealth is the health snapshot the core API reports.
type CoreHealth struct {
	Status   string `json:"status"`
	Database string `json:"database,omitempty"`
	Uptime   int64  `json:"uptime,omitempty"`
}

// PlatformHealth combines core API health with the BFF's own counters for
// the admin health view.
type PlatformHealth struct {
	Core           *CoreHealth `json:"core,omitempty"`
	CoreReachable  bool        `json:"coreReachable"`
	ActiveAgents   int         `json:"activeAgents"`
	OpenDraftCount int         `json:"openDraftCount"`
	TotalRequests  int64       `json:"totalRequests"`
	ErrorRate      float64     `json:"errorRate"`
	CacheHitRate   float64     `json:"cacheHitRate"`
}
