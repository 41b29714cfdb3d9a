package domain

// View records: the shapes the BFF renders for each role's pages. Raw core
// API records pass through the status projections exactly once, here.

// ClientRequestView is one row of the client dashboard.
type ClientRequestView struct {
	ID             int64  `json:"id"`
	Category       string `json:"category"`
	DateSubmitted  string `json:"dateSubmitted"`
	Status         string `json:"status"`
	Details        string `json:"details,omitempty"`
	ProposalID     int64  `json:"proposalId,omitempty"`
	ProposalAmount string `json:"proposalAmount,omitempty"`
	ProposalPDFURL string `json:"proposalPdfUrl,omitempty"`
}

// ClientDashboard is the client landing view.
type ClientDashboard struct {
	Requests       []ClientRequestView `json:"requests"`
	PendingCount   int                 `json:"pendingCount"`
	ActionCount    int                 `json:"actionCount"`
	ActionRequired *ClientRequestView  `json:"actionRequired,omitempty"`
}

// AgentRequestView is one row of the agent dashboard's request queue.
type AgentRequestView struct {
	ID             int64  `json:"id"`
	Client         string `json:"client"`
	ClientEmail    string `json:"clientEmail,omitempty"`
	Category       string `json:"category"`
	Priority       string `json:"priority,omitempty"`
	SubmittedAt    string `json:"submittedAt"`
	Status         string `json:"status"`
	Details        string `json:"details,omitempty"`
	ProposalID     int64  `json:"proposalId,omitempty"`
	ProposalStatus string `json:"proposalStatus,omitempty"`
	ProposalPDFURL string `json:"proposalPdfUrl,omitempty"`
}

// AgentProjectView is one row of the agent's project list.
type AgentProjectView struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Client   string `json:"client"`
	Category string `json:"category"`
	Status   string `json:"status"`
	Progress int    `json:"progress"`
	ECD      string `json:"ecd"`
}

// AgentDashboard is the agent landing view: the relevant request queue plus
// the agent's projects.
type AgentDashboard struct {
	Requests []AgentRequestView `json:"requests"`
	Projects []AgentProjectView `json:"projects"`

	RelevantRequests int `json:"relevantRequests"`
	ActiveProjects   int `json:"activeProjects"`
}

// AgentClientsView is the agent's client roster with derived stats.
type AgentClientsView struct {
	Clients             []ClientSummary `json:"clients"`
	TotalClients        int             `json:"totalClients"`
	ActiveClients       int             `json:"activeClients"`
	TotalActiveProjects int             `json:"totalActiveProjects"`
}

// AdminDashboard is the admin landing view: triage queues and the agent
// roster, fetched in parallel.
type AdminDashboard struct {
	PendingUsers    []User             `json:"pendingUsers"`
	PendingRequests []AgentRequestView `json:"pendingRequests"`
	Agents          []User             `json:"agents"`

	PendingApprovals int `json:"pendingApprovals"`
	NewRequests      int `json:"newRequests"`
	ActiveAgents     int `json:"activeAgents"`
}

// AssetView is a rendered file entry with its download URL resolved.
type AssetView struct {
	ID         int64  `json:"id"`
	FileName   string `json:"fileName"`
	Type       string `json:"type"`
	URL        string `json:"url"`
	UploadedAt string `json:"uploadedAt"`
}

// ProjectWorkspace is the project detail view shared by the client command
// center and the agent management page. The vault field is filled only for
// flows that requested a reveal.
type ProjectWorkspace struct {
	ID              int64       `json:"id"`
	Name            string      `json:"name"`
	Client          string      `json:"client"`
	Category        string      `json:"category"`
	Status          string      `json:"status"`
	ProgressPercent int         `json:"progressPercent"`
	ECD             string      `json:"ecd,omitempty"`
	ECDDisplay      string      `json:"ecdDisplay"`
	ClientAssets    []AssetView `json:"clientAssets"`
	Deliverables    []AssetView `json:"deliverables"`
}

// VaultView is the revealed credential text of a vault.
type VaultView struct {
	Vault string `json:"vault"`
}

// ProposalDraftView is a draft plus its recomputed totals, formatted for
// display.
type ProposalDraftView struct {
	Draft     *ProposalDraft `json:"draft"`
	Subtotal  string         `json:"subtotal"`
	Tax       string         `json:"tax"`
	Total     string         `json:"total"`
	Removable bool           `json:"removable"`
}
