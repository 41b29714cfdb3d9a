package domain

import "time"

// Backend globalStatus values for projects.
const (
	ProjectStatusPending    = "Pending"
	ProjectStatusInProgress = "In Progress"
	ProjectStatusDelivered  = "Delivered"
)

// Asset type tags. The tag records which party uploaded the file and which
// list it renders in; assets are immutable once uploaded.
const (
	AssetTypeClient      = "ClientAsset"
	AssetTypeDeliverable = "Deliverable"
)

// Project is the work engagement created when a proposal is accepted.
type Project struct {
	ID              int64     `json:"id"`
	GlobalStatus    string    `json:"globalStatus"`
	ProgressPercent int       `json:"progressPercent"`
	ECD             string    `json:"ecd,omitempty"` // estimated completion date, ISO date or empty
	CreatedAt       time.Time `json:"createdAt"`

	Client  *RequestClient  `json:"Client,omitempty"`
	Request *ServiceRequest `json:"Request,omitempty"`
	Assets  []Asset         `json:"Assets,omitempty"`
}

// Asset is a file attached to a project.
type Asset struct {
	ID         int64     `json:"id"`
	ProjectID  int64     `json:"projectId"`
	Type       string    `json:"type"` // ClientAsset or Deliverable
	FileName   string    `json:"fileName"`
	FilePath   string    `json:"filePath"`
	UploadedAt time.Time `json:"createdAt"`
}

// Note is one message on a project's discussion thread. Append-only.
type Note struct {
	ID         int64     `json:"id"`
	ProjectID  int64     `json:"projectId"`
	Content    string    `json:"content"`
	AuthorName string    `json:"authorName"`
	AuthorRole string    `json:"authorRole"`
	CreatedAt  time.Time `json:"createdAt"`
}

// CategoryName returns the category of the originating request, falling back
// to a generic label when the join is absent.
func (p *Project) CategoryName() string {
	if p.Request != nil {
		return p.Request.CategoryName()
	}
	return "General"
}

// ClientCompany returns the owning client's company name, or a placeholder.
func (p *Project) ClientCompany() string {
	if p.Client != nil && p.Client.CompanyName != "" {
		return p.Client.CompanyName
	}
	return "Unknown"
}

// AssetsByType splits a project's assets into client uploads and agent
// deliverables, preserving backend order within each list.
func (p *Project) AssetsByType() (clientAssets, deliverables []Asset) {
	for _, a := range p.Assets {
		if a.Type == AssetTypeDeliverable {
			deliverables = append(deliverables, a)
		} else {
			clientAssets = append(clientAssets, a)
		}
	}
	return clientAssets, deliverables
}
