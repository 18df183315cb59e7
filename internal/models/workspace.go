package models

// Workspace is a top-level collaboration space owned by a user.
type Workspace struct {
	BaseModel

	Name           string  `gorm:"not null" json:"name"`
	Color          string  `json:"color"`
	OwnerID        string  `gorm:"type:uuid;index;not null" json:"owner_id"`
	Owner          *User   `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	OrganizationID *string `gorm:"type:uuid;index" json:"organization_id,omitempty"`

	Members  []WorkspaceMember `gorm:"foreignKey:WorkspaceID" json:"members,omitempty"`
	Channels []Channel         `gorm:"foreignKey:WorkspaceID" json:"channels,omitempty"`
}

// Workspace membership roles.
const (
	WorkspaceRoleOwner  = "owner"
	WorkspaceRoleMember = "member"
	WorkspaceRoleGuest  = "guest"
)

// WorkspaceMember joins a user to a workspace with a role. The
// (user, workspace) pair is unique; duplicate membership is a schema error.
type WorkspaceMember struct {
	BaseModel

	UserID      string `gorm:"type:uuid;not null;uniqueIndex:idx_workspace_members_user_workspace" json:"user_id"`
	WorkspaceID string `gorm:"type:uuid;not null;uniqueIndex:idx_workspace_members_user_workspace" json:"workspace_id"`
	Role        string `gorm:"not null;default:member" json:"role"`

	User      *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Workspace *Workspace `gorm:"foreignKey:WorkspaceID" json:"-"`
}
