package models

import "gorm.io/datatypes"

// Organization is auto-provisioned for each registering user and groups
// the workspaces they create.
type Organization struct {
	BaseModel

	Code     string         `gorm:"uniqueIndex;not null" json:"code"`
	Name     string         `gorm:"not null" json:"name"`
	OwnerID  string         `gorm:"type:uuid;index;not null" json:"owner_id"`
	Owner    *User          `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Settings datatypes.JSON `json:"settings,omitempty"`

	Workspaces []Workspace `gorm:"foreignKey:OrganizationID" json:"workspaces,omitempty"`
}
