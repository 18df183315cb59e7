package models

// Invite lifecycle statuses. pending transitions to accepted or rejected,
// both terminal; rows are never hard-deleted.
const (
	InviteStatusPending  = "pending"
	InviteStatusAccepted = "accepted"
	InviteStatusRejected = "rejected"
)

// WorkspaceInvite is an email-addressed offer of workspace membership,
// bound to a signed token.
type WorkspaceInvite struct {
	BaseModel

	InviteeEmail string `gorm:"not null;index" json:"invitee_email"`
	InviterID    string `gorm:"type:uuid;not null" json:"inviter_id"`
	WorkspaceID  string `gorm:"type:uuid;index;not null" json:"workspace_id"`
	Token        string `gorm:"uniqueIndex;not null" json:"token"`
	Status       string `gorm:"not null;default:pending;index" json:"status"`

	Inviter   *User      `gorm:"foreignKey:InviterID" json:"inviter,omitempty"`
	Workspace *Workspace `gorm:"foreignKey:WorkspaceID" json:"workspace,omitempty"`
}

// ChannelInvite mirrors WorkspaceInvite for channel targets.
type ChannelInvite struct {
	BaseModel

	InviteeEmail string `gorm:"not null;index" json:"invitee_email"`
	InviterID    string `gorm:"type:uuid;not null" json:"inviter_id"`
	ChannelID    string `gorm:"type:uuid;index;not null" json:"channel_id"`
	Token        string `gorm:"uniqueIndex;not null" json:"token"`
	Status       string `gorm:"not null;default:pending;index" json:"status"`

	Inviter *User    `gorm:"foreignKey:InviterID" json:"inviter,omitempty"`
	Channel *Channel `gorm:"foreignKey:ChannelID" json:"channel,omitempty"`
}
