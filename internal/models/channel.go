package models

// Channel is a named sub-space within a workspace where messages are
// exchanged. The slug is derived from the name plus a random suffix.
type Channel struct {
	BaseModel

	Name        string `gorm:"not null" json:"name"`
	Slug        string `gorm:"uniqueIndex;not null" json:"slug"`
	WorkspaceID string `gorm:"type:uuid;index;not null" json:"workspace_id"`

	Workspace *Workspace      `gorm:"foreignKey:WorkspaceID" json:"workspace,omitempty"`
	Members   []ChannelMember `gorm:"foreignKey:ChannelID" json:"members,omitempty"`
	Invites   []ChannelInvite `gorm:"foreignKey:ChannelID" json:"invites,omitempty"`
}

// Channel membership is a tagged state rather than a boolean: a pending
// placeholder row marks an invitee before they accept.
const (
	ChannelMemberStatusMember  = "member"
	ChannelMemberStatusPending = "pending"
)

// ChannelMember joins a user to a channel. The (user, channel) pair is unique.
type ChannelMember struct {
	BaseModel

	UserID    string `gorm:"type:uuid;not null;uniqueIndex:idx_channel_members_user_channel" json:"user_id"`
	ChannelID string `gorm:"type:uuid;not null;uniqueIndex:idx_channel_members_user_channel" json:"channel_id"`
	Status    string `gorm:"not null;default:member" json:"status"`

	User    *User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Channel *Channel `gorm:"foreignKey:ChannelID" json:"-"`
}
