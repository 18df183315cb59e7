package models

// Message is a single channel post.
type Message struct {
	BaseModel

	Content   string `gorm:"type:text;not null" json:"content"`
	ChannelID string `gorm:"type:uuid;index;not null" json:"channel_id"`
	AuthorID  string `gorm:"type:uuid;not null" json:"author_id"`

	Author  *User    `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Channel *Channel `gorm:"foreignKey:ChannelID" json:"channel,omitempty"`
}
