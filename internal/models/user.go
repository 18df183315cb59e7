package models

// User is the immutable identity anchor created at registration.
type User struct {
	BaseModel

	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`

	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`

	Organizations []Organization    `gorm:"foreignKey:OwnerID" json:"-"`
	Workspaces    []WorkspaceMember `gorm:"foreignKey:UserID" json:"-"`
}

// Summary is the public projection of a user embedded in messages and
// member listings. The full record (including the password hash) never
// leaves the service layer.
type UserSummary struct {
	ID        string `json:"id"`
	Email     string `json:"email,omitempty"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Summary derives the public projection for this user.
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}
