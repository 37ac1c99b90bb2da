package domain

import "time"

// SuperUserId is the distinguished account that grants and revokes
// moderator rights. It is created by the schema migration and is never
// deletable through the normal user-deletion path.
const SuperUserId UserId = 1

type User struct {
	Id            UserId    `json:"id"`
	Username      string    `json:"username"`
	Email         string    `json:"email,omitempty"`
	PassHash      string    `json:"-"`
	About         string    `json:"about,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	ProfileImage  string    `json:"profile_image,omitempty"`
	Location      string    `json:"location,omitempty"`
	LocationImage string    `json:"location_image,omitempty"`
	Moderator     bool      `json:"moderator"`
}

// Super reports whether the user is the role-granting super-user.
func (u *User) Super() bool {
	return u.Id == SuperUserId
}

type Credentials struct {
	Username string
	Password string
}
