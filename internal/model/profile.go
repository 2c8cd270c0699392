package model

import "time"

// Profile is a user's public identity record. ID equals the authenticated
// subject issued by the identity provider. Username is unique and immutable
// after creation; uniqueness is enforced by the database, not the client.
type Profile struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	Bio         string    `json:"bio,omitempty"`
	AvatarURL   string    `json:"avatar_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
