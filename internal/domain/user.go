package domain

import "time"

type User struct {
	ID           string    `json:"id" bson:"_id"`
	Username     string    `json:"username" bson:"username"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	Bio          string    `json:"bio" bson:"bio"`
	AvatarURL    *string   `json:"avatar_url,omitempty" bson:"avatar_url,omitempty"`
	Followers    []string  `json:"followers" bson:"followers"`
	Following    []string  `json:"following" bson:"following"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}

type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateProfileInput carries the mutable profile fields; nil pointers mean
// "leave unchanged". Changing the password requires the current one.
type UpdateProfileInput struct {
	Username        *string `json:"username"`
	Email           *string `json:"email"`
	Bio             *string `json:"bio"`
	CurrentPassword *string `json:"current_password"`
	NewPassword     *string `json:"new_password"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
