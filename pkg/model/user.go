package model

import "time"

const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

type User struct {
	ID                string     `json:"_id,omitempty" bson:"_id,omitempty"`
	Name              string     `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Email             string     `json:"email" bson:"email" validate:"required,email"`
	Role              string     `json:"role" bson:"role" validate:"omitempty,oneof=admin staff"`
	Photo             string     `json:"photo,omitempty" bson:"photo,omitempty"`
	Active            bool       `json:"active" bson:"active"`
	PasswordHash      string     `json:"-" bson:"password"`
	PasswordChangedAt *time.Time `json:"-" bson:"passwordChangedAt,omitempty"`
	ResetTokenHash    string     `json:"-" bson:"resetTokenHash,omitempty"`
	ResetTokenExpires *time.Time `json:"-" bson:"resetTokenExpires,omitempty"`
	CreatedAt         time.Time  `json:"createdAt" bson:"createdAt"`
}

type SignUpRequest struct {
	Name            string `json:"name" validate:"required,min=2,max=100"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8,max=72"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required,eqfield=Password"`
}

type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type NewPasswordRequest struct {
	Password        string `json:"password" validate:"required,min=8,max=72"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required,eqfield=Password"`
}

type UserUpdate struct {
	Name  *string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Email *string `json:"email,omitempty" validate:"omitempty,email"`
}

// Session is what logIn returns to the client.
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      *User     `json:"user"`
}
