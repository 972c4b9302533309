package model

import (
	"fmt"
	"strings"
	"time"
)

type GuideState string

const (
	GuideActive   GuideState = "active"
	GuideInactive GuideState = "inactive"
)

type Guide struct {
	ID        string    `json:"_id,omitempty" bson:"_id,omitempty"`
	FullName  string    `json:"fullName" bson:"fullName" validate:"required,min=2,max=100"`
	Email     string    `json:"email" bson:"email" validate:"required,email"`
	Photo     string    `json:"photo,omitempty" bson:"photo,omitempty" validate:"omitempty,url"`
	Active    bool      `json:"active" bson:"active"`
	CreatedAt time.Time `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
	UpdatedBy string    `json:"updatedBy,omitempty" bson:"updatedBy,omitempty"`
}

func (g *Guide) State() GuideState {
	if g.Active {
		return GuideActive
	}
	return GuideInactive
}

// Field returns the stringified value of the JSON field name, reporting
// false for names a guide does not have.
func (g *Guide) Field(name string) (string, bool) {
	switch name {
	case "_id", "id":
		return g.ID, true
	case "fullName":
		return g.FullName, true
	case "email":
		return g.Email, true
	case "photo":
		return g.Photo, true
	case "active":
		return fmt.Sprint(g.Active), true
	case "state":
		return string(g.State()), true
	case "updatedBy":
		return g.UpdatedBy, true
	case "updatedAt":
		if g.UpdatedAt.IsZero() {
			return "", false
		}
		return g.UpdatedAt.UTC().Format(time.RFC3339), true
	}
	return "", false
}

// MatchesAll reports whether every queried field equals the guide's value,
// both sides compared case-insensitively.
func (g *Guide) MatchesAll(query map[string]string) bool {
	for key, want := range query {
		got, ok := g.Field(key)
		if !ok || strings.ToLower(got) != strings.ToLower(want) {
			return false
		}
	}
	return true
}

type GuideUpdate struct {
	FullName *string `json:"fullName,omitempty" validate:"omitempty,min=2,max=100"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Photo    *string `json:"photo,omitempty" validate:"omitempty,url"`
	Active   *bool   `json:"active,omitempty"`
}

func (u *GuideUpdate) IsEmpty() bool {
	return u.FullName == nil && u.Email == nil && u.Photo == nil && u.Active == nil
}
