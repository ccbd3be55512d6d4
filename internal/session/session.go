// Package session carries the authenticated caller through a request. A
// Session is built once by the auth middleware and handed to every view;
// nothing about the caller lives in package-level state.
package session

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const contextKey = "session"

var ErrNoSession = errors.New("user not authenticated")

type Session struct {
	ID     uuid.UUID `json:"session_id"`
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
	Roles  []string  `json:"roles"`
}

// Anonymous is the caller for requests that carry no token.
var Anonymous = Session{}

func (s Session) Authenticated() bool {
	return s.UserID != uuid.Nil
}

// HasRole reports membership as loaded at authentication time. Policy
// decisions do not use this; they ask the store.
func (s Session) HasRole(role string) bool {
	for _, r := range s.Roles {
		if r == role {
			return true
		}
	}
	return false
}

func Set(c *gin.Context, s Session) {
	c.Set(contextKey, s)
}

// From returns the caller stored by the auth middleware, or Anonymous.
func From(c *gin.Context) Session {
	v, ok := c.Get(contextKey)
	if !ok {
		return Anonymous
	}
	s, ok := v.(Session)
	if !ok {
		return Anonymous
	}
	return s
}

// Require is From for routes behind RequireAuth.
func Require(c *gin.Context) (Session, error) {
	s := From(c)
	if !s.Authenticated() {
		return Session{}, ErrNoSession
	}
	return s, nil
}
