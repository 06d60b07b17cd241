// Package models defines the client-side data model: the authenticated
// session, scan records, and transient alerts.
package models

import "time"

// Session is the authentication context held by the client. A zero Session
// means "not authenticated". Token and UserID are always set together; a
// stored token without a login instant is treated as corrupted state.
type Session struct {
	Token        string
	UserID       string
	UserEmail    string
	LoginInstant time.Time
}

// IsAuthenticated reports whether both the token and the user id are present.
func (s Session) IsAuthenticated() bool {
	return s.Token != "" && s.UserID != ""
}
