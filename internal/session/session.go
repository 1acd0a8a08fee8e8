// Package session tracks the current user identity and the auth flow phase.
// There is no real authentication backend; the login screen simulates network
// latency with a fixed timer and every credential pair is accepted.
package session

import (
	"campuslink/internal/feed"
	"campuslink/internal/logging"
)

// Phase is the auth flow state machine. Transitions are forward-only
// (Login -> SchoolSelect -> Active) except Logout, which resets to Login
// unconditionally.
type Phase int

const (
	PhaseLogin Phase = iota
	PhaseSchoolSelect
	PhaseActive
)

// User is the session identity. ID and Verified are immutable for the
// session lifetime; Name, Bio and Department are editable in place from the
// edit-profile overlay, and School is stamped once during school selection.
type User struct {
	ID         string `yaml:"id"`
	Name       string `yaml:"name"`
	Avatar     string `yaml:"avatar"`
	Verified   bool   `yaml:"verified"`
	Department string `yaml:"department,omitempty"`
	School     string `yaml:"school,omitempty"`
	Bio        string `yaml:"bio,omitempty"`
}

// AuthorSnapshot returns the denormalized author copy embedded into posts at
// publish time.
func (u User) AuthorSnapshot() feed.Author {
	return feed.Author{
		ID:         u.ID,
		Name:       u.Name,
		Avatar:     u.Avatar,
		Verified:   u.Verified,
		Department: u.Department,
	}
}

// Session owns the auth phase and the current user. The seeded user object
// survives logout; only the phase resets, so logging back in restores the
// same identity.
type Session struct {
	phase Phase
	user  User
}

// New starts a session in the Login phase with the seeded user identity.
func New(u User) *Session {
	return &Session{phase: PhaseLogin, user: u}
}

// Phase returns the current auth phase.
func (s *Session) Phase() Phase {
	return s.phase
}

// User returns the current user.
func (s *Session) User() User {
	return s.user
}

// LoginSucceeded advances Login -> SchoolSelect. Any other phase is a no-op.
func (s *Session) LoginSucceeded() {
	if s.phase != PhaseLogin {
		return
	}
	s.phase = PhaseSchoolSelect
	logging.Session("login succeeded, awaiting school selection")
}

// SelectSchool stamps the school onto the user and activates the session.
// Only valid from SchoolSelect.
func (s *Session) SelectSchool(name string) {
	if s.phase != PhaseSchoolSelect {
		return
	}
	s.user.School = name
	s.phase = PhaseActive
	logging.Session("school selected: %s, session active", name)
}

// Logout resets to the Login phase from any state.
func (s *Session) Logout() {
	s.phase = PhaseLogin
	logging.Session("logged out")
}

// ProfileEdit is the set of fields the edit-profile overlay may change.
type ProfileEdit struct {
	Name       string
	Bio        string
	Department string
}

// ApplyEdit updates the mutable profile fields in place. Empty names are
// ignored so a cleared input cannot wipe the display name.
func (s *Session) ApplyEdit(e ProfileEdit) {
	if e.Name != "" {
		s.user.Name = e.Name
	}
	s.user.Bio = e.Bio
	s.user.Department = e.Department
	logging.Session("profile updated: name=%q department=%q", s.user.Name, s.user.Department)
}
