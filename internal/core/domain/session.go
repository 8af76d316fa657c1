package domain

import "time"

// DirectMessageTarget is a one-shot request to open a conversation with
// UserID and prefill the draft with InitialMessage.
type DirectMessageTarget struct {
	UserID         string `json:"user_id"`
	InitialMessage string `json:"initial_message"`
}

// Session is a logged-in user. User is a snapshot that the marketplace keeps
// in lockstep with role and profile changes of the same user.
type Session struct {
	ID          string               `json:"id"`
	User        User                 `json:"user"`
	ReadMarkers map[string]time.Time `json:"read_markers"`
	DMTarget    *DirectMessageTarget `json:"dm_target,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
}

// LastRead returns the read marker of scope, or the zero time when the scope
// was never read.
func (s *Session) LastRead(scope string) time.Time {
	return s.ReadMarkers[scope]
}

// Clone returns a deep copy of s.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	c := *s
	c.User = s.User.Clone()
	c.ReadMarkers = make(map[string]time.Time, len(s.ReadMarkers))
	for k, v := range s.ReadMarkers {
		c.ReadMarkers[k] = v
	}
	if s.DMTarget != nil {
		t := *s.DMTarget
		c.DMTarget = &t
	}
	return &c
}
