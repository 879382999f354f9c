package domain

// User is the demo account attached to the local session. There is no
// authentication server; the user record exists only to round-trip the
// stored session blob.
type User struct {
	ID              string `json:"id"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Email           string `json:"email"`
	SelectedPersona string `json:"selected_persona"`
}

// Session is the single piece of durable client state: which persona is
// currently selected. An empty SelectedPersona means none.
type Session struct {
	User            User   `json:"user"`
	SelectedPersona string `json:"selected_persona"`
}

// Select records a persona choice on both the session and its user record.
func (s *Session) Select(persona string) {
	s.SelectedPersona = persona
	s.User.SelectedPersona = persona
}
