package entity

// Cookie is one browser cookie record. The field set mirrors what the
// automation backend reports so that a save/load round-trip is lossless.
type Cookie struct {
	Name     string  `json:"name"`
	Value    string  `json:"value"`
	Domain   string  `json:"domain"`
	Path     string  `json:"path"`
	Expires  float64 `json:"expires,omitempty"`
	Secure   bool    `json:"secure,omitempty"`
	HTTPOnly bool    `json:"http_only,omitempty"`
	SameSite string  `json:"same_site,omitempty"`
}

// SessionState is the serialized authentication state restored at the
// start of a request and overwritten after every successful authenticated
// interaction.
type SessionState struct {
	Cookies []Cookie `json:"cookies"`
}

func (s *SessionState) Empty() bool {
	return s == nil || len(s.Cookies) == 0
}

// Credentials is the identity-provider secret pair. It lives only in
// process memory and is read exclusively by the authentication flow.
type Credentials struct {
	Email    string
	Password string
}

// Configured reports whether auto-login is possible. Either field missing
// disables it and forces a pre-seeded session.
func (c Credentials) Configured() bool {
	return c.Email != "" && c.Password != ""
}
