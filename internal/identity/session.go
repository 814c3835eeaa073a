package identity

import "time"

// Session is one identity-provider session: the provider's subject id
// plus the bearer credentials needed to call the backend on the
// operator's behalf.
type Session struct {
	SubjectID    string    `json:"subject_id"`
	Email        string    `json:"email"`
	DisplayName  string    `json:"display_name,omitempty"`
	IDToken      string    `json:"id_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}
