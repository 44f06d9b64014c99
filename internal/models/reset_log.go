package models

// ResetLogEntry is one audit record coupling a successful send to the
// password change it authorised. Entries are append-only; they are written
// to the daily CSV log and never read back.
type ResetLogEntry struct {
	Timestamp string `json:"timestamp"` // site-local, second precision
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"` // the new plaintext password
}
