package entity

import "time"

// Lead is a single form submission. It is transient: the spreadsheet row and
// the mailing-list subscriber are the only persisted artifacts.
type Lead struct {
	ID          string    `json:"id"`
	FullName    string    `json:"fullName"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Source      string    `json:"source,omitempty"`
	SubmittedAt time.Time `json:"submitted_at"`
}
