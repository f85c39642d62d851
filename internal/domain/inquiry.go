package domain

import "time"

// Inquiry is a booking inquiry submitted through the public funnel.
// StartDate and EndDate are kept as the YYYY-MM-DD strings the visitor
// typed; the revenue estimator is the place that decides whether they
// parse.
type Inquiry struct {
	ID        int64     `json:"id"`
	YachtID   *int64    `json:"yacht_id,omitempty"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone,omitempty"`
	StartDate *string   `json:"start_date,omitempty"`
	EndDate   *string   `json:"end_date,omitempty"`
	Message   *string   `json:"message,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
