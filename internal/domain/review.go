package domain

type Review struct {
	ID      int64    `json:"id"`
	YachtID *int64   `json:"yacht_id,omitempty"`
	Author  *string  `json:"author,omitempty"`
	Rating  *float64 `json:"rating,omitempty"`
	Locale  *string  `json:"locale,omitempty"`
	Title   *string  `json:"title,omitempty"`
	Text    *string  `json:"text,omitempty"`
}

type ReviewsPage struct {
	Items      []Review `json:"items"`
	NextCursor *string  `json:"next_cursor,omitempty"`
}
