package domain

// Event is a single listed event. Records are never updated in place:
// they are created, read and deleted.
type Event struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Date        string  `json:"date"` // YYYY-MM-DD
	Location    string  `json:"location"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Attendees   int     `json:"attendees"`
}
