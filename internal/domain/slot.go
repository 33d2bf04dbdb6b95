package domain

import "time"

// Slot is a bookable time window for an experience with finite seat capacity.
// Invariant: 0 <= BookedCount <= Capacity, also under concurrent reservations.
type Slot struct {
	ID           string
	ExperienceID string
	Date         time.Time
	StartTime    string
	EndTime      string
	Capacity     int
	BookedCount  int
	CreatedAt    time.Time
}

// AvailableSeats is the number of seats still open for reservation.
func (s Slot) AvailableSeats() int {
	return s.Capacity - s.BookedCount
}
