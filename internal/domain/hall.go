package domain

// CinemaHall is a seating grid defined by its row count and seats per row.
// Halls are never resized once a session references them.
type CinemaHall struct {
	ID         int
	Name       string
	SeatRows   int
	SeatsInRow int
}

func (h CinemaHall) Capacity() int {
	return h.SeatRows * h.SeatsInRow
}

// ValidateSeat checks a requested (row, seat) against the hall geometry.
// It is pure and must run before any store access for the request.
func (h CinemaHall) ValidateSeat(row, seat int) *GeometryError {
	if row < 1 || row > h.SeatRows {
		return &GeometryError{Field: "row", Max: h.SeatRows}
	}

	if seat < 1 || seat > h.SeatsInRow {
		return &GeometryError{Field: "seat", Max: h.SeatsInRow}
	}

	return nil
}
