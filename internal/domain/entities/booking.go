package entities

import "time"

// BookingStatus represents the state of a booking request
type BookingStatus string

const (
	BookingStatusRequested BookingStatus = "requested"
)

// Booking is a customer's request to book a provider. Bookings are not stored.
type Booking struct {
	ID            string        `json:"id"`
	ProviderID    string        `json:"provider_id"`
	CustomerName  string        `json:"customer_name"`
	CustomerPhone string        `json:"customer_phone"`
	Address       string        `json:"address,omitempty"`
	PreferredDate string        `json:"preferred_date,omitempty"`
	Notes         string        `json:"notes,omitempty"`
	Status        BookingStatus `json:"status"`
	CreatedAt     time.Time     `json:"created_at"`
}
