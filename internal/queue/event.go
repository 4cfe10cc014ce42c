// Package queue defines message payloads exchanged over the message broker
// and the consumer that records confirmed bookings.
package queue

// BookingConfirmedQueue is the durable queue confirmations are published to.
const BookingConfirmedQueue = "booking.confirmed"

// BookingConfirmedEvent is published when an appointment is confirmed. It
// carries enough detail for downstream consumers to log or notify without
// calling back into the booking API.
type BookingConfirmedEvent struct {
	Reference     string   `json:"reference"`
	SlotID        int      `json:"slot_id"`
	BranchID      string   `json:"branch_id"`
	BranchName    string   `json:"branch_name"`
	CityName      string   `json:"city_name"`
	ProvinceName  string   `json:"province_name"`
	Date          string   `json:"date"`
	Time          string   `json:"time"`
	Services      []string `json:"services"`
	ApplicantName string   `json:"applicant_name"`
	Email         string   `json:"email"`
	ConfirmedAt   string   `json:"confirmed_at"`
}
