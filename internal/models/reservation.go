// internal/models/reservation.go
package models

import (
	"strconv"
	"strings"
)

// ReservationRequest is the message the dialog code hook enqueues at
// fulfillment and the recommendation worker consumes. JSON keys match the
// slot names.
type ReservationRequest struct {
	Location       string `json:"location"`
	Cuisine        string `json:"cuisine"`
	Date           string `json:"date"`
	Time           string `json:"time"`
	NumberOfPeople string `json:"numberOfPeople"`
	EmailAddress   string `json:"emailAddress"`
}

// NewReservationRequest copies the collected slots. Absent slots become "".
// The party size is written in canonical decimal form so "+2" or " 2 "
// reach the worker as "2".
func NewReservationRequest(slots SlotSet) ReservationRequest {
	return ReservationRequest{
		Location:       slots.Value(SlotLocation),
		Cuisine:        slots.Value(SlotCuisine),
		Date:           slots.Value(SlotDate),
		Time:           slots.Value(SlotTime),
		NumberOfPeople: canonicalPartySize(slots.Value(SlotNumberOfPeople)),
		EmailAddress:   slots.Value(SlotEmailAddress),
	}
}

func canonicalPartySize(v string) string {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return v
	}
	return strconv.Itoa(n)
}

// QueueMessage is one received, not yet deleted, queue entry.
type QueueMessage struct {
	ID            string `json:"id,omitempty"`
	Body          string `json:"body"`
	ReceiptHandle string `json:"receiptHandle"`
}
