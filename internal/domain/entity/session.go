package entity

import (
	"time"
)

// State identifies a step of the journey conversation. Checkpoint states are
// derived from the canonical checkpoint sequence, one per ordinal position.
type State string

// Fixed conversation states
const (
	StateChoosingCarrier       State = "choosing_carrier"
	StateEnteringDepartureDate State = "entering_departure_date"
	StateEnteringDepartureTime State = "entering_departure_time"
	StateChoosingTimezone      State = "choosing_initial_timezone"
	StateChangingTimezone      State = "changing_timezone"
	StateConfirmingCancel      State = "confirming_cancel"
)

// Session holds the ephemeral per-user conversational state of one journey
// flow. It is created on the first interaction of a new flow and destroyed on
// completion, cancellation, or reset. Never shared across users.
type Session struct {
	UserID int64 `json:"userId"`
	ChatID int64 `json:"chatId"`
	State  State `json:"state"`

	CarrierID   uint   `json:"carrierId,omitempty"`
	CarrierName string `json:"carrierName,omitempty"`

	// Raw user input, converted to UTC only once the timezone is known
	DepartureDate string `json:"departureDate,omitempty"`
	DepartureTime string `json:"departureTime,omitempty"`

	Timezone string `json:"timezone,omitempty"`

	JourneyID       string    `json:"journeyId,omitempty"`
	CheckpointIDs   []uint    `json:"checkpointIds,omitempty"`
	CheckpointIndex int       `json:"checkpointIndex"`
	ReferenceUTC    time.Time `json:"referenceUtc,omitempty"` // last accepted instant (departure or latest event)

	// State to return to after a sub-flow (timezone change, cancel prompt)
	ReturnState State `json:"returnState,omitempty"`

	// Identifier of the last rendered message, for in-place editing
	LastMessageID int64 `json:"lastMessageId,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
