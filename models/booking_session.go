package models

import "time"

// SessionState is a step of the conversational booking flow.
type SessionState string

const (
	StateIdle           SessionState = "idle"
	StateBuildingChosen SessionState = "building_chosen"
	StateRoomChosen     SessionState = "room_chosen"
	StateStartChosen    SessionState = "start_chosen"
	StateCommitted      SessionState = "committed"
	StateCancelListing  SessionState = "cancel_listing"
)

// BookingSession holds one user's selections between prompts.
type BookingSession struct {
	UserID    int64        `json:"userId"`
	State     SessionState `json:"state"`
	Building  string       `json:"building,omitempty"`
	Room      string       `json:"room,omitempty"`
	Start     HalfHour     `json:"start,omitempty"`
	BookingID string       `json:"bookingId,omitempty"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// NewBookingSession returns an idle session for userID.
func NewBookingSession(userID int64) *BookingSession {
	return &BookingSession{UserID: userID, State: StateIdle, UpdatedAt: time.Now()}
}
