package session

// Option is one selectable button. Disabled options are shown but carry no data.
type Option struct {
	Label    string `json:"label"`
	Data     string `json:"data,omitempty"`
	Disabled bool   `json:"disabled,omitempty"`
}

// Prompt is what the front-end renders after each event.
type Prompt struct {
	Text    string   `json:"text"`
	Notice  string   `json:"notice,omitempty"`
	Options []Option `json:"options"`
}

// Event data understood by Flow.Handle.
const (
	DataMenu     = "menu"
	DataRooms    = "rooms"
	DataCancel   = "cancel"
	DataBack     = "back"
	PrefixBuild  = "building:"
	PrefixRoom   = "room:"
	PrefixTime   = "time:"
	PrefixDur    = "duration:"
	PrefixDelete = "delete:"
)

const (
	textMenu       = "Choose an action:"
	textBuildings  = "Choose a building:"
	textRooms      = "Choose a meeting room:"
	textStart      = "Choose a start time:"
	textDuration   = "Choose the booking duration:"
	textCancelList = "Choose a booking to cancel:"
	textNoBookings = "You have no active bookings."
	textTaken      = "This time is already taken. Please choose another time."
	textNoSlots    = "No time slots are available for booking."
	textTryLater   = "Something went wrong. Please try again later."
	labelBack      = "⬅ Back"
	labelRestart   = "Start over"
)

func backOption(data string) Option {
	return Option{Label: labelBack, Data: data}
}

func menuPrompt() Prompt {
	return Prompt{
		Text: textMenu,
		Options: []Option{
			{Label: "Free meeting rooms", Data: DataRooms},
			{Label: "Cancel a booking", Data: DataCancel},
		},
	}
}

func tryLaterPrompt() Prompt {
	return Prompt{Text: textTryLater, Options: []Option{{Label: labelRestart, Data: DataMenu}}}
}
