package commands

import (
	"strconv"
	"time"

	"workshop/internal/core/domain/model/action"
	"workshop/internal/core/ports"
)

// SweepResult counts one pass of a background sweep. Candidates is the
// number of orders that qualified; Sent and Failed count messages.
type SweepResult struct {
	Sweep      string
	Candidates int
	Sent       int
	Failed     int
}

// SweepOptions holds the age thresholds of the background sweeps.
type SweepOptions struct {
	FeedbackDelay    time.Duration
	StuckAcceptedAge time.Duration
	ReminderAge      time.Duration
	ReminderCooldown time.Duration
}

func ratingKeyboard(orderID int64) ports.Keyboard {
	row := make([]ports.Button, 0, MaxRating-MinRating+1)
	for rating := MinRating; rating <= MaxRating; rating++ {
		row = append(row, ports.Button{Text: strconv.Itoa(rating), Action: action.Rate(orderID, rating).Encode()})
	}
	return ports.Keyboard{row}
}

func reminderKeyboard(orderID int64) ports.Keyboard {
	return ports.Keyboard{
		{{Text: "✅ Already brought it", Action: action.AlreadyDelivered(orderID).Encode()}},
		{{Text: "⏳ I will bring it later", Action: action.BringLater(orderID).Encode()}},
		{{Text: "❌ Cancel the order", Action: action.ClientCancel(orderID).Encode()}},
	}
}
