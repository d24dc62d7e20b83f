// Package telegram turns Bot API updates into workshop commands and queries
// and renders their results back into chat messages.
package telegram

import (
	"strings"

	tgbotapi "github.com/OvyFlash/telegram-bot-api"
)

// Inbound is the part of an update the router acts on.
type Inbound struct {
	UserID      int64
	ChatID      int64
	DisplayName string

	Text     string
	Command  string
	Args     string
	PhotoRef string

	CallbackID   string
	CallbackData string
}

func (in Inbound) IsCallback() bool {
	return in.CallbackID != ""
}

func (in Inbound) IsCommand() bool {
	return in.Command != ""
}

// FromUpdate extracts an Inbound from a private-chat message or callback
// query. Other update kinds are reported as not ok.
func FromUpdate(u tgbotapi.Update) (Inbound, bool) {
	switch {
	case u.CallbackQuery != nil && u.CallbackQuery.From != nil:
		q := u.CallbackQuery
		return Inbound{
			UserID:       q.From.ID,
			ChatID:       q.From.ID,
			DisplayName:  displayName(q.From),
			CallbackID:   q.ID,
			CallbackData: q.Data,
		}, true

	case u.Message != nil && u.Message.From != nil:
		msg := u.Message
		in := Inbound{
			UserID:      msg.From.ID,
			ChatID:      msg.Chat.ID,
			DisplayName: displayName(msg.From),
			Text:        strings.TrimSpace(msg.Text),
		}
		if len(msg.Photo) > 0 {
			in.PhotoRef = msg.Photo[len(msg.Photo)-1].FileID
		}
		in.Command, in.Args = splitCommand(in.Text)
		return in, true

	default:
		return Inbound{}, false
	}
}

// splitCommand parses "/name@bot args" into "name" and "args".
func splitCommand(text string) (string, string) {
	if !strings.HasPrefix(text, "/") {
		return "", ""
	}
	head, args, _ := strings.Cut(text[1:], " ")
	name, _, _ := strings.Cut(head, "@")
	return strings.ToLower(name), strings.TrimSpace(args)
}

func displayName(u *tgbotapi.User) string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		name = u.UserName
	}
	return name
}
