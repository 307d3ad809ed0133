package telegram

import (
	"context"
	"fmt"

	"college_assistant_bot/internal/domain/messaging"

	"gopkg.in/telebot.v3"
)

const buttonsPerRow = 2

// botSender is the part of *telebot.Bot the adapter needs.
type botSender interface {
	Send(to telebot.Recipient, what interface{}, opts ...interface{}) (*telebot.Message, error)
}

// TelebotAdapter implements messaging.Sender using the gopkg.in/telebot.v3 library.
type TelebotAdapter struct {
	bot botSender
}

func NewTelebotAdapter(b *telebot.Bot) *TelebotAdapter {
	return &TelebotAdapter{bot: b}
}

// Send delivers the reply as a private message to the caller.
func (tba *TelebotAdapter) Send(ctx context.Context, out messaging.Outbound) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	options := &telebot.SendOptions{ReplyMarkup: replyMarkup(out)}

	recipient := &telebot.User{ID: out.CallerID}
	if _, err := tba.bot.Send(recipient, out.Text, options); err != nil {
		return fmt.Errorf("failed to send message to %d: %w", out.CallerID, err)
	}
	return nil
}

// replyMarkup renders Options as a resized reply keyboard, two buttons per row.
func replyMarkup(out messaging.Outbound) *telebot.ReplyMarkup {
	if len(out.Options) == 0 {
		if out.RemoveKeyboard {
			return &telebot.ReplyMarkup{RemoveKeyboard: true}
		}
		return nil
	}

	markup := &telebot.ReplyMarkup{ResizeKeyboard: true}
	rows := make([]telebot.Row, 0, (len(out.Options)+buttonsPerRow-1)/buttonsPerRow)
	for i := 0; i < len(out.Options); i += buttonsPerRow {
		end := min(i+buttonsPerRow, len(out.Options))
		buttons := make([]telebot.Btn, 0, end-i)
		for _, label := range out.Options[i:end] {
			buttons = append(buttons, markup.Text(label))
		}
		rows = append(rows, markup.Row(buttons...))
	}
	markup.Reply(rows...)
	return markup
}
