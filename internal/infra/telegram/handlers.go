package telegram

import (
	"context"
	"fmt"
	"runtime/debug"
	"strings"

	"college_assistant_bot/internal/domain/messaging"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

// Handler turns one inbound message into its reply.
type Handler interface {
	Handle(ctx context.Context, in messaging.Inbound) messaging.Outbound
}

var commandDescriptions = map[string]string{
	"/start":  "Реєстрація та головне меню",
	"/help":   "Довідка",
	"/cancel": "Скасувати поточну дію",
	"/admin":  "Вхід в адмін-панель",
	"/logout": "Вийти з адмін-панелі",
}

// RegisterHandlers routes commands, text messages and button presses to h
// and delivers every reply through sender.
//
// The bot must run with Synchronous set, so updates are accepted in arrival
// order; the returned Dispatcher then keeps that order per caller while
// different callers are handled concurrently.
func RegisterHandlers(
	ctx context.Context,
	b *telebot.Bot,
	h Handler,
	commands []string,
	sender messaging.Sender,
	baseLogger *logrus.Entry,
) *Dispatcher {
	gatewayLogger := baseLogger.WithField("component", "gateway")
	b.Use(RecoverMiddleware(gatewayLogger))
	dispatcher := NewDispatcher(gatewayLogger)

	handle := func(c telebot.Context) error {
		in, ok := inboundFromUpdate(c.Update(), uuid.NewString())
		if !ok {
			gatewayLogger.WithField("update_id", c.Update().ID).Debug("Ignoring update without sender or input")
			return nil
		}
		isCallback := c.Callback() != nil

		dispatcher.Enqueue(in.CallerID, func() {
			reqLogger := gatewayLogger.WithFields(logrus.Fields{
				"caller_id":  in.CallerID,
				"request_id": in.RequestID,
			})
			if isCallback {
				// Acknowledge the press so the client stops its spinner.
				if err := c.Respond(); err != nil {
					reqLogger.WithError(err).Warn("Failed to answer callback")
				}
			}

			out := h.Handle(ctx, in)
			if err := sender.Send(ctx, out); err != nil {
				reqLogger.WithError(err).Error("Failed to deliver reply")
			}
		})
		return nil
	}

	for _, cmd := range commands {
		b.Handle(cmd, handle)
	}
	b.Handle(telebot.OnText, handle)
	b.Handle(telebot.OnCallback, handle)

	gatewayLogger.WithField("commands", len(commands)).Info("Telegram handlers registered")
	return dispatcher
}

// SetCommands publishes the command list shown by Telegram clients.
func SetCommands(b *telebot.Bot, commands []string) error {
	botCommands := make([]telebot.Command, 0, len(commands))
	for _, cmd := range commands {
		if desc, ok := commandDescriptions[cmd]; ok {
			botCommands = append(botCommands, telebot.Command{Text: strings.TrimPrefix(cmd, "/"), Description: desc})
		}
	}
	if err := b.SetCommands(botCommands); err != nil {
		return fmt.Errorf("failed to set bot commands: %w", err)
	}
	return nil
}

// inboundFromUpdate extracts caller and input from a private message or a
// callback press. Updates without a sender or any input are skipped.
func inboundFromUpdate(upd telebot.Update, requestID string) (messaging.Inbound, bool) {
	in := messaging.Inbound{RequestID: requestID}
	switch {
	case upd.Callback != nil && upd.Callback.Sender != nil:
		in.CallerID = upd.Callback.Sender.ID
		// Data of buttons with a unique id carries a "\f" prefix.
		in.CallbackData = strings.TrimPrefix(upd.Callback.Data, "\f")
	case upd.Message != nil && upd.Message.Sender != nil:
		in.CallerID = upd.Message.Sender.ID
		in.Text = upd.Message.Text
	default:
		return messaging.Inbound{}, false
	}
	if strings.TrimSpace(in.Input()) == "" {
		return messaging.Inbound{}, false
	}
	return in, true
}

// RecoverMiddleware turns handler panics into logged errors.
func RecoverMiddleware(log *logrus.Entry) telebot.MiddlewareFunc {
	return func(next telebot.HandlerFunc) telebot.HandlerFunc {
		return func(c telebot.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(logrus.Fields{
						"panic": r,
						"stack": string(debug.Stack()),
					}).Error("Panic recovered in telegram handler")
					err = fmt.Errorf("telegram handler panic: %v", r)
				}
			}()
			return next(c)
		}
	}
}
