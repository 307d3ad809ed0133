package telegram

import (
	"context"
	"errors"
	"testing"

	"college_assistant_bot/internal/domain/messaging"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"gopkg.in/telebot.v3"
)

// ── Mock bot ──

type sentMessage struct {
	to   telebot.Recipient
	what interface{}
	opts []interface{}
}

type mockBot struct {
	sent []sentMessage
	err  error
}

func (m *mockBot) Send(to telebot.Recipient, what interface{}, opts ...interface{}) (*telebot.Message, error) {
	m.sent = append(m.sent, sentMessage{to: to, what: what, opts: opts})
	if m.err != nil {
		return nil, m.err
	}
	return &telebot.Message{}, nil
}

func rowLabels(markup *telebot.ReplyMarkup) [][]string {
	var rows [][]string
	for _, row := range markup.ReplyKeyboard {
		var labels []string
		for _, btn := range row {
			labels = append(labels, btn.Text)
		}
		rows = append(rows, labels)
	}
	return rows
}

func TestReplyMarkup_TwoButtonsPerRow(t *testing.T) {
	markup := replyMarkup(messaging.Outbound{Options: []string{"A", "B", "C", "D", "E"}})
	if markup == nil || !markup.ResizeKeyboard {
		t.Fatalf("expected a resized reply keyboard, got %+v", markup)
	}
	got := rowLabels(markup)
	want := [][]string{{"A", "B"}, {"C", "D"}, {"E"}}
	if len(got) != len(want) {
		t.Fatalf("rows = %v, want %v", got, want)
	}
	for i := range want {
		if len(got[i]) != len(want[i]) {
			t.Fatalf("row %d = %v, want %v", i, got[i], want[i])
		}
		for j := range want[i] {
			if got[i][j] != want[i][j] {
				t.Errorf("row %d button %d = %q, want %q", i, j, got[i][j], want[i][j])
			}
		}
	}
}

func TestReplyMarkup_RemoveAndNone(t *testing.T) {
	if m := replyMarkup(messaging.Outbound{RemoveKeyboard: true}); m == nil || !m.RemoveKeyboard {
		t.Errorf("expected a keyboard removal, got %+v", m)
	}
	if m := replyMarkup(messaging.Outbound{}); m != nil {
		t.Errorf("expected no markup, got %+v", m)
	}
	m := replyMarkup(messaging.Outbound{Options: []string{"A"}, RemoveKeyboard: true})
	if m == nil || m.RemoveKeyboard || len(m.ReplyKeyboard) != 1 {
		t.Errorf("options must win over removal, got %+v", m)
	}
}

func TestTelebotAdapter_Send(t *testing.T) {
	bot := &mockBot{}
	adapter := &TelebotAdapter{bot: bot}

	err := adapter.Send(context.Background(), messaging.Outbound{CallerID: 42, Text: "hi", Options: []string{"X"}})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if len(bot.sent) != 1 {
		t.Fatalf("expected 1 message, got %d", len(bot.sent))
	}
	msg := bot.sent[0]
	if msg.to.Recipient() != "42" || msg.what != "hi" {
		t.Errorf("unexpected message: %+v", msg)
	}
	opts, ok := msg.opts[0].(*telebot.SendOptions)
	if !ok || opts.ReplyMarkup == nil || len(opts.ReplyMarkup.ReplyKeyboard) != 1 {
		t.Errorf("expected reply keyboard in options, got %+v", msg.opts)
	}
}

func TestTelebotAdapter_SendErrors(t *testing.T) {
	bot := &mockBot{err: errors.New("forbidden: bot was blocked by the user")}
	adapter := &TelebotAdapter{bot: bot}
	if err := adapter.Send(context.Background(), messaging.Outbound{CallerID: 1, Text: "x"}); !errors.Is(err, bot.err) {
		t.Errorf("expected wrapped send error, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	bot.sent = nil
	if err := adapter.Send(ctx, messaging.Outbound{CallerID: 1, Text: "x"}); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if len(bot.sent) != 0 {
		t.Error("nothing must be sent after cancellation")
	}
}

func TestInboundFromUpdate(t *testing.T) {
	user := &telebot.User{ID: 7}
	tests := []struct {
		name   string
		upd    telebot.Update
		want   messaging.Inbound
		wantOK bool
	}{
		{
			name:   "text message",
			upd:    telebot.Update{Message: &telebot.Message{Sender: user, Text: "Мій розклад"}},
			want:   messaging.Inbound{RequestID: "req", CallerID: 7, Text: "Мій розклад"},
			wantOK: true,
		},
		{
			name:   "callback with unique prefix",
			upd:    telebot.Update{Callback: &telebot.Callback{Sender: user, Data: "\fНовини"}},
			want:   messaging.Inbound{RequestID: "req", CallerID: 7, CallbackData: "Новини"},
			wantOK: true,
		},
		{name: "no sender", upd: telebot.Update{Message: &telebot.Message{Text: "hi"}}},
		{name: "blank text", upd: telebot.Update{Message: &telebot.Message{Sender: user, Text: "  "}}},
		{name: "empty update", upd: telebot.Update{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := inboundFromUpdate(tt.upd, "req")
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("got %+v, %v; want %+v, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestRecoverMiddleware(t *testing.T) {
	log, hook := logtest.NewNullLogger()
	handler := RecoverMiddleware(logrus.NewEntry(log))(func(telebot.Context) error {
		panic("boom")
	})

	if err := handler(nil); err == nil {
		t.Fatal("expected the panic to surface as an error")
	}
	if entry := hook.LastEntry(); entry == nil || entry.Level != logrus.ErrorLevel {
		t.Errorf("expected an error log entry, got %+v", entry)
	}
}
