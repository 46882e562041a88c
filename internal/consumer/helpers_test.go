package consumer

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/mock"

	"github.com/chucky-1/expenses/internal/producer/mocks"
)

type sequence struct {
	n int
}

func (s *sequence) NewID() string {
	s.n++
	return fmt.Sprintf("id-%d", s.n)
}

// outbox collects texts of every message sent through the mocked bot
type outbox struct {
	mu    sync.Mutex
	texts []string
}

func (o *outbox) add(text string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.texts = append(o.texts, text)
}

func (o *outbox) all() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]string(nil), o.texts...)
}

func (o *outbox) last() string {
	texts := o.all()
	if len(texts) == 0 {
		return ""
	}
	return texts[len(texts)-1]
}

func (o *outbox) contains(text string) bool {
	for _, t := range o.all() {
		if strings.Contains(t, text) {
			return true
		}
	}
	return false
}

func newSender(t *testing.T) (*mocks.Sender, *outbox) {
	sender := mocks.NewSender(t)
	out := &outbox{}
	sender.On("Send", mock.AnythingOfType("tgbotapi.MessageConfig")).
		Run(func(args mock.Arguments) {
			out.add(args.Get(0).(tgbotapi.MessageConfig).Text)
		}).
		Return(tgbotapi.Message{}, nil).Maybe()
	sender.On("Request", mock.AnythingOfType("tgbotapi.CallbackConfig")).
		Return(&tgbotapi.APIResponse{Ok: true}, nil).Maybe()
	return sender, out
}

func message(chatID int64, s string) tgbotapi.Update {
	return tgbotapi.Update{Message: &tgbotapi.Message{
		Chat: &tgbotapi.Chat{ID: chatID},
		Text: s,
	}}
}

func command(chatID int64, s string) tgbotapi.Update {
	name, _, _ := strings.Cut(s, " ")
	update := message(chatID, s)
	update.Message.Entities = []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(name)}}
	return update
}

func callback(chatID int64, data string) tgbotapi.Update {
	return tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		ID:      "cb-" + data,
		Data:    data,
		Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: chatID}},
	}}
}
