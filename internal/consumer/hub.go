package consumer

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/chucky-1/expenses/internal/producer"
	"github.com/chucky-1/expenses/internal/repository"
	"github.com/chucky-1/expenses/internal/service"
)

// Hub routes every update to the consumer of its chat: the login screen first,
// then the expense screen. Only the Consume goroutine touches the channel maps.
type Hub struct {
	screen           *producer.Screen
	updatesChan      tgbotapi.UpdatesChannel
	validator        *service.Validator
	chats            service.Chats
	ids              service.IDGenerator
	buffer           int
	loginChannels    map[int64]chan tgbotapi.Update
	expensesChannels map[int64]chan tgbotapi.Update
	finish           chan *finishData
}

func NewHub(screen *producer.Screen, updatesChan tgbotapi.UpdatesChannel, validator *service.Validator,
	chats service.Chats, ids service.IDGenerator, buffer int) *Hub {
	if buffer < 1 {
		buffer = 1
	}
	return &Hub{
		screen:           screen,
		updatesChan:      updatesChan,
		validator:        validator,
		chats:            chats,
		ids:              ids,
		buffer:           buffer,
		loginChannels:    make(map[int64]chan tgbotapi.Update),
		expensesChannels: make(map[int64]chan tgbotapi.Update),
		finish:           make(chan *finishData),
	}
}

func (h *Hub) Consume(ctx context.Context) {
	logrus.Info("hub consumer started")
	for {
		select {
		case <-ctx.Done():
			logrus.Infof("hub consumer stopped: %v", ctx.Err())
			return
		case data := <-h.finish:
			h.startExpenses(ctx, data)
		case update, ok := <-h.updatesChan:
			if !ok {
				logrus.Info("hub consumer stopped: updates channel closed")
				return
			}
			h.route(ctx, update)
		}
	}
}

func (h *Hub) route(ctx context.Context, update tgbotapi.Update) {
	chat := update.FromChat()
	if chat == nil {
		logrus.Debugf("hub received update %d without chat", update.UpdateID)
		return
	}

	if update.Message != nil && update.Message.IsCommand() {
		switch update.Message.Command() {
		case startCommand, loginCommand, signupCommand:
			logrus.Infof("received message in hub consumer to log in from chat %d", chat.ID)
			if h.authorized(ctx, chat.ID) {
				if err := h.screen.Notify(chat.ID, "you are already logged in"); err != nil {
					logrus.Errorf("login error: %v", err)
				}
				return
			}
			ch, ok := h.loginChannels[chat.ID]
			if !ok {
				logrus.Infof("first touch with the user with chat id %d", chat.ID)
				ch = h.startLogin(ctx, chat.ID)
			}
			h.forward(chat.ID, ch, update)
			return
		}
	}

	if ch, ok := h.expensesChannels[chat.ID]; ok {
		h.forward(chat.ID, ch, update)
		return
	}

	if ch, ok := h.loginChannels[chat.ID]; ok {
		h.forward(chat.ID, ch, update)
		return
	}

	logrus.Infof("received message from unknown chat %d", chat.ID)
	if err := h.screen.Notify(chat.ID, "Send /login to start"); err != nil {
		logrus.Errorf("hub consumer: %v", err)
	}
}

// forward never blocks the hub, a chat that can't keep up loses the update
func (h *Hub) forward(chatID int64, ch chan tgbotapi.Update, update tgbotapi.Update) {
	select {
	case ch <- update:
	default:
		logrus.Warnf("chat %d is busy, update %d dropped", chatID, update.UpdateID)
	}
}

func (h *Hub) startLogin(ctx context.Context, chatID int64) chan tgbotapi.Update {
	ch := make(chan tgbotapi.Update, h.buffer)
	h.loginChannels[chatID] = ch
	go NewLogin(h.screen, chatID, ch, h.finish).Consume(ctx)
	return ch
}

func (h *Hub) startExpenses(ctx context.Context, data *finishData) {
	logrus.Infof("hub received message in finish chat with chat id %d", data.chatID)
	loginCh := h.loginChannels[data.chatID]
	delete(h.loginChannels, data.chatID)

	if err := h.chats.Add(ctx, data.chatID, data.credentials); err != nil {
		logrus.Errorf("hub couldn't remember chat %d: %v", data.chatID, err)
		return
	}

	ch := make(chan tgbotapi.Update, h.buffer)
	h.expensesChannels[data.chatID] = ch
	// the login consumer has returned, whatever it didn't read belongs to the expense screen
	for drained := false; !drained; {
		select {
		case update := <-loginCh:
			logrus.Debugf("update %d of chat %d moved from login to expenses", update.UpdateID, data.chatID)
			h.forward(data.chatID, ch, update)
		default:
			drained = true
		}
	}
	controller := service.NewController(repository.NewExpensesLocalStorage(), h.validator, h.ids)
	go NewExpenses(h.screen, data.chatID, ch, controller).Consume(ctx)
}

func (h *Hub) authorized(ctx context.Context, chatID int64) bool {
	_, err := h.chats.Get(ctx, chatID)
	return err == nil
}
