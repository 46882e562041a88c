package consumer

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/chucky-1/expenses/internal/model"
	"github.com/chucky-1/expenses/internal/producer"
)

const (
	startCommand  = "start"
	loginCommand  = "login"
	signupCommand = "signup"
)

type loginStep int

const (
	waitCommand loginStep = iota
	waitEmail
	waitPassword
)

type finishData struct {
	chatID      int64
	credentials model.Credentials
}

// Login asks for an email and a password and hands them to the hub.
// Nothing is checked: the values are passed on as they were typed.
type Login struct {
	screen      *producer.Screen
	chatID      int64
	updatesChan chan tgbotapi.Update
	finish      chan<- *finishData

	step        loginStep
	credentials model.Credentials
}

func NewLogin(screen *producer.Screen, chatID int64, updatesChan chan tgbotapi.Update, finish chan<- *finishData) *Login {
	return &Login{
		screen:      screen,
		chatID:      chatID,
		updatesChan: updatesChan,
		finish:      finish,
	}
}

func (l *Login) Consume(ctx context.Context) {
	logrus.Infof("login consumer for chat %d started", l.chatID)

	for {
		select {
		case <-ctx.Done():
			logrus.Infof("login consumer for chat %d stopped: %v", l.chatID, ctx.Err())
			return
		case update := <-l.updatesChan:
			if update.Message == nil {
				continue
			}
			done, err := l.handle(update.Message)
			if err != nil {
				logrus.Errorf("login error: %v", err)
				continue
			}
			if !done {
				continue
			}

			logrus.Debugf("login consumer for chat %d finished", l.chatID)
			select {
			case l.finish <- &finishData{chatID: l.chatID, credentials: l.credentials}:
			case <-ctx.Done():
			}
			return
		}
	}
}

func (l *Login) handle(message *tgbotapi.Message) (bool, error) {
	if message.IsCommand() {
		switch message.Command() {
		case startCommand, loginCommand, signupCommand:
			logrus.Debugf("%s command started executing", message.Command())
			l.step = waitEmail
			return false, l.screen.Notify(l.chatID, "Enter your email")
		default:
			return false, l.screen.Notify(l.chatID, "Please log in first: /login")
		}
	}

	switch l.step {
	case waitEmail:
		l.credentials.Email = message.Text
		l.step = waitPassword
		return false, l.screen.Notify(l.chatID, "Enter your password")
	case waitPassword:
		l.credentials.Password = message.Text
		return true, nil
	default:
		return false, l.screen.Notify(l.chatID, "Please log in first: /login")
	}
}
