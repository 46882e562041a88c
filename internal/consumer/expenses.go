package consumer

import (
	"context"
	"errors"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/chucky-1/expenses/internal/model"
	"github.com/chucky-1/expenses/internal/producer"
	"github.com/chucky-1/expenses/internal/repository"
	"github.com/chucky-1/expenses/internal/service"
)

const (
	descriptionCommand = "description"
	amountCommand      = "amount"
	submitCommand      = "submit"
	listCommand        = "list"
)

const (
	quickEntryHint  = "Send the expense as \"Coffee 3.50\": a description and an amount separated by a space"
	goneExpenseHint = "This expense doesn't exist anymore"
	saveFailedHint  = "Couldn't save the expense, try again"
	unknownCommand  = "Unknown command. Use /description, /amount, /submit or /list"
)

// Expenses is the expense screen of one chat. It turns telegram updates into
// controller events and renders the result back.
type Expenses struct {
	screen      *producer.Screen
	chatID      int64
	updatesChan chan tgbotapi.Update
	controller  *service.Controller
}

func NewExpenses(screen *producer.Screen, chatID int64, updatesChan chan tgbotapi.Update, controller *service.Controller) *Expenses {
	return &Expenses{
		screen:      screen,
		chatID:      chatID,
		updatesChan: updatesChan,
		controller:  controller,
	}
}

func (e *Expenses) Consume(ctx context.Context) {
	logrus.Infof("expenses consumer for chat %d started", e.chatID)
	if err := e.render(ctx); err != nil {
		logrus.Errorf("expenses consumer couldn't render: %v", err)
	}

	for {
		select {
		case <-ctx.Done():
			logrus.Infof("expenses consumer for chat %d stopped: %v", e.chatID, ctx.Err())
			return
		case update := <-e.updatesChan:
			if err := e.handle(ctx, update); err != nil {
				logrus.Errorf("expenses consumer for chat %d: %v", e.chatID, err)
			}
		}
	}
}

func (e *Expenses) handle(ctx context.Context, update tgbotapi.Update) error {
	if update.CallbackQuery != nil {
		return e.handleCallback(ctx, update.CallbackQuery)
	}
	if update.Message == nil {
		return nil
	}

	message := update.Message
	if message.IsCommand() {
		switch message.Command() {
		case descriptionCommand:
			return e.changeField(model.FieldDescription, message.CommandArguments())
		case amountCommand:
			return e.changeField(model.FieldAmount, message.CommandArguments())
		case submitCommand:
			return e.submit(ctx)
		case listCommand:
			return e.render(ctx)
		default:
			logrus.Infof("unknown command: %s", message.Text)
			return e.screen.Notify(e.chatID, unknownCommand)
		}
	}

	description, amount, ok := ParseQuickEntry(message.Text)
	if !ok {
		logrus.Debugf("expenses consumer received invalid message: %s", message.Text)
		return e.screen.Notify(e.chatID, quickEntryHint)
	}
	if err := e.controller.OnFieldChange(model.FieldDescription, description); err != nil {
		return err
	}
	if err := e.controller.OnFieldChange(model.FieldAmount, amount); err != nil {
		return err
	}
	return e.submit(ctx)
}

func (e *Expenses) handleCallback(ctx context.Context, callback *tgbotapi.CallbackQuery) error {
	if err := e.screen.Answer(callback.ID); err != nil {
		logrus.Errorf("expenses consumer: %v", err)
	}

	action, id := producer.ParseCallback(callback.Data)
	switch action {
	case producer.CallbackSubmit:
		return e.submit(ctx)
	case producer.CallbackEdit:
		err := e.controller.OnBeginEdit(ctx, id)
		if errors.Is(err, repository.ExpenseNotFoundErr) {
			logrus.Debugf("chat %d tried to edit missing expense %s", e.chatID, id)
			return e.screen.Alert(e.chatID, goneExpenseHint)
		}
		if err != nil {
			return err
		}
		return e.render(ctx)
	case producer.CallbackDelete:
		if err := e.controller.OnDelete(ctx, id); err != nil {
			return err
		}
		return e.render(ctx)
	default:
		logrus.Infof("unknown callback: %s", callback.Data)
		return nil
	}
}

func (e *Expenses) changeField(field model.Field, value string) error {
	if err := e.controller.OnFieldChange(field, value); err != nil {
		return err
	}
	return e.screen.Notify(e.chatID, e.draftsSummary())
}

func (e *Expenses) submit(ctx context.Context) error {
	expense, err := e.controller.OnSubmit(ctx)
	var vErr *service.ValidationError
	switch {
	case errors.As(err, &vErr):
		return e.screen.Alert(e.chatID, vErr.Message)
	case errors.Is(err, repository.ExpenseNotFoundErr):
		if alertErr := e.screen.Alert(e.chatID, goneExpenseHint); alertErr != nil {
			return alertErr
		}
		return e.render(ctx)
	case err != nil:
		// drafts are kept, the user can submit them again
		logrus.Errorf("chat %d couldn't save expense: %v", e.chatID, err)
		if alertErr := e.screen.Alert(e.chatID, saveFailedHint); alertErr != nil {
			return alertErr
		}
		return e.render(ctx)
	}

	logrus.Infof("chat %d saved expense %s: %s: %.2f", e.chatID, expense.ID, expense.Description, expense.Amount)
	return e.render(ctx)
}

func (e *Expenses) render(ctx context.Context) error {
	expenses, err := e.controller.CurrentList(ctx)
	if err != nil {
		return err
	}
	return e.screen.Show(e.chatID, e.controller.CurrentDrafts(), expenses)
}

func (e *Expenses) draftsSummary() string {
	drafts := e.controller.CurrentDrafts()
	return "Description: " + drafts.Description + "\nAmount: " + drafts.Amount
}

// ParseQuickEntry splits "Coffee with milk 3.50" into description and amount.
// The last word is the amount, everything before it is the description.
func ParseQuickEntry(text string) (description, amount string, ok bool) {
	words := strings.Fields(text)
	if len(words) < 2 {
		return "", "", false
	}
	return strings.Join(words[:len(words)-1], " "), words[len(words)-1], true
}
