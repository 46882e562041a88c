package producer

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/shopspring/decimal"

	"github.com/chucky-1/expenses/internal/model"
)

const (
	CallbackSubmit = "submit"
	CallbackEdit   = "edit"
	CallbackDelete = "delete"
)

const (
	title        = "Expense Tracker"
	addLabel     = "Add Expense"
	updateLabel  = "Update Expense"
	emptyMessage = "No expenses yet. Add some!"
	emptyDraft   = "(empty)"
)

//go:generate mockery --name=Sender

// Sender is the part of *tgbotapi.BotAPI the screens need
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Screen renders the expense form and list into a chat
type Screen struct {
	bot      Sender
	currency string
}

func NewScreen(bot Sender, currency string) *Screen {
	return &Screen{
		bot:      bot,
		currency: currency,
	}
}

// Show sends the form followed by the list
func (s *Screen) Show(chatID int64, drafts model.Drafts, expenses []model.Expense) error {
	if _, err := s.bot.Send(s.Form(chatID, drafts)); err != nil {
		return fmt.Errorf("producer.Screen.Show, telegram bot couldn't send form: %v", err)
	}
	if _, err := s.bot.Send(s.List(chatID, expenses)); err != nil {
		return fmt.Errorf("producer.Screen.Show, telegram bot couldn't send list: %v", err)
	}
	return nil
}

func (s *Screen) Form(chatID int64, drafts model.Drafts) tgbotapi.MessageConfig {
	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Description: %s\n", orPlaceholder(drafts.Description))
	fmt.Fprintf(&b, "Amount: %s\n\n", orPlaceholder(drafts.Amount))
	b.WriteString("Set fields with /description <text> and /amount <number>, or send \"Coffee 3.50\".")

	label := addLabel
	if drafts.Editing {
		label = updateLabel
	}

	msg := tgbotapi.NewMessage(chatID, b.String())
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, CallbackSubmit),
		),
	)
	return msg
}

func (s *Screen) List(chatID int64, expenses []model.Expense) tgbotapi.MessageConfig {
	if len(expenses) == 0 {
		return tgbotapi.NewMessage(chatID, emptyMessage)
	}

	lines := make([]string, 0, len(expenses))
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(expenses))
	for i, e := range expenses {
		lines = append(lines, fmt.Sprintf("%d. %s - %s", i+1, e.Description, FormatAmount(e.Amount, s.currency)))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("Edit #%d", i+1), CallbackData(CallbackEdit, e.ID)),
			tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("Delete #%d", i+1), CallbackData(CallbackDelete, e.ID)),
		))
	}

	msg := tgbotapi.NewMessage(chatID, strings.Join(lines, "\n"))
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	return msg
}

// Alert is the blocking error notification of the form
func (s *Screen) Alert(chatID int64, text string) error {
	_, err := s.bot.Send(tgbotapi.NewMessage(chatID, "Error: "+text))
	if err != nil {
		return fmt.Errorf("producer.Screen.Alert, telegram bot couldn't send message: %v", err)
	}
	return nil
}

func (s *Screen) Notify(chatID int64, text string) error {
	_, err := s.bot.Send(tgbotapi.NewMessage(chatID, text))
	if err != nil {
		return fmt.Errorf("producer.Screen.Notify, telegram bot couldn't send message: %v", err)
	}
	return nil
}

// Answer stops the loading indicator on a pressed inline button
func (s *Screen) Answer(callbackID string) error {
	_, err := s.bot.Request(tgbotapi.NewCallback(callbackID, ""))
	if err != nil {
		return fmt.Errorf("producer.Screen.Answer, telegram bot couldn't answer callback: %v", err)
	}
	return nil
}

// FormatAmount renders an amount with two decimals: 3.5 -> $3.50
func FormatAmount(amount float64, currency string) string {
	return currency + decimal.NewFromFloat(amount).StringFixed(2)
}

func CallbackData(action, id string) string {
	return action + ":" + id
}

// ParseCallback splits "delete:<id>" into action and id. "submit" has no id.
func ParseCallback(data string) (action, id string) {
	action, id, _ = strings.Cut(data, ":")
	return action, id
}

func orPlaceholder(s string) string {
	if s == "" {
		return emptyDraft
	}
	return s
}
