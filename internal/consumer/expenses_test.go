package consumer

import (
	"context"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"github.com/chucky-1/expenses/internal/model"
	"github.com/chucky-1/expenses/internal/producer"
	"github.com/chucky-1/expenses/internal/repository"
	"github.com/chucky-1/expenses/internal/service"
)

const chatID = int64(7)

func newExpenses(t *testing.T) (*Expenses, *repository.ExpensesLocalStorage, *outbox) {
	return newExpensesWithIDs(t, &sequence{})
}

func newExpensesWithIDs(t *testing.T, ids service.IDGenerator) (*Expenses, *repository.ExpensesLocalStorage, *outbox) {
	sender, out := newSender(t)
	store := repository.NewExpensesLocalStorage()
	controller := service.NewController(store, service.NewValidator(validator.New()), ids)
	e := NewExpenses(producer.NewScreen(sender, "$"), chatID, nil, controller)
	return e, store, out
}

// stuckClock hands out the same id every time
type stuckClock struct{}

func (stuckClock) NewID() string {
	return "2023-06-28T15:15:00.000Z"
}

func TestParseQuickEntry(t *testing.T) {
	testTable := []struct {
		name        string
		text        string
		description string
		amount      string
		ok          bool
	}{
		{name: "Two words", text: "Coffee 3.50", description: "Coffee", amount: "3.50", ok: true},
		{name: "Long description", text: "Coffee with  milk 3,5", description: "Coffee with milk", amount: "3,5", ok: true},
		{name: "Amount only", text: "3.50", ok: false},
		{name: "Empty", text: "   ", ok: false},
	}

	for _, testCase := range testTable {
		t.Run(testCase.name, func(t *testing.T) {
			description, amount, ok := ParseQuickEntry(testCase.text)
			require.Equal(t, testCase.ok, ok)
			require.Equal(t, testCase.description, description)
			require.Equal(t, testCase.amount, amount)
		})
	}
}

func TestExpenses_QuickEntry(t *testing.T) {
	ctx := context.Background()
	e, store, out := newExpenses(t)

	require.NoError(t, e.handle(ctx, message(chatID, "Coffee 3.50")))

	list, err := store.List(ctx)
	require.NoError(t, err)
	require.Equal(t, []model.Expense{{ID: "id-1", Description: "Coffee", Amount: 3.5}}, list)
	require.Equal(t, "1. Coffee - $3.50", out.last())
}

func TestExpenses_QuickEntryNotANumber(t *testing.T) {
	ctx := context.Background()
	e, store, out := newExpenses(t)

	require.NoError(t, e.handle(ctx, message(chatID, "Coffee lots")))

	require.Equal(t, 0, store.Len(ctx))
	require.Equal(t, "Error: Amount must be a number", out.last())
}

func TestExpenses_QuickEntryThousandsSeparator(t *testing.T) {
	ctx := context.Background()
	e, store, out := newExpenses(t)

	require.NoError(t, e.handle(ctx, message(chatID, "Laptop 1,000")))

	require.Equal(t, 0, store.Len(ctx))
	require.True(t, strings.HasPrefix(out.last(), "Error: Write the amount without a thousands separator"), out.last())
	require.Equal(t, model.Drafts{Description: "Laptop", Amount: "1,000"}, e.controller.CurrentDrafts())
}

func TestExpenses_SaveFailureIsReported(t *testing.T) {
	ctx := context.Background()
	e, store, out := newExpensesWithIDs(t, stuckClock{})

	require.NoError(t, e.handle(ctx, message(chatID, "Coffee 3.50")))
	sent := len(out.all())

	require.NoError(t, e.handle(ctx, message(chatID, "Tea 2")))

	texts := out.all()[sent:]
	require.Len(t, texts, 3)
	require.Equal(t, "Error: "+saveFailedHint, texts[0])
	require.Contains(t, texts[1], "Description: Tea\nAmount: 2")
	require.Equal(t, "1. Coffee - $3.50", texts[2])

	require.Equal(t, 1, store.Len(ctx))
	require.Equal(t, model.Drafts{Description: "Tea", Amount: "2"}, e.controller.CurrentDrafts())
}

func TestExpenses_SubmitEmptyDrafts(t *testing.T) {
	ctx := context.Background()
	e, store, out := newExpenses(t)

	require.NoError(t, e.handle(ctx, command(chatID, "/description Coffee")))
	require.NoError(t, e.handle(ctx, command(chatID, "/submit")))

	require.Equal(t, 0, store.Len(ctx))
	require.Equal(t, "Error: Please enter both description and amount", out.last())
	require.Equal(t, model.Drafts{Description: "Coffee"}, e.controller.CurrentDrafts())
}

func TestExpenses_FieldCommands(t *testing.T) {
	ctx := context.Background()
	e, store, out := newExpenses(t)

	require.NoError(t, e.handle(ctx, command(chatID, "/description Lunch at work")))
	require.NoError(t, e.handle(ctx, command(chatID, "/amount 12.40")))
	require.Equal(t, "Description: Lunch at work\nAmount: 12.40", out.last())

	require.NoError(t, e.handle(ctx, callback(chatID, producer.CallbackSubmit)))
	require.Equal(t, 1, store.Len(ctx))
	require.Equal(t, "1. Lunch at work - $12.40", out.last())
}

func TestExpenses_EditDeleteScenario(t *testing.T) {
	ctx := context.Background()
	e, store, out := newExpenses(t)

	require.NoError(t, e.handle(ctx, message(chatID, "Coffee 3.50")))

	require.NoError(t, e.handle(ctx, callback(chatID, producer.CallbackData(producer.CallbackEdit, "id-1"))))
	require.True(t, out.contains("Description: Coffee\nAmount: 3.5"))
	require.Equal(t, model.EditingMode("id-1"), e.controller.Mode())

	require.NoError(t, e.handle(ctx, command(chatID, "/amount 4.00")))
	require.NoError(t, e.handle(ctx, command(chatID, "/submit")))

	list, err := store.List(ctx)
	require.NoError(t, err)
	require.Equal(t, []model.Expense{{ID: "id-1", Description: "Coffee", Amount: 4}}, list)
	require.Equal(t, "1. Coffee - $4.00", out.last())

	require.NoError(t, e.handle(ctx, callback(chatID, producer.CallbackData(producer.CallbackDelete, "id-1"))))
	require.Equal(t, 0, store.Len(ctx))
	require.Equal(t, "No expenses yet. Add some!", out.last())
}

func TestExpenses_EditMissing(t *testing.T) {
	ctx := context.Background()
	e, _, out := newExpenses(t)

	require.NoError(t, e.handle(ctx, callback(chatID, producer.CallbackData(producer.CallbackEdit, "gone"))))
	require.Equal(t, "Error: "+goneExpenseHint, out.last())
	require.Equal(t, model.CreateMode(), e.controller.Mode())
}

func TestExpenses_UnknownCommand(t *testing.T) {
	ctx := context.Background()
	e, _, out := newExpenses(t)

	require.NoError(t, e.handle(ctx, command(chatID, "/report")))
	require.Equal(t, unknownCommand, out.last())
}
