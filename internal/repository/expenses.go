package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/chucky-1/expenses/internal/model"
)

var (
	ExpenseNotFoundErr  = errors.New("expense not found")
	DuplicateExpenseErr = errors.New("expense with this id already exists")
)

type Expenses interface {
	Insert(ctx context.Context, expense model.Expense) error
	Update(ctx context.Context, id string, fields model.Fields) error
	Remove(ctx context.Context, id string) (bool, error)
	Get(ctx context.Context, id string) (model.Expense, error)
	List(ctx context.Context) ([]model.Expense, error)
	Len(ctx context.Context) int
}

// ExpensesLocalStorage keeps expenses of one chat in insertion order.
// It is not safe for concurrent use, every chat consumer owns its own storage.
type ExpensesLocalStorage struct {
	items []model.Expense
}

func NewExpensesLocalStorage() *ExpensesLocalStorage {
	return &ExpensesLocalStorage{}
}

func (l *ExpensesLocalStorage) Insert(_ context.Context, expense model.Expense) error {
	if l.indexOf(expense.ID) >= 0 {
		return fmt.Errorf("repository.ExpensesLocalStorage.Insert id %q: %w", expense.ID, DuplicateExpenseErr)
	}
	l.items = append(l.items, expense)
	return nil
}

func (l *ExpensesLocalStorage) Update(_ context.Context, id string, fields model.Fields) error {
	i := l.indexOf(id)
	if i < 0 {
		return fmt.Errorf("repository.ExpensesLocalStorage.Update id %q: %w", id, ExpenseNotFoundErr)
	}
	l.items[i].Apply(fields)
	return nil
}

// Remove deletes the expense with id. Removing an absent id is not an error, ok reports whether anything was removed.
func (l *ExpensesLocalStorage) Remove(_ context.Context, id string) (bool, error) {
	i := l.indexOf(id)
	if i < 0 {
		return false, nil
	}
	l.items = append(l.items[:i], l.items[i+1:]...)
	return true, nil
}

func (l *ExpensesLocalStorage) Get(_ context.Context, id string) (model.Expense, error) {
	i := l.indexOf(id)
	if i < 0 {
		return model.Expense{}, fmt.Errorf("repository.ExpensesLocalStorage.Get id %q: %w", id, ExpenseNotFoundErr)
	}
	return l.items[i], nil
}

// List returns a copy, changing it doesn't touch the storage
func (l *ExpensesLocalStorage) List(_ context.Context) ([]model.Expense, error) {
	out := make([]model.Expense, len(l.items))
	copy(out, l.items)
	return out, nil
}

func (l *ExpensesLocalStorage) Len(_ context.Context) int {
	return len(l.items)
}

func (l *ExpensesLocalStorage) indexOf(id string) int {
	for i := range l.items {
		if l.items[i].ID == id {
			return i
		}
	}
	return -1
}
