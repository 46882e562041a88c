package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/chucky-1/expenses/internal/model"
	"github.com/chucky-1/expenses/internal/repository"
)

var UnknownFieldErr = errors.New("unknown form field")

// Controller drives one expense screen. It owns the edit session (mode and drafts)
// and is the only writer of its store. Not safe for concurrent use.
type Controller struct {
	store     repository.Expenses
	validator *Validator
	ids       IDGenerator

	mode        model.Mode
	description string
	amount      string
}

func NewController(store repository.Expenses, validator *Validator, ids IDGenerator) *Controller {
	return &Controller{
		store:     store,
		validator: validator,
		ids:       ids,
		mode:      model.CreateMode(),
	}
}

func (c *Controller) OnFieldChange(field model.Field, value string) error {
	switch field {
	case model.FieldDescription:
		c.description = value
	case model.FieldAmount:
		c.amount = value
	default:
		return fmt.Errorf("service.Controller.OnFieldChange %q: %w", field, UnknownFieldErr)
	}
	return nil
}

// OnSubmit adds a new expense in Create mode or saves the edited one.
// On a *ValidationError nothing changes.
func (c *Controller) OnSubmit(ctx context.Context) (model.Expense, error) {
	fields, err := c.validator.Parse(c.description, c.amount)
	if err != nil {
		logrus.Debugf("submit rejected in %s mode: %v", c.mode, err)
		return model.Expense{}, err
	}

	id, editing := c.mode.EditingID()
	if !editing {
		expense := model.Expense{ID: c.ids.NewID()}
		expense.Apply(fields)
		if err = c.store.Insert(ctx, expense); err != nil {
			return model.Expense{}, fmt.Errorf("service.Controller.OnSubmit: %w", err)
		}
		c.clearDrafts()
		logrus.Debugf("expense %s added: %s %.2f", expense.ID, expense.Description, expense.Amount)
		return expense, nil
	}

	if err = c.store.Update(ctx, id, fields); err != nil {
		if errors.Is(err, repository.ExpenseNotFoundErr) {
			// the expense is gone, keep what the user typed so it can be added again
			c.mode = model.CreateMode()
		}
		return model.Expense{}, fmt.Errorf("service.Controller.OnSubmit: %w", err)
	}
	c.mode = model.CreateMode()
	c.clearDrafts()

	expense := model.Expense{ID: id}
	expense.Apply(fields)
	logrus.Debugf("expense %s updated: %s %.2f", expense.ID, expense.Description, expense.Amount)
	return expense, nil
}

// OnBeginEdit switches to editing the expense with id and loads it into the drafts.
// If the expense doesn't exist the session stays as it was.
func (c *Controller) OnBeginEdit(ctx context.Context, id string) error {
	expense, err := c.store.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("service.Controller.OnBeginEdit: %w", err)
	}
	c.mode = model.EditingMode(id)
	c.description = expense.Description
	c.amount = strconv.FormatFloat(expense.Amount, 'f', -1, 64)
	return nil
}

// OnDelete removes the expense with id. Deleting the expense that is being edited
// resets the session to Create.
func (c *Controller) OnDelete(ctx context.Context, id string) error {
	removed, err := c.store.Remove(ctx, id)
	if err != nil {
		return fmt.Errorf("service.Controller.OnDelete: %w", err)
	}
	if !removed {
		logrus.Debugf("delete of unknown expense %s ignored", id)
	}
	if editID, editing := c.mode.EditingID(); editing && editID == id {
		c.mode = model.CreateMode()
		c.clearDrafts()
	}
	return nil
}

func (c *Controller) CurrentList(ctx context.Context) ([]model.Expense, error) {
	return c.store.List(ctx)
}

func (c *Controller) CurrentDrafts() model.Drafts {
	return model.Drafts{
		Description: c.description,
		Amount:      c.amount,
		Editing:     c.mode.Kind == model.Editing,
	}
}

func (c *Controller) Mode() model.Mode {
	return c.mode
}

func (c *Controller) clearDrafts() {
	c.description = ""
	c.amount = ""
}
