package service

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/chucky-1/expenses/internal/model"
)

const (
	emptyFieldsMessage = "Please enter both description and amount"
	notNumberMessage   = "Amount must be a number"
	thousandsMessage   = "Write the amount without a thousands separator, use a comma or a dot only for cents"
)

// "1,000" reads as a thousand to most people but as 1.000 to a decimal comma parser
var thousandsGroup = regexp.MustCompile(`,[0-9]{3}$`)

// ValidationError is returned when drafts can't become an expense.
// It is the only error meant to be shown to the user as is.
type ValidationError struct {
	Field   model.Field
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

type draft struct {
	Description string `validate:"required"`
	Amount      string `validate:"required"`
}

type Validator struct {
	validate *validator.Validate
}

func NewValidator(validate *validator.Validate) *Validator {
	return &Validator{
		validate: validate,
	}
}

// Validate checks raw form values. Description only has to be non-empty,
// amount has to be a decimal number, "3,50" is read as "3.50".
// A blank amount is non-empty, so it fails as not a number.
func (v *Validator) Validate(description, amount string) error {
	err := v.validate.Struct(draft{
		Description: description,
		Amount:      amount,
	})
	if err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return fmt.Errorf("service.Validator.Validate: %v", err)
		}
		return &ValidationError{Field: fieldOf(fieldErrs[0].StructField()), Message: emptyFieldsMessage}
	}

	if thousandsGroup.MatchString(strings.TrimSpace(amount)) {
		return &ValidationError{Field: model.FieldAmount, Message: thousandsMessage}
	}
	if err = v.validate.Var(normalizeAmount(amount), "required,numeric"); err != nil {
		return &ValidationError{Field: model.FieldAmount, Message: notNumberMessage}
	}
	return nil
}

// Parse validates drafts and converts them to expense fields
func (v *Validator) Parse(description, amount string) (model.Fields, error) {
	if err := v.Validate(description, amount); err != nil {
		return model.Fields{}, err
	}
	sum, err := strconv.ParseFloat(normalizeAmount(amount), 64)
	if err != nil {
		return model.Fields{}, &ValidationError{Field: model.FieldAmount, Message: notNumberMessage}
	}
	return model.Fields{
		Description: description,
		Amount:      sum,
	}, nil
}

func normalizeAmount(amount string) string {
	return strings.ReplaceAll(strings.TrimSpace(amount), ",", ".")
}

func fieldOf(structField string) model.Field {
	if structField == "Amount" {
		return model.FieldAmount
	}
	return model.FieldDescription
}
