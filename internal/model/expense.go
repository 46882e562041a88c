package model

// Expense is one record of the ledger
type Expense struct {
	ID          string
	Description string
	Amount      float64
}

// Fields is the part of an Expense that an edit replaces
type Fields struct {
	Description string
	Amount      float64
}

func (e Expense) Fields() Fields {
	return Fields{
		Description: e.Description,
		Amount:      e.Amount,
	}
}

// Apply replaces description and amount, the id stays untouched
func (e *Expense) Apply(f Fields) {
	e.Description = f.Description
	e.Amount = f.Amount
}
