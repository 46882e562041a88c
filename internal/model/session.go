package model

import "fmt"

type Field string

const (
	FieldDescription Field = "description"
	FieldAmount      Field = "amount"
)

type ModeKind int

const (
	Create ModeKind = iota
	Editing
)

// Mode is the state of an edit session: either creating a new expense
// or editing the expense with ID.
type Mode struct {
	Kind ModeKind
	ID   string
}

func CreateMode() Mode {
	return Mode{Kind: Create}
}

func EditingMode(id string) Mode {
	return Mode{Kind: Editing, ID: id}
}

// EditingID returns the id of the edited expense, ok is false in Create mode
func (m Mode) EditingID() (id string, ok bool) {
	if m.Kind != Editing {
		return "", false
	}
	return m.ID, true
}

func (m Mode) String() string {
	if m.Kind == Editing {
		return fmt.Sprintf("editing(%s)", m.ID)
	}
	return "create"
}

// Drafts is what the input form shows
type Drafts struct {
	Description string
	Amount      string
	Editing     bool
}

// Credentials are entered on the login screen and passed along untouched
type Credentials struct {
	Email    string
	Password string
}
