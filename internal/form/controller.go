// Package form holds the transient input state for creating and editing
// expenses and turns a valid draft into a store mutation.
package form

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mithun-t/expense-tracker/internal/expense"
	"github.com/mithun-t/expense-tracker/internal/id"
	"github.com/mithun-t/expense-tracker/internal/model"
)

// State is the controller's mode.
type State int

const (
	Creating State = iota
	Editing
)

func (s State) String() string {
	if s == Editing {
		return "editing"
	}
	return "creating"
}

// Draft is the uncommitted input. Amount is kept as the user typed it.
type Draft struct {
	Description string
	Amount      string
	Category    string
	Date        time.Time
}

// Controller owns a Draft and an optional reference to the record being edited.
type Controller struct {
	store     *expense.Store
	now       func() time.Time
	draft     Draft
	editingID string
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock sets the time source used for new ids and default dates.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// NewController creates a controller in the Creating state with an empty draft.
func NewController(store *expense.Store, opts ...Option) *Controller {
	c := &Controller{store: store, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	c.reset()
	return c
}

func (c *Controller) SetDescription(s string) { c.draft.Description = s }
func (c *Controller) SetAmount(s string)      { c.draft.Amount = s }
func (c *Controller) SetCategory(s string)    { c.draft.Category = s }
func (c *Controller) SetDate(t time.Time)     { c.draft.Date = t }

// Draft returns a copy of the current draft.
func (c *Controller) Draft() Draft { return c.draft }

// EditingID returns the id being edited, or "" when creating.
func (c *Controller) EditingID() string { return c.editingID }

// State reports whether the controller is creating or editing.
func (c *Controller) State() State {
	if c.editingID != "" {
		return Editing
	}
	return Creating
}

// Submit validates the draft and adds or updates the record. On a validation
// error nothing changes: the store, the draft and the editing id are kept.
func (c *Controller) Submit(ctx context.Context) (model.Expense, error) {
	e, err := c.build()
	if err != nil {
		return model.Expense{}, err
	}

	if c.editingID != "" {
		e.ID = c.editingID
		if err := c.store.Update(ctx, c.editingID, e); err != nil {
			return model.Expense{}, fmt.Errorf("updating expense: %w", err)
		}
	} else {
		e.ID = id.Next(c.now(), c.store.Exists)
		if err := c.store.Add(ctx, e); err != nil {
			return model.Expense{}, fmt.Errorf("adding expense: %w", err)
		}
	}

	c.editingID = ""
	c.reset()
	return e, nil
}

// BeginEdit copies the record into the draft and switches to Editing.
func (c *Controller) BeginEdit(expenseID string) error {
	e, ok := c.store.Get(expenseID)
	if !ok {
		return fmt.Errorf("%w: %q", expense.ErrNotFound, expenseID)
	}
	c.draft = Draft{
		Description: e.Description,
		Amount:      e.Amount.String(),
		Category:    string(e.Category),
		Date:        e.Date,
	}
	c.editingID = expenseID
	return nil
}

// CancelEdit drops the draft and returns to Creating without touching the store.
func (c *Controller) CancelEdit() {
	c.editingID = ""
	c.reset()
}

// Delete removes a record. Deleting the record being edited cancels the edit.
func (c *Controller) Delete(ctx context.Context, expenseID string) error {
	if err := c.store.Delete(ctx, expenseID); err != nil {
		return fmt.Errorf("deleting expense: %w", err)
	}
	if c.editingID == expenseID {
		c.CancelEdit()
	}
	return nil
}

func (c *Controller) reset() {
	c.draft = Draft{Date: c.now()}
}

// build converts the draft into a record (without id), collecting every
// field problem.
func (c *Controller) build() (model.Expense, error) {
	var verr ValidationError

	description := strings.TrimSpace(c.draft.Description)
	if description == "" {
		verr.add(FieldDescription, "is required")
	}

	var amount decimal.Decimal
	amountText := strings.TrimSpace(c.draft.Amount)
	if amountText == "" {
		verr.add(FieldAmount, "is required")
	} else {
		a, err := ParseAmount(amountText)
		if err != nil {
			verr.add(FieldAmount, fmt.Sprintf("%q is not a number", c.draft.Amount))
		}
		amount = a
	}

	var category model.Category
	if strings.TrimSpace(c.draft.Category) == "" {
		verr.add(FieldCategory, "is required")
	} else {
		cat, err := model.ParseCategory(c.draft.Category)
		if err != nil {
			verr.add(FieldCategory, fmt.Sprintf("%q is not one of %s", c.draft.Category, categoryList()))
		}
		category = cat
	}

	date := c.draft.Date
	if date.IsZero() {
		date = c.now()
	}

	if len(verr.Problems) > 0 {
		return model.Expense{}, &verr
	}
	return model.Expense{
		Description: description,
		Amount:      amount,
		Category:    category,
		Date:        date,
	}, nil
}

// ParseAmount parses user-typed amount text. A decimal comma is accepted
// ("4,50" == "4.50"); see model.ParseAmount for the range limits.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	return model.ParseAmount(s)
}

func categoryList() string {
	cats := model.Categories()
	names := make([]string, len(cats))
	for i, c := range cats {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}
