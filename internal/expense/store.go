package expense

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mithun-t/expense-tracker/internal/log"
	"github.com/mithun-t/expense-tracker/internal/model"
	"github.com/mithun-t/expense-tracker/internal/storage"
)

// DefaultKey is the storage key holding the whole collection.
const DefaultKey = "@expenses"

var (
	ErrNotFound    = errors.New("expense not found")
	ErrDuplicateID = errors.New("duplicate expense id")
	ErrMissingID   = errors.New("expense id is required")
)

// Store owns the ordered expense collection. Every mutation rewrites the full
// collection to the backend; storage failures are logged and the in-memory
// collection stays authoritative.
type Store struct {
	backend  storage.Backend
	key      string
	logger   *log.Logger
	expenses []model.Expense
}

// NewStore creates an empty Store persisting under key. A nil logger discards.
func NewStore(backend storage.Backend, key string, logger *log.Logger) *Store {
	if key == "" {
		key = DefaultKey
	}
	if logger == nil {
		logger = log.Discard()
	}
	return &Store{
		backend: backend,
		key:     key,
		logger:  logger.WithComponent(log.ComponentStore).With(log.FieldKey, key),
	}
}

// Load replaces the collection with the persisted one. If storage is empty,
// unreadable or malformed the collection is left empty and the error is
// logged and returned.
func (s *Store) Load(ctx context.Context) error {
	s.expenses = nil

	data, ok, err := s.backend.GetItem(ctx, s.key)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to load expenses",
			log.FieldOperation, log.OpLoad, log.FieldError, err)
		return fmt.Errorf("loading expenses: %w", err)
	}
	if !ok {
		s.logger.DebugContext(ctx, "no persisted expenses")
		return nil
	}

	expenses, err := Decode(data)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to parse persisted expenses",
			log.FieldOperation, log.OpLoad, log.FieldError, err)
		return fmt.Errorf("loading expenses: %w", err)
	}
	s.expenses = expenses
	s.logger.DebugContext(ctx, "loaded expenses", log.FieldCount, len(expenses))
	return nil
}

// Persist writes the full collection, overwriting whatever was stored.
func (s *Store) Persist(ctx context.Context) error {
	data, err := Encode(s.expenses)
	if err == nil {
		err = s.backend.SetItem(ctx, s.key, data)
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to save expenses",
			log.FieldOperation, log.OpPersist, log.FieldError, err)
		return fmt.Errorf("saving expenses: %w", err)
	}
	s.logger.DebugContext(ctx, "saved expenses", log.FieldCount, len(s.expenses), log.FieldBytes, len(data))
	return nil
}

// Add appends e to the end of the collection.
func (s *Store) Add(ctx context.Context, e model.Expense) error {
	if e.ID == "" {
		return ErrMissingID
	}
	if !e.Category.Valid() {
		return fmt.Errorf("%w: %q", model.ErrUnknownCategory, e.Category)
	}
	if s.Exists(e.ID) {
		return fmt.Errorf("%w: %q", ErrDuplicateID, e.ID)
	}
	s.expenses = append(s.expenses, e)
	s.logger.InfoContext(ctx, "expense added", log.FieldOperation, log.OpCreate, log.FieldExpenseID, e.ID)
	_ = s.Persist(ctx)
	return nil
}

// Update replaces the record with the given id in place. The record keeps id
// regardless of e.ID.
func (s *Store) Update(ctx context.Context, id string, e model.Expense) error {
	i := s.index(id)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	if !e.Category.Valid() {
		return fmt.Errorf("%w: %q", model.ErrUnknownCategory, e.Category)
	}
	e.ID = id
	s.expenses[i] = e
	s.logger.InfoContext(ctx, "expense updated", log.FieldOperation, log.OpUpdate, log.FieldExpenseID, id)
	_ = s.Persist(ctx)
	return nil
}

// Delete removes the record with the given id, keeping the others in order.
func (s *Store) Delete(ctx context.Context, id string) error {
	i := s.index(id)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	s.expenses = append(s.expenses[:i:i], s.expenses[i+1:]...)
	s.logger.InfoContext(ctx, "expense deleted", log.FieldOperation, log.OpDelete, log.FieldExpenseID, id)
	_ = s.Persist(ctx)
	return nil
}

// Total returns the sum of all amounts.
func (s *Store) Total() decimal.Decimal {
	total := decimal.Zero
	for _, e := range s.expenses {
		total = total.Add(e.Amount)
	}
	return total
}

// All returns a copy of the collection in order.
func (s *Store) All() []model.Expense {
	out := make([]model.Expense, len(s.expenses))
	copy(out, s.expenses)
	return out
}

// Get returns the record with the given id.
func (s *Store) Get(id string) (model.Expense, bool) {
	i := s.index(id)
	if i < 0 {
		return model.Expense{}, false
	}
	return s.expenses[i], true
}

// Exists reports whether a record with id is present.
func (s *Store) Exists(id string) bool {
	return s.index(id) >= 0
}

// Len returns the number of records.
func (s *Store) Len() int {
	return len(s.expenses)
}

// Raw returns the persisted text exactly as stored.
func (s *Store) Raw(ctx context.Context) (string, bool, error) {
	data, ok, err := s.backend.GetItem(ctx, s.key)
	if err != nil {
		return "", false, fmt.Errorf("reading raw expenses: %w", err)
	}
	return data, ok, nil
}

func (s *Store) index(id string) int {
	for i, e := range s.expenses {
		if e.ID == id {
			return i
		}
	}
	return -1
}
