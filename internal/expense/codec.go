package expense

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mithun-t/expense-tracker/internal/id"
	"github.com/mithun-t/expense-tracker/internal/model"
)

// DateFormat is the persisted date layout: ISO-8601 in UTC with milliseconds,
// e.g. "2025-01-03T10:00:00.000Z".
const DateFormat = "2006-01-02T15:04:05.000Z07:00"

// ErrAmountNotNumber is returned when a persisted amount is not a JSON number.
var ErrAmountNotNumber = errors.New("amount must be a JSON number")

// record is the persisted shape of one expense. Amount is kept raw so a
// quoted amount can be told apart from a number.
type record struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Amount      json.RawMessage `json:"amount"`
	Category    string          `json:"category"`
	Date        string          `json:"date"`
}

// Encode serializes the collection as a JSON array in collection order.
func Encode(expenses []model.Expense) (string, error) {
	records := make([]record, 0, len(expenses))
	for _, e := range expenses {
		records = append(records, record{
			ID:          e.ID,
			Description: e.Description,
			Amount:      json.RawMessage(e.Amount.String()),
			Category:    string(e.Category),
			Date:        FormatDate(e.Date),
		})
	}
	data, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("encoding expenses: %w", err)
	}
	return string(data), nil
}

// Decode parses a persisted collection. Any malformed record fails the whole
// decode; there is no partial recovery.
func Decode(data string) ([]model.Expense, error) {
	var records []record
	if err := json.Unmarshal([]byte(data), &records); err != nil {
		return nil, fmt.Errorf("decoding expenses: %w", err)
	}

	seen := make(map[string]bool, len(records))
	expenses := make([]model.Expense, 0, len(records))
	for i, r := range records {
		e, err := r.expense()
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		if seen[e.ID] {
			return nil, fmt.Errorf("record %d: %w: %q", i, ErrDuplicateID, e.ID)
		}
		seen[e.ID] = true
		expenses = append(expenses, e)
	}
	return expenses, nil
}

func (r record) expense() (model.Expense, error) {
	if r.ID == "" {
		return model.Expense{}, ErrMissingID
	}
	if _, err := id.Parse(r.ID); err != nil {
		return model.Expense{}, err
	}
	raw := bytes.TrimSpace(r.Amount)
	if len(raw) == 0 || raw[0] == '"' || bytes.Equal(raw, []byte("null")) {
		return model.Expense{}, fmt.Errorf("%w, got %s", ErrAmountNotNumber, orMissing(raw))
	}
	amount, err := model.ParseAmount(string(raw))
	if err != nil {
		return model.Expense{}, err
	}
	category, err := model.ParseCategory(r.Category)
	if err != nil {
		return model.Expense{}, err
	}
	date, err := ParseDate(r.Date)
	if err != nil {
		return model.Expense{}, err
	}
	return model.Expense{
		ID:          r.ID,
		Description: r.Description,
		Amount:      amount,
		Category:    category,
		Date:        date,
	}, nil
}

func orMissing(raw []byte) string {
	if len(raw) == 0 {
		return "nothing"
	}
	return string(raw)
}

// FormatDate renders t in DateFormat.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateFormat)
}

// ParseDate accepts any RFC 3339 timestamp, with or without fractional seconds.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date %q: %w", s, err)
	}
	return t, nil
}
