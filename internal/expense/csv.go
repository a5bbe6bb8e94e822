package expense

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/mithun-t/expense-tracker/internal/id"
	"github.com/mithun-t/expense-tracker/internal/model"
)

// Header is the CSV header used by export and import.
const Header = "id,description,amount,category,date"

const (
	numFields   = 5
	colID       = 0
	colDesc     = 1
	colAmount   = 2
	colCategory = 3
	colDate     = 4
)

// ReadCSV reads expenses from an exported CSV (header row required).
func ReadCSV(r io.Reader) ([]model.Expense, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading expenses CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var expenses []model.Expense
	for i, rec := range records[1:] {
		e, err := UnmarshalRow(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		expenses = append(expenses, e)
	}
	return expenses, nil
}

// WriteCSV writes expenses with a header row.
func WriteCSV(w io.Writer, expenses []model.Expense) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, e := range expenses {
		if err := cw.Write(MarshalRow(e)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalRow converts an Expense to a CSV row.
func MarshalRow(e model.Expense) []string {
	row := make([]string, numFields)
	row[colID] = e.ID
	row[colDesc] = e.Description
	row[colAmount] = e.Amount.String()
	row[colCategory] = string(e.Category)
	row[colDate] = FormatDate(e.Date)
	return row
}

// UnmarshalRow converts a CSV row to an Expense.
func UnmarshalRow(rec []string) (model.Expense, error) {
	if len(rec) != numFields {
		return model.Expense{}, fmt.Errorf("expected %d fields, got %d", numFields, len(rec))
	}
	if rec[colID] == "" {
		return model.Expense{}, ErrMissingID
	}
	if _, err := id.Parse(rec[colID]); err != nil {
		return model.Expense{}, err
	}

	amount, err := model.ParseAmount(rec[colAmount])
	if err != nil {
		return model.Expense{}, err
	}

	category, err := model.ParseCategory(rec[colCategory])
	if err != nil {
		return model.Expense{}, err
	}

	date, err := ParseDate(rec[colDate])
	if err != nil {
		return model.Expense{}, err
	}

	return model.Expense{
		ID:          rec[colID],
		Description: rec[colDesc],
		Amount:      amount,
		Category:    category,
		Date:        date,
	}, nil
}
