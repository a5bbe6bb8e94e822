package model

import (
	"errors"
	"fmt"
	"strings"
)

// Category classifies an expense. Only the values in Categories are valid.
type Category string

const (
	CategoryFood          Category = "Food"
	CategoryTransport     Category = "Transport"
	CategoryEntertainment Category = "Entertainment"
	CategoryBills         Category = "Bills"
	CategoryOther         Category = "Other"
)

// ErrUnknownCategory is returned by ParseCategory for values outside the fixed set.
var ErrUnknownCategory = errors.New("unknown category")

// Categories returns the fixed category set in display order.
func Categories() []Category {
	return []Category{
		CategoryFood,
		CategoryTransport,
		CategoryEntertainment,
		CategoryBills,
		CategoryOther,
	}
}

// ParseCategory matches s against the category set, ignoring case and
// surrounding whitespace.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	for _, c := range Categories() {
		if strings.EqualFold(s, string(c)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// Valid reports whether c is exactly one of the fixed categories.
func (c Category) Valid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}
