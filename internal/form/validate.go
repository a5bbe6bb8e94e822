package form

import (
	"fmt"
	"strings"
)

// Draft field names used in validation problems.
const (
	FieldDescription = "description"
	FieldAmount      = "amount"
	FieldCategory    = "category"
)

// Problem is a single invalid draft field.
type Problem struct {
	Field   string
	Message string
}

func (p Problem) String() string {
	return p.Field + " " + p.Message
}

// ValidationError lists every problem found in a draft.
type ValidationError struct {
	Problems []Problem
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		msgs[i] = p.String()
	}
	return fmt.Sprintf("invalid expense: %s", strings.Join(msgs, "; "))
}

// Has reports whether field has a problem.
func (e *ValidationError) Has(field string) bool {
	for _, p := range e.Problems {
		if p.Field == field {
			return true
		}
	}
	return false
}

func (e *ValidationError) add(field, msg string) {
	e.Problems = append(e.Problems, Problem{Field: field, Message: msg})
}
