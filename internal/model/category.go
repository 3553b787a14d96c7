package model

import (
	"fmt"
	"strings"
)

// Category is the closed set of expense categories.
type Category string

const (
	Rent          Category = "Rent"
	Food          Category = "Food"
	Transport     Category = "Transport"
	Utilities     Category = "Utilities"
	Entertainment Category = "Entertainment"
	Health        Category = "Health"
	Debts         Category = "Debts"
	Other         Category = "Other"
)

// Categories lists every category in presentation order.
var Categories = []Category{Rent, Food, Transport, Utilities, Entertainment, Health, Debts, Other}

// ParseCategory matches s against the category set, ignoring case and
// surrounding whitespace.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	for _, c := range Categories {
		if strings.EqualFold(string(c), s) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: unknown category %q (want one of %s)", ErrValidation, s, categoryList())
}

// Validate reports whether c is one of the known categories.
func (c Category) Validate() error {
	for _, known := range Categories {
		if c == known {
			return nil
		}
	}
	return fmt.Errorf("%w: unknown category %q (want one of %s)", ErrValidation, string(c), categoryList())
}

func (c Category) String() string {
	return string(c)
}

// Index returns the position of c in Categories, or -1.
func (c Category) Index() int {
	for i, known := range Categories {
		if c == known {
			return i
		}
	}
	return -1
}

func categoryList() string {
	names := make([]string, len(Categories))
	for i, c := range Categories {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}
