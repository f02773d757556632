package value_objects

import (
	"errors"
	"strings"
)

// Category groups tasks by area of life.
type Category string

const (
	CategoryNone      Category = ""
	CategoryWork      Category = "Work"
	CategoryPersonal  Category = "Personal"
	CategoryMinistry  Category = "Ministry"
	CategoryHealth    Category = "Health"
	CategoryLearning  Category = "Learning"
	CategoryFinance   Category = "Finance"
	CategoryHousehold Category = "Household"
)

var ErrInvalidCategory = errors.New("invalid category")

var categories = [...]Category{
	CategoryWork,
	CategoryPersonal,
	CategoryMinistry,
	CategoryHealth,
	CategoryLearning,
	CategoryFinance,
	CategoryHousehold,
}

// AllCategories returns a copy of the fixed category table.
func AllCategories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories[:])
	return out
}

// ParseCategory matches case-insensitively. Empty input yields CategoryNone.
func ParseCategory(s string) (Category, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return CategoryNone, nil
	}
	for _, c := range categories {
		if strings.EqualFold(trimmed, string(c)) {
			return c, nil
		}
	}
	return CategoryNone, ErrInvalidCategory
}

func (c Category) String() string {
	return string(c)
}

func (c Category) IsValid() bool {
	if c == CategoryNone {
		return true
	}
	for _, known := range categories {
		if c == known {
			return true
		}
	}
	return false
}
