package logging

import (
	"math/bits"
	"strings"

	"github.com/Iron-Ham/groundcrew/internal/errors"
)

// Category is a set of log categories stored as bit flags. A single flag
// names one category; any combination of flags is a valid set.
type Category uint32

// Log categories. The order of declaration is the order used by Names.
const (
	CategorySimConnect Category = 1 << iota
	CategoryProsim
	CategoryEvents
	CategoryFlightPhase
	CategoryRefueling
	CategoryBoarding
	CategoryCatering
	CategoryDoors
	CategoryCargo
	CategoryPushback
	CategoryDeice
	CategoryConfiguration

	// categoryEnd marks the first unused bit.
	categoryEnd
)

const (
	// CategoryNone is the empty set.
	CategoryNone Category = 0
	// CategoryAll contains every defined category.
	CategoryAll = categoryEnd - 1
)

var categoryNames = []struct {
	cat  Category
	name string
}{
	{CategorySimConnect, "simconnect"},
	{CategoryProsim, "prosim"},
	{CategoryEvents, "events"},
	{CategoryFlightPhase, "flightphase"},
	{CategoryRefueling, "refueling"},
	{CategoryBoarding, "boarding"},
	{CategoryCatering, "catering"},
	{CategoryDoors, "doors"},
	{CategoryCargo, "cargo"},
	{CategoryPushback, "pushback"},
	{CategoryDeice, "deice"},
	{CategoryConfiguration, "configuration"},
}

// Has reports whether every category in other is also in c.
// The empty set is never reported as present.
func (c Category) Has(other Category) bool {
	return other != CategoryNone && c&other == other
}

// Intersects reports whether c and other share at least one category.
func (c Category) Intersects(other Category) bool {
	return c&other != 0
}

// Union returns the categories present in c or other.
func (c Category) Union(other Category) Category {
	return (c | other) & CategoryAll
}

// Without returns the categories of c that are not in other.
func (c Category) Without(other Category) Category {
	return c &^ other
}

// Len returns the number of categories in the set.
func (c Category) Len() int {
	return bits.OnesCount32(uint32(c & CategoryAll))
}

// Names returns the lower-case names of the categories in the set.
func (c Category) Names() []string {
	names := make([]string, 0, c.Len())
	for _, entry := range categoryNames {
		if c&entry.cat != 0 {
			names = append(names, entry.name)
		}
	}
	return names
}

// String renders the set as "a|b|c", "all" or "none".
func (c Category) String() string {
	switch c & CategoryAll {
	case CategoryNone:
		return "none"
	case CategoryAll:
		return "all"
	}
	return strings.Join(c.Names(), "|")
}

// Categories folds a list of sets into one.
func Categories(cats ...Category) Category {
	var set Category
	for _, cat := range cats {
		set = set.Union(cat)
	}
	return set
}

// ParseCategory converts a category name to its flag. "all" yields
// CategoryAll. Matching is case-insensitive.
func ParseCategory(name string) (Category, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	if normalized == "all" {
		return CategoryAll, nil
	}
	for _, entry := range categoryNames {
		if entry.name == normalized {
			return entry.cat, nil
		}
	}
	return CategoryNone, errors.NewInvalidArgumentError("unrecognized log category").
		WithField("category").
		WithValue(name).
		WithCause(errors.ErrUnknownCategory)
}

// ParseCategories converts a list of names into a set. The first unknown
// name aborts parsing.
func ParseCategories(names []string) (Category, error) {
	var set Category
	for _, name := range names {
		cat, err := ParseCategory(name)
		if err != nil {
			return CategoryNone, err
		}
		set = set.Union(cat)
	}
	return set, nil
}

// CategoryNames returns every defined category name in declaration order.
func CategoryNames() []string {
	return CategoryAll.Names()
}
