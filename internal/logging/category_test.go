package logging

import (
	"slices"
	"testing"

	"github.com/Iron-Ham/groundcrew/internal/errors"
)

func TestCategory_SetOperations(t *testing.T) {
	set := CategoryBoarding | CategoryDoors

	if !set.Has(CategoryBoarding) {
		t.Error("Has(boarding) = false")
	}
	if set.Has(CategoryBoarding | CategoryCargo) {
		t.Error("Has should require every category")
	}
	if set.Has(CategoryNone) {
		t.Error("Has(none) should be false")
	}
	if !set.Intersects(CategoryDoors | CategoryCargo) {
		t.Error("Intersects should succeed on a shared category")
	}
	if set.Intersects(CategoryCargo) {
		t.Error("Intersects should fail without a shared category")
	}
	if got := set.Union(CategoryCargo); got != CategoryBoarding|CategoryDoors|CategoryCargo {
		t.Errorf("Union() = %v", got)
	}
	if got := set.Without(CategoryDoors); got != CategoryBoarding {
		t.Errorf("Without() = %v", got)
	}
	if got := set.Len(); got != 2 {
		t.Errorf("Len() = %d, want 2", got)
	}
}

func TestCategory_UnionMasksUndefinedBits(t *testing.T) {
	got := CategoryNone.Union(Category(1 << 31))
	if got != CategoryNone {
		t.Errorf("Union kept an undefined bit: %b", got)
	}
}

func TestCategory_String(t *testing.T) {
	tests := []struct {
		cat  Category
		want string
	}{
		{CategoryNone, "none"},
		{CategoryAll, "all"},
		{CategoryRefueling, "refueling"},
		{CategorySimConnect | CategoryRefueling, "simconnect|refueling"},
		{CategoryDoors | CategoryBoarding, "boarding|doors"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.cat.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCategoryAll_ContainsEveryCategory(t *testing.T) {
	names := CategoryNames()
	if len(names) != CategoryAll.Len() {
		t.Fatalf("CategoryNames() has %d entries, CategoryAll has %d bits", len(names), CategoryAll.Len())
	}
	for _, name := range names {
		cat, err := ParseCategory(name)
		if err != nil {
			t.Fatalf("ParseCategory(%q) error: %v", name, err)
		}
		if !CategoryAll.Has(cat) {
			t.Errorf("CategoryAll is missing %s", name)
		}
	}
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		name    string
		want    Category
		wantErr bool
	}{
		{"refueling", CategoryRefueling, false},
		{"SimConnect", CategorySimConnect, false},
		{" doors ", CategoryDoors, false},
		{"all", CategoryAll, false},
		{"pax", CategoryNone, true},
		{"", CategoryNone, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCategory(tt.name)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseCategory(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, errors.ErrUnknownCategory) {
				t.Errorf("error should wrap ErrUnknownCategory, got %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseCategory(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestParseCategories(t *testing.T) {
	got, err := ParseCategories([]string{"boarding", "doors", "boarding"})
	if err != nil {
		t.Fatalf("ParseCategories error: %v", err)
	}
	if got != CategoryBoarding|CategoryDoors {
		t.Errorf("ParseCategories() = %v", got)
	}

	if _, err := ParseCategories([]string{"doors", "nope"}); !errors.IsInvalidArgument(err) {
		t.Errorf("expected invalid argument error, got %v", err)
	}

	empty, err := ParseCategories(nil)
	if err != nil || empty != CategoryNone {
		t.Errorf("ParseCategories(nil) = %v, %v", empty, err)
	}
}

func TestLevel_Ordering(t *testing.T) {
	ordered := []Level{LevelDebug, LevelInfo, LevelWarning, LevelError, LevelCritical}
	if !slices.IsSorted(ordered) {
		t.Error("levels are not in ascending order")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{"warn", LevelWarning, false},
		{"Warning", LevelWarning, false},
		{"error", LevelError, false},
		{"critical", LevelCritical, false},
		{"verbose", LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, errors.ErrUnknownLevel) {
				t.Errorf("error should wrap ErrUnknownLevel, got %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidLevels(t *testing.T) {
	for _, name := range ValidLevels() {
		if _, err := ParseLevel(name); err != nil {
			t.Errorf("ValidLevels() entry %q does not parse: %v", name, err)
		}
	}
}

func TestLevel_String(t *testing.T) {
	if LevelWarning.String() != "WARN" {
		t.Errorf("LevelWarning.String() = %q", LevelWarning.String())
	}
	if Level(42).String() != "UNKNOWN" {
		t.Errorf("Level(42).String() = %q", Level(42).String())
	}
}
