package theme

import (
	"testing"

	"github.com/theirongolddev/budgetbuddy/internal/model"
)

func TestByNameFallsBackToDefault(t *testing.T) {
	if got := ByName("tokyo-night").Name; got != "tokyo-night" {
		t.Errorf("ByName(tokyo-night) = %q", got)
	}
	if got := ByName("no-such-theme").Name; got != FlexokiDark.Name {
		t.Errorf("unknown theme = %q, want %q", got, FlexokiDark.Name)
	}
}

func TestSetActive(t *testing.T) {
	t.Cleanup(func() { SetActive(FlexokiDark.Name) })
	SetActive("terminal")
	if Active.Name != "terminal" {
		t.Fatalf("Active = %q", Active.Name)
	}
}

func TestNamesMatchAll(t *testing.T) {
	names := Names()
	if len(names) != len(All) {
		t.Fatalf("Names() = %d entries, want %d", len(names), len(All))
	}
	for i, n := range names {
		if All[i].Name != n {
			t.Errorf("Names()[%d] = %q, want %q", i, n, All[i].Name)
		}
	}
}

func TestCategoryColorsAreDistinct(t *testing.T) {
	for _, th := range All {
		seen := make(map[string]model.Category)
		for _, c := range model.Categories {
			col := string(th.CategoryColor(c))
			if col == "" {
				t.Errorf("%s: %s has no color", th.Name, c)
			}
			if prev, dup := seen[col]; dup {
				t.Errorf("%s: %s and %s share color %s", th.Name, prev, c, col)
			}
			seen[col] = c
		}
	}
}

func TestAmountColor(t *testing.T) {
	th := FlexokiDark
	if th.AmountColor(true) != th.Expense || th.AmountColor(false) != th.Income {
		t.Error("AmountColor should map negative to Expense and others to Income")
	}
}
