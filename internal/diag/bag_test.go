package diag

import (
	"testing"

	"lattice/internal/source"
)

func TestBagCap(t *testing.T) {
	bag := NewBag(2)
	for i := 0; i < 3; i++ {
		bag.Add(Diagnostic{Severity: SevError, Code: CheckTypeMismatch})
	}
	if bag.Len() != 2 {
		t.Fatalf("cap ignored: %d items", bag.Len())
	}
}

func TestBagZeroCapIsUnbounded(t *testing.T) {
	bag := NewBag(0)
	for i := 0; i < 50; i++ {
		if !bag.Add(Diagnostic{Severity: SevError, Code: CheckTypeMismatch}) {
			t.Fatalf("add %d rejected with no cap", i)
		}
	}
	if bag.Len() != 50 {
		t.Fatalf("expected 50 items, got %d", bag.Len())
	}
}

func TestBagMerge(t *testing.T) {
	a := NewBag(2)
	a.Add(Diagnostic{Severity: SevError, Code: CheckTypeMismatch})
	a.Add(Diagnostic{Severity: SevError, Code: CheckTypeMismatch})

	b := NewBag(2)
	b.Add(Diagnostic{Severity: SevWarning, Code: SynUnexpectedToken})
	b.Add(Diagnostic{Severity: SevWarning, Code: SynUnexpectedToken})

	a.Merge(b)
	if a.Len() != 4 {
		t.Fatalf("merge past the cap lost items: %d", a.Len())
	}
	a.Merge(nil)
	if a.Len() != 4 {
		t.Fatalf("nil merge changed the bag: %d", a.Len())
	}
}

func TestBagSortOrdersBySpanThenSeverity(t *testing.T) {
	bag := NewBag(8)
	bag.Add(Diagnostic{Severity: SevWarning, Code: SynUnexpectedToken, Primary: source.Span{Start: 10, End: 12}})
	bag.Add(Diagnostic{Severity: SevError, Code: CheckTypeMismatch, Primary: source.Span{Start: 4, End: 6}})
	bag.Add(Diagnostic{Severity: SevError, Code: LexUnknownChar, Primary: source.Span{Start: 10, End: 12}})
	bag.Sort()

	items := bag.Items()
	if items[0].Code != CheckTypeMismatch {
		t.Fatalf("expected earliest span first, got %s", items[0].Code)
	}
	if items[1].Code != LexUnknownChar {
		t.Fatalf("expected error before warning at same span, got %s", items[1].Code)
	}
}

func TestBagDedup(t *testing.T) {
	bag := NewBag(8)
	sp := source.Span{Start: 1, End: 2}
	bag.Add(Diagnostic{Severity: SevError, Code: CheckTypeMismatch, Primary: sp})
	bag.Add(Diagnostic{Severity: SevError, Code: CheckTypeMismatch, Primary: sp})
	bag.Dedup()
	if bag.Len() != 1 {
		t.Fatalf("dedup kept %d items", bag.Len())
	}
}

func TestCodeString(t *testing.T) {
	if got := CheckTypeMismatch.String(); got != "CHK0001" {
		t.Fatalf("code render: %s", got)
	}
	if got := LexUnknownChar.String(); got != "LEX0001" {
		t.Fatalf("code render: %s", got)
	}
}
