package result

import (
	"reflect"
	"testing"
)

func TestAggregatorSortsByDefault(t *testing.T) {
	a := NewAggregator(0, false)
	a.Add("banana")
	a.Add("apple")
	a.Add("cherry")

	table := a.Finalize()

	want := []string{"apple", "banana", "cherry"}
	if !reflect.DeepEqual(table.Matches(), want) {
		t.Errorf("Matches() = %v, want %v", table.Matches(), want)
	}
}

func TestAggregatorNoSort(t *testing.T) {
	a := NewAggregator(0, true)
	a.Add("banana")
	a.Add("apple")

	table := a.Finalize()

	want := []string{"banana", "apple"}
	if !reflect.DeepEqual(table.Matches(), want) {
		t.Errorf("Matches() = %v, want %v", table.Matches(), want)
	}
}

func TestAggregatorOffs(t *testing.T) {
	a := NewAggregator(2, true)
	a.Add("one")

	table := a.Finalize()

	if table.Offs != 2 {
		t.Fatalf("Offs = %d, want 2", table.Offs)
	}

	want := []string{"", "", "one"}
	if !reflect.DeepEqual(table.Pathv, want) {
		t.Errorf("Pathv = %v, want %v", table.Pathv, want)
	}

	if table.Pathc != 1 {
		t.Errorf("Pathc = %d, want 1", table.Pathc)
	}
}

func TestAggregatorSeedFromAppend(t *testing.T) {
	first := NewAggregator(0, true)
	first.Add("a")
	first.Add("b")
	prior := first.Finalize()

	second := NewAggregator(0, true)
	second.SeedFrom(prior)
	second.Add("c")

	table := second.Finalize()

	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(table.Matches(), want) {
		t.Errorf("Matches() = %v, want %v", table.Matches(), want)
	}
}

func TestTableFree(t *testing.T) {
	a := NewAggregator(0, true)
	a.Add("x")
	table := a.Finalize()

	table.Free()

	if table.Pathc != 0 || table.Pathv != nil {
		t.Error("expected Free to clear the table")
	}
}
