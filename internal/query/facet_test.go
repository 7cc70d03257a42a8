package query

import (
	"reflect"
	"testing"

	"github.com/vpetrenko/specsheet/internal/model"
)

func TestAvailableValues_NoChain(t *testing.T) {
	records := []model.Record{
		{"Size": "2 inch"},
		{"Size": "1 inch"},
		{"Size": "2 inch"}, // duplicate
		{"Type": "A"},      // missing Size, ignored
	}

	got := AvailableValues(records, nil, "Size")
	want := []string{"1 inch", "2 inch"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestAvailableValues_WithChain(t *testing.T) {
	records := []model.Record{
		{"Size": "1 inch", "Type": "A"},
		{"Size": "1 inch", "Type": "B"},
		{"Size": "2 inch", "Type": "C"},
	}

	got := AvailableValues(records, []model.Selection{{Facet: "Size", Value: "1 inch"}}, "Type")
	want := []string{"A", "B"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestAvailableValues_SortedRegardlessOfSourceOrder(t *testing.T) {
	records := []model.Record{
		{"Type": "C"},
		{"Type": "A"},
		{"Type": "B"},
	}

	got := AvailableValues(records, nil, "Type")
	want := []string{"A", "B", "C"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestAvailableValues_EmptyInputs(t *testing.T) {
	if got := AvailableValues(nil, nil, "Size"); len(got) != 0 {
		t.Errorf("empty record sequence: got %v, want empty", got)
	}

	// An unpopulated selection in the chain short-circuits to empty:
	// callers escalate to the next facet only once the current one is set.
	records := []model.Record{{"Size": "1 inch", "Type": "A"}}
	chain := []model.Selection{{Facet: "Size", Value: ""}}
	if got := AvailableValues(records, chain, "Type"); len(got) != 0 {
		t.Errorf("empty selection value: got %v, want empty", got)
	}
}

func TestMatchingRecords_FullChain(t *testing.T) {
	records := []model.Record{
		{"Size": "1 inch", "Type": "A", "Liner Material": "PTFE", "Cost": "100"},
		{"Size": "1 inch", "Type": "A", "Liner Material": "Rubber", "Cost": "80"},
		{"Size": "1 inch", "Type": "A", "Liner Material": "PTFE", "Cost": "120"},
		{"Size": "2 inch", "Type": "A", "Liner Material": "PTFE", "Cost": "150"},
	}
	chain := []model.Selection{
		{Facet: "Size", Value: "1 inch"},
		{Facet: "Type", Value: "A"},
		{Facet: "Liner Material", Value: "PTFE"},
	}

	got := MatchingRecords(records, chain)
	if len(got) != 2 {
		t.Fatalf("got %d records, want 2", len(got))
	}
	// All matches in original order, not just the first.
	if got[0].Get("Cost") != "100" || got[1].Get("Cost") != "120" {
		t.Errorf("records out of order: %v", got)
	}

	// Idempotent: same inputs, same sequence.
	again := MatchingRecords(records, chain)
	if !reflect.DeepEqual(got, again) {
		t.Error("repeated invocation returned a different sequence")
	}
}

func TestMatchingRecords_Degenerate(t *testing.T) {
	records := []model.Record{{"Size": "1 inch"}}

	if got := MatchingRecords(nil, nil); len(got) != 0 {
		t.Errorf("empty records: got %v", got)
	}
	if got := MatchingRecords(records, []model.Selection{{Facet: "Size", Value: ""}}); len(got) != 0 {
		t.Errorf("empty selection: got %v", got)
	}
	// Missing field reads as "" and never matches a non-empty selection.
	if got := MatchingRecords(records, []model.Selection{{Facet: "Type", Value: "A"}}); len(got) != 0 {
		t.Errorf("missing field matched: got %v", got)
	}
}
