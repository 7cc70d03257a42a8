package query

import (
	"testing"

	"github.com/vpetrenko/specsheet/internal/model"
)

func TestFindMatch_FirstMatchWins(t *testing.T) {
	records := []model.Record{
		{"Range": "0-100", "Cost": "10"},
		{"Range": "50-150", "Cost": "20"},
	}

	// 75 lies in both intervals; the earlier record must win.
	rec, ok := FindMatch(records, 75)
	if !ok {
		t.Fatal("expected a match")
	}
	if rec.Get("Cost") != "10" {
		t.Errorf("got Cost %q, want %q", rec.Get("Cost"), "10")
	}
}

func TestFindMatch_SkipsUnparsableRanges(t *testing.T) {
	records := []model.Record{
		{"Range": "abc", "Cost": "10"},
		{"Range": "0-10", "Cost": "20"},
	}

	rec, ok := FindMatch(records, 5)
	if !ok {
		t.Fatal("expected a match")
	}
	if rec.Get("Cost") != "20" {
		t.Errorf("got Cost %q, want %q", rec.Get("Cost"), "20")
	}
}

func TestFindMatch_InclusiveBounds(t *testing.T) {
	records := []model.Record{{"Range": "10-20", "Cost": "5"}}

	for _, v := range []float64{10, 20} {
		if _, ok := FindMatch(records, v); !ok {
			t.Errorf("FindMatch(%v) missed, bounds are inclusive", v)
		}
	}
	for _, v := range []float64{9.999, 20.001} {
		if _, ok := FindMatch(records, v); ok {
			t.Errorf("FindMatch(%v) matched outside the interval", v)
		}
	}
}

func TestFindMatch_NoMatch(t *testing.T) {
	cases := []struct {
		name    string
		records []model.Record
	}{
		{"empty sequence", nil},
		{"all unparsable", []model.Record{{"Range": "n/a"}, {"Range": ""}}},
		{"missing range field", []model.Record{{"Cost": "10"}}},
		{"value outside all intervals", []model.Record{{"Range": "0-10"}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if rec, ok := FindMatch(tc.records, 50); ok {
				t.Errorf("unexpected match: %v", rec)
			}
		})
	}
}

func TestFindMatch_DoesNotMutateInput(t *testing.T) {
	records := []model.Record{
		{"Range": "bad"},
		{"Range": "0-100", "Cost": "10"},
	}

	_, _ = FindMatch(records, 50)

	if records[0].Get("Range") != "bad" || records[1].Get("Cost") != "10" {
		t.Error("input records were mutated")
	}
}
