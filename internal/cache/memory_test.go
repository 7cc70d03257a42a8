package cache

import (
	"testing"
	"time"

	"github.com/vpetrenko/specsheet/internal/model"
)

func TestMemoryCache_SetGet(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	records := []model.Record{{"Range": "0-100", "Cost": "10"}}
	c.Set("k", records, time.Minute)

	got, found := c.Get("k")
	if !found {
		t.Fatal("expected cache hit")
	}
	if len(got) != 1 || got[0].Get("Cost") != "10" {
		t.Errorf("got %v, want cached records back", got)
	}
}

func TestMemoryCache_Miss(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)
	if _, found := c.Get("absent"); found {
		t.Error("expected miss for absent key")
	}
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)
	c.Set("k", []model.Record{{"Cost": "1"}}, 10*time.Millisecond)

	time.Sleep(30 * time.Millisecond)
	if _, found := c.Get("k"); found {
		t.Error("expected entry to expire")
	}
}

func TestMemoryCache_DeleteAndClear(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)
	c.Set("a", nil, time.Minute)
	c.Set("b", nil, time.Minute)

	c.Delete("a")
	if _, found := c.Get("a"); found {
		t.Error("expected miss after Delete")
	}

	c.Clear()
	if _, found := c.Get("b"); found {
		t.Error("expected miss after Clear")
	}
}

func TestKey_Deterministic(t *testing.T) {
	if Key("sheet1", "t") != Key("sheet1", "t") {
		t.Error("same inputs produced different keys")
	}
	if Key("sheet1", "t") == Key("sheet2", "t") {
		t.Error("different stores produced the same key")
	}
}
