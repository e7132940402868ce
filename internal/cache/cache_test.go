package cache

import (
	"context"
	"testing"
)

func TestKey(t *testing.T) {
	t.Parallel()
	a := Key("abc", 5, "RANDOM", "57,1,1")
	if a != "knn:abc:5:RANDOM:57,1,1" {
		t.Errorf("key got: %q", a)
	}
	for _, b := range []string{
		Key("abd", 5, "RANDOM", "57,1,1"),
		Key("abc", 3, "RANDOM", "57,1,1"),
		Key("abc", 5, "LOWEST", "57,1,1"),
		Key("abc", 5, "RANDOM", "57,1,2"),
	} {
		if a == b {
			t.Errorf("keys must differ: %q", b)
		}
	}
}

func TestLabelsFromValues(t *testing.T) {
	t.Parallel()
	labels, hits := labelsFromValues([]interface{}{"1", nil, "0", "x", 7})
	expectedHits := []bool{true, false, true, false, false}
	expectedLabels := []int{1, 0, 0, 0, 0}
	for i := range expectedHits {
		if hits[i] != expectedHits[i] || labels[i] != expectedLabels[i] {
			t.Errorf("value %d got: %d, %v, expected: %d, %v", i, labels[i], hits[i], expectedLabels[i], expectedHits[i])
		}
	}
}

func TestNop(t *testing.T) {
	t.Parallel()
	var c Cache = Nop{}
	ctx := context.Background()
	if err := c.SetMany(ctx, []string{"a"}, []int{1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, hits, err := c.GetMany(ctx, []string{"a", "b"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hits) != 2 || hits[0] || hits[1] {
		t.Errorf("nop cache must always miss, got: %v", hits)
	}
	if (&Config{}).Enabled() || !(&Config{Addr: "localhost:6379"}).Enabled() {
		t.Errorf("enabled must follow the address")
	}
}
