package cleanup

import (
	"encoding/json"
	"reflect"
	"testing"
)

func decodeJSON(t *testing.T, raw string) any {
	t.Helper()
	var value any
	if errUnmarshal := json.Unmarshal([]byte(raw), &value); errUnmarshal != nil {
		t.Fatalf("decode %s: %v", raw, errUnmarshal)
	}
	return value
}

func TestStripFieldNestedInArrays(t *testing.T) {
	input := decodeJSON(t, `{"sections":[{"items":[{"id":1,"requiresProject":true,"label":"X"}]}]}`)
	want := decodeJSON(t, `{"sections":[{"items":[{"id":1,"label":"X"}]}]}`)

	got := StripField(input, "requiresProject")
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("strip mismatch: got %#v want %#v", got, want)
	}
}

func TestStripFieldNoOccurrences(t *testing.T) {
	input := decodeJSON(t, `{"sections":[{"title":"General","items":[{"id":7}]}],"version":2}`)

	got := StripField(input, "requiresProject")
	if !reflect.DeepEqual(got, input) {
		t.Fatalf("expected identical tree, got %#v", got)
	}
}

func TestStripFieldDropsEntireSubtree(t *testing.T) {
	input := decodeJSON(t, `{"requiresProject":{"nested":"value"}}`)

	got := StripField(input, "requiresProject")
	cleaned, ok := got.(map[string]any)
	if !ok {
		t.Fatalf("expected object, got %T", got)
	}
	if len(cleaned) != 0 {
		t.Fatalf("expected empty object, got %#v", cleaned)
	}
}

func TestStripFieldPreservesArrayOrderAndLength(t *testing.T) {
	input := decodeJSON(t, `{"items":[{"id":1,"requiresProject":true},{"id":2},{"id":3,"requiresProject":false}]}`)

	got := StripField(input, "requiresProject").(map[string]any)
	items := got["items"].([]any)
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	for i, wantID := range []float64{1, 2, 3} {
		item := items[i].(map[string]any)
		if item["id"] != wantID {
			t.Fatalf("item %d: expected id %v, got %v", i, wantID, item["id"])
		}
		if _, ok := item["requiresProject"]; ok {
			t.Fatalf("item %d still carries requiresProject", i)
		}
	}
}

func TestStripFieldScalarsUnchanged(t *testing.T) {
	for _, scalar := range []any{"text", float64(42), true, nil} {
		if got := StripField(scalar, "requiresProject"); !reflect.DeepEqual(got, scalar) {
			t.Fatalf("scalar changed: got %#v want %#v", got, scalar)
		}
	}
}

func TestStripFieldKeySetMinusTarget(t *testing.T) {
	input := decodeJSON(t, `{"a":1,"requiresProject":true,"b":{"c":2,"requiresProject":false},"d":[{"e":3,"requiresProject":null}]}`)

	got := StripField(input, "requiresProject").(map[string]any)
	if _, ok := got["requiresProject"]; ok {
		t.Fatal("top-level requiresProject retained")
	}
	for _, key := range []string{"a", "b", "d"} {
		if _, ok := got[key]; !ok {
			t.Fatalf("key %s dropped", key)
		}
	}
	inner := got["b"].(map[string]any)
	if _, ok := inner["requiresProject"]; ok {
		t.Fatal("nested requiresProject retained")
	}
	if _, ok := inner["c"]; !ok {
		t.Fatal("nested key c dropped")
	}
	element := got["d"].([]any)[0].(map[string]any)
	if _, ok := element["requiresProject"]; ok {
		t.Fatal("array element requiresProject retained")
	}
}

func TestStripFieldIdempotent(t *testing.T) {
	input := decodeJSON(t, `{"sections":[{"requiresProject":true,"items":[{"requiresProject":false,"id":1}]}]}`)

	once := StripField(input, "requiresProject")
	twice := StripField(once, "requiresProject")
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("not idempotent: once %#v twice %#v", once, twice)
	}
}

func TestCanonicalJSONKeyOrderInsensitive(t *testing.T) {
	left := decodeJSON(t, `{"b":2,"a":1}`)
	right := decodeJSON(t, `{"a":1,"b":2}`)

	leftBytes, errLeft := CanonicalJSON(left)
	if errLeft != nil {
		t.Fatalf("canonical left: %v", errLeft)
	}
	rightBytes, errRight := CanonicalJSON(right)
	if errRight != nil {
		t.Fatalf("canonical right: %v", errRight)
	}
	if string(leftBytes) != string(rightBytes) {
		t.Fatalf("canonical forms differ: %s vs %s", leftBytes, rightBytes)
	}
}
