package domain

import (
	"encoding/json"
	"math"
	"strings"
	"testing"
)

func TestIntValue(t *testing.T) {
	cases := []struct {
		in     any
		want   int64
		wantOK bool
	}{
		{json.Number("7"), 7, true},
		{json.Number("7.0"), 7, true},
		{json.Number("7.5"), 0, false},
		{float64(3), 3, true},
		{float64(3.2), 0, false},
		{math.NaN(), 0, false},
		{int(4), 4, true},
		{int64(5), 5, true},
		{"1", 0, false},
		{nil, 0, false},
		{true, 0, false},
	}
	for _, tc := range cases {
		got, ok := IntValue(tc.in)
		if got != tc.want || ok != tc.wantOK {
			t.Fatalf("IntValue(%#v) = (%d, %v), want (%d, %v)", tc.in, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestRecordIDAndClone(t *testing.T) {
	r := Record{"id": json.Number("2"), "name": "x"}
	if !r.HasID(2) || r.HasID(3) {
		t.Fatalf("unexpected HasID results")
	}
	c := r.Clone()
	c["name"] = "y"
	if r["name"] != "x" {
		t.Fatalf("expected clone to be independent")
	}
	var nilRecord Record
	if _, ok := nilRecord.ID(); ok {
		t.Fatalf("expected nil record to have no id")
	}
	if nilRecord.Clone() != nil {
		t.Fatalf("expected nil clone")
	}
}

func TestDecodeCollection(t *testing.T) {
	records, err := DecodeCollection([]byte(`[{"id":1,"score":"2-1","extra":{"a":[1,2]}}]`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 || !records[0].HasID(1) {
		t.Fatalf("unexpected records %+v", records)
	}

	empty, err := DecodeCollection([]byte("null"))
	if err != nil || empty == nil || len(empty) != 0 {
		t.Fatalf("expected empty non-nil slice for null, got %v %v", empty, err)
	}

	for _, bad := range []string{"", "{", `{"id":1}`, `[] []`} {
		if _, err := DecodeCollection([]byte(bad)); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestEncodeCollectionPreservesNumbers(t *testing.T) {
	records, err := DecodeCollection([]byte(`[{"id":1,"ratio":0.10}]`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	data, err := EncodeCollection(records)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !strings.Contains(string(data), `"ratio": 0.10`) {
		t.Fatalf("expected number text preserved, got %s", data)
	}

	empty, err := EncodeCollection(nil)
	if err != nil || string(empty) != "[]" {
		t.Fatalf("expected [] for nil collection, got %q %v", empty, err)
	}
}

func TestDecodeRecord(t *testing.T) {
	rec, err := DecodeRecord(strings.NewReader(`{"homeId":1,"score":null}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v, ok := IntValue(rec["homeId"]); !ok || v != 1 {
		t.Fatalf("unexpected record %+v", rec)
	}

	empty, err := DecodeRecord(strings.NewReader(""))
	if err != nil || empty == nil || len(empty) != 0 {
		t.Fatalf("expected empty record for empty body, got %v %v", empty, err)
	}

	if _, err := DecodeRecord(strings.NewReader(`[1,2]`)); err != ErrNotObject {
		t.Fatalf("expected ErrNotObject, got %v", err)
	}
	if _, err := DecodeRecord(strings.NewReader(`{"a":`)); err == nil {
		t.Fatalf("expected syntax error")
	}
}
