package tagdict

import (
	"errors"
	"testing"

	"github.com/CrestNiraj12/termbooru/domain"
)

func TestParseShard_KeepsValidEntriesOnly(t *testing.T) {
	data := []byte(`[
		{"name": " long_hair ", "count": 120},
		{"name": "solo", "count": "95"},
		{"name": "", "count": 10},
		{"name": "   ", "count": 10},
		{"name": "no_count"},
		{"name": "bad_count", "count": "abc"},
		{"name": 42, "count": 1},
		null,
		"stray",
		{"name": "null_count", "count": null}
	]`)
	tags, err := ParseShard(data)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(tags) != 2 {
		t.Fatalf("expected 2 valid tags, got %d: %#v", len(tags), tags)
	}
	if tags[0] != (domain.Tag{Label: "long hair", Value: "long_hair", Count: 120}) {
		t.Fatalf("unexpected first tag: %#v", tags[0])
	}
	if tags[1].Value != "solo" || tags[1].Count != 95 {
		t.Fatalf("string count must be accepted: %#v", tags[1])
	}
}

func TestParseShard_RejectsNonArray(t *testing.T) {
	for _, in := range []string{``, `{}`, `{"name":"x"}`, `not json`, `[{"name":`} {
		if _, err := ParseShard([]byte(in)); !errors.Is(err, domain.ErrMalformedResponse) {
			t.Fatalf("expected malformed error for %q, got %v", in, err)
		}
	}
}

func TestParseCount_Range(t *testing.T) {
	cases := []struct {
		in   string
		want int64
		ok   bool
	}{
		{`12`, 12, true},
		{`"7.9"`, 7, true},
		{`-3`, -3, true},
		{`1e30`, 0, false},
		{`"-1e30"`, 0, false},
		{`9223372036854775807`, 0, false},
		{`"NaN"`, 0, false},
		{`"Inf"`, 0, false},
	}
	for _, c := range cases {
		got, ok := parseCount([]byte(c.in))
		if ok != c.ok || got != c.want {
			t.Fatalf("parseCount(%s) = %d, %v; want %d, %v", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestBuild_SortsByCountDescendingAndStable(t *testing.T) {
	dict := Build([]domain.Tag{
		{Value: "a", Count: 5},
		{Value: "b", Count: 50},
		{Value: "c", Count: 5},
		{Value: "", Count: 999},
		{Value: "d", Count: 7},
	})
	want := []string{"b", "d", "a", "c"}
	if dict.Len() != len(want) {
		t.Fatalf("unexpected size: %d", dict.Len())
	}
	for i, v := range want {
		if dict[i].Value != v {
			t.Fatalf("position %d: got %q want %q", i, dict[i].Value, v)
		}
	}
	for i := 1; i < len(dict); i++ {
		if dict[i].Count > dict[i-1].Count {
			t.Fatalf("dictionary must be non-increasing at %d", i)
		}
	}
}
