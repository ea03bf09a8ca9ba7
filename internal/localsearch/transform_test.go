package localsearch

import (
	"math"
	"testing"
)

func TestStripTags(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"<b>Gamjatang</b> House", "Gamjatang House"},
		{"Plain Name", "Plain Name"},
		{"  padded  ", "padded"},
		{"<em>a</em><b>b</b>", "ab"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := StripTags(tt.in); got != tt.want {
			t.Fatalf("StripTags(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseCategory(t *testing.T) {
	main, sub := ParseCategory("Restaurants>Korean>Stew")
	if main != "Restaurants" {
		t.Fatalf("main = %q, want Restaurants", main)
	}
	if sub == nil || *sub != "Korean" {
		t.Fatalf("sub = %v, want Korean", sub)
	}

	main, sub = ParseCategory("Cafe")
	if main != "Cafe" || sub != nil {
		t.Fatalf("single segment: main=%q sub=%v", main, sub)
	}

	main, sub = ParseCategory("")
	if main != DefaultCategory || sub != nil {
		t.Fatalf("empty category: main=%q sub=%v", main, sub)
	}

	main, sub = ParseCategory(" Restaurants > Korean ")
	if main != "Restaurants" || sub == nil || *sub != "Korean" {
		t.Fatalf("padded segments: main=%q sub=%v", main, sub)
	}
}

func TestParseCoordinate(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"1270358919", 127.0358919},
		{"375131911", 37.5131911},
		{"0", 0},
		{"not-a-number", 0},
		{"", 0},
	}
	for _, tt := range tests {
		if got := ParseCoordinate(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Fatalf("ParseCoordinate(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestBestAddress(t *testing.T) {
	item := Item{Address: "1 Old Rd", RoadAddress: "2 New St"}
	if got := BestAddress(item); got != "2 New St" {
		t.Fatalf("BestAddress = %q, want road address", got)
	}
	item.RoadAddress = "  "
	if got := BestAddress(item); got != "1 Old Rd" {
		t.Fatalf("BestAddress = %q, want fallback address", got)
	}
}

func FuzzStripTags(f *testing.F) {
	f.Add("<b>Name</b>")
	f.Add("no tags")
	f.Add("<unclosed")
	f.Add("")

	f.Fuzz(func(t *testing.T, raw string) {
		got := StripTags(raw)
		if len(got) > len(raw) {
			t.Fatalf("StripTags grew the input: %q -> %q", raw, got)
		}
	})
}

func FuzzParseCategory(f *testing.F) {
	f.Add("Restaurants>Korean")
	f.Add(">>>")
	f.Add("")

	f.Fuzz(func(t *testing.T, raw string) {
		main, _ := ParseCategory(raw)
		if main == "" {
			t.Fatalf("ParseCategory(%q) returned empty main category", raw)
		}
	})
}
