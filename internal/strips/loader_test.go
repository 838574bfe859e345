package strips

import (
	"errors"
	"testing"
)

func TestLoadJSONPreservesOrder(t *testing.T) {
	payloads, err := Load(`["one","two","three"]`, FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"one", "two", "three"}
	if len(payloads) != len(want) {
		t.Fatalf("got %d payloads, want %d", len(payloads), len(want))
	}
	for i := range want {
		if payloads[i] != want[i] {
			t.Fatalf("payload %d = %q, want %q", i, payloads[i], want[i])
		}
	}
}

func TestLoadJSONMalformed(t *testing.T) {
	_, err := Load(`["one",`, FormatJSON)
	if err == nil {
		t.Fatal("expected error for malformed JSON")
	}
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *ParseError, got %T: %v", err, err)
	}
}

func TestLoadJSONNonStringElements(t *testing.T) {
	payloads, err := Load(`["one",42,null,"two"]`, FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	if len(payloads) != 4 {
		t.Fatalf("got %d payloads, want 4", len(payloads))
	}
	// Non-string elements become empty payloads and fail at decode time.
	if payloads[0] != "one" || payloads[1] != "" || payloads[2] != "" || payloads[3] != "two" {
		t.Fatalf("unexpected payloads: %q", payloads)
	}
}

func TestLoadLinesDropsBlanks(t *testing.T) {
	payloads, err := Load("A\n\nB\n  \nC", FormatLines)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"A", "B", "C"}
	if len(payloads) != len(want) {
		t.Fatalf("got %v, want %v", payloads, want)
	}
	for i := range want {
		if payloads[i] != want[i] {
			t.Fatalf("got %v, want %v", payloads, want)
		}
	}
}

func TestLoadLinesTrimsSegments(t *testing.T) {
	payloads, err := Load("  A  \r\nB\t\n", FormatLines)
	if err != nil {
		t.Fatal(err)
	}
	if len(payloads) != 2 || payloads[0] != "A" || payloads[1] != "B" {
		t.Fatalf("unexpected payloads: %q", payloads)
	}
}

func TestLoadUnknownBehavesLikeLines(t *testing.T) {
	payloads, err := Load("AAAA", FormatUnknown)
	if err != nil {
		t.Fatal(err)
	}
	if len(payloads) != 1 || payloads[0] != "AAAA" {
		t.Fatalf("unexpected payloads: %q", payloads)
	}
}
