package phone

import "testing"

func TestNormalizeE164_FormatsValidNumbers(t *testing.T) {
	got := NormalizeE164("(202) 555-0123")
	if got != "+12025550123" {
		t.Fatalf("expected +12025550123, got %q", got)
	}

	// Superficial variants normalize to the same key.
	if NormalizeE164("202.555.0123") != got {
		t.Fatalf("formatting variants must normalize identically")
	}
}

func TestNormalizeE164_FallsBackToStrippedInput(t *testing.T) {
	a := NormalizeE164("(555) 123-4567")
	b := NormalizeE164("555 123 4567")
	if a != b {
		t.Fatalf("unparseable variants must still compare equal: %q vs %q", a, b)
	}
}

func TestNormalizeE164_EmptyStaysEmpty(t *testing.T) {
	if NormalizeE164("  ") != "" {
		t.Fatal("whitespace-only input must normalize to empty")
	}
}
