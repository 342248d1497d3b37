package edition

import "testing"

func TestDefaultEditionDoesNotSupportSpawnChannel(t *testing.T) {
	if Default.Supports("spawn") {
		t.Fatal("0.1.0 should not support spawn")
	}
	if Default.Supports("channel") {
		t.Fatal("0.1.0 should not support channel")
	}
}

func TestNewerEditionSupportsSpawnChannel(t *testing.T) {
	ed, err := Parse("0.2.0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ed.Supports("spawn") {
		t.Fatal("0.2.0 should support spawn")
	}
	if !ed.Supports("channel") {
		t.Fatal("0.2.0 should support channel")
	}
}

func TestUngatedKeywordAlwaysSupported(t *testing.T) {
	if !Default.Supports("if") {
		t.Fatal("ungated keywords should always report supported")
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	if _, err := Parse("not-a-version"); err == nil {
		t.Fatal("expected an error for a malformed version string")
	}
}

func TestZeroValueEditionSupportsNothingGated(t *testing.T) {
	var e Edition
	if e.Supports("spawn") {
		t.Fatal("zero-value Edition should not support gated keywords")
	}
	if e.String() != "unknown" {
		t.Fatalf("expected 'unknown', got %q", e.String())
	}
}
