package main

import (
	"testing"

	"github.com/aethlang/aethc/internal/edition"
)

func TestRunSucceedsOnWellFormedSource(t *testing.T) {
	ok := run("ok.aeth", "fn add(a: Int, b: Int) -> Int { return a + b; }", edition.Default, 100, false)
	if !ok {
		t.Fatal("expected a well-formed program to compile cleanly")
	}
}

func TestRunFailsOnParseError(t *testing.T) {
	ok := run("bad.aeth", "fn f() { let x = ; }", edition.Default, 100, false)
	if ok {
		t.Fatal("expected a parse error to fail the run")
	}
}

func TestRunFailsOnResolveError(t *testing.T) {
	ok := run("bad.aeth", "fn f() { return undefinedName; }", edition.Default, 100, false)
	if ok {
		t.Fatal("expected an undefined-name error to fail the run")
	}
}

func TestRunFailsOnBorrowCheckError(t *testing.T) {
	ok := run("bad.aeth", `fn f() { let s = "hi"; let t = s; let u = s; }`, edition.Default, 100, false)
	if ok {
		t.Fatal("expected a double-move error to fail the run")
	}
}

func TestRunFailsOnGatedKeyword(t *testing.T) {
	ok := run("bad.aeth", "spawn {}", edition.Default, 100, false)
	if ok {
		t.Fatal("expected spawn to be rejected under the default edition")
	}
}
