// Package edition gates which keywords in the lexer's reserved-word table
// are actually available to the parser, the one "which language version am
// I compiling" concern a front-end genuinely owns. It reuses the teacher's
// package-manager dependency, Masterminds/semver/v3 (see
// internal/packagemanager/resolver.go in the teacher for the original
// version-constraint-solving use), for an unrelated purpose: resolving a
// single compiler edition against a table of per-feature constraints.
package edition

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// Edition names a compiler edition by semantic version, e.g. "0.1.0".
type Edition struct {
	version *semver.Version
}

// Default is the edition assumed when a driver doesn't specify one: the
// keywords gated below (spawn/channel) are not yet available.
var Default = mustParse("0.1.0")

// featureConstraints maps a gated keyword to the edition range it requires.
// Keywords recognized by the lexer but absent from this table (if, else,
// while, for, in, match, use) aren't edition-gated at all — they're simply
// reserved words this core's parser doesn't yet have a production for.
var featureConstraints = map[string]*semver.Constraints{
	"spawn":   mustConstraint(">=0.2.0"),
	"channel": mustConstraint(">=0.2.0"),
}

func mustConstraint(s string) *semver.Constraints {
	c, err := semver.NewConstraint(s)
	if err != nil {
		panic(fmt.Sprintf("edition: bad built-in constraint %q: %v", s, err))
	}
	return c
}

func mustParse(s string) Edition {
	e, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return e
}

// Parse builds an Edition from a semver string.
func Parse(raw string) (Edition, error) {
	v, err := semver.NewVersion(raw)
	if err != nil {
		return Edition{}, fmt.Errorf("edition: invalid version %q: %w", raw, err)
	}
	return Edition{version: v}, nil
}

func (e Edition) String() string {
	if e.version == nil {
		return "unknown"
	}
	return e.version.String()
}

// Supports reports whether keyword is available under e. Unregistered
// keywords are always reported as supported.
func (e Edition) Supports(keyword string) bool {
	c, ok := featureConstraints[keyword]
	if !ok {
		return true
	}
	if e.version == nil {
		return false
	}
	return c.Check(e.version)
}
