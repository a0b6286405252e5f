package debug

import (
	"fmt"

	"github.com/kailas-cloud/nameres/internal/domain"
)

// Level is the engine debug level requested for a lookup.
type Level string

// Debug level constants.
const (
	None    Level = "none"
	Query   Level = "query"
	Timing  Level = "timing"
	Results Level = "results"
	All     Level = "all"
)

// Levels lists every accepted level in documentation order.
var Levels = []Level{None, Query, Timing, Results, All}

// Parse converts a raw value into a Level. An empty value means None.
func Parse(s string) (Level, error) {
	if s == "" {
		return None, nil
	}
	l := Level(s)
	if !l.IsValid() {
		return "", fmt.Errorf("%w: unknown debug level %q (want one of none, query, timing, results, all)",
			domain.ErrInvalidRequest, s)
	}
	return l, nil
}

// IsValid checks if the level is one of the supported values.
func (l Level) IsValid() bool {
	switch l {
	case None, Query, Timing, Results, All:
		return true
	}
	return false
}

// Enabled reports whether any debug output is requested.
func (l Level) Enabled() bool { return l != None && l != "" }

// EngineValue returns the engine's debug parameter value, or "" for None.
func (l Level) EngineValue() string {
	if !l.Enabled() {
		return ""
	}
	return string(l)
}

// IncludesExplain reports whether per-document explain payloads are returned.
func (l Level) IncludesExplain() bool { return l == Results || l == All }
