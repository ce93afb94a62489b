package policy

import (
	"fmt"
	"strings"

	"github.com/githubnext/runner-guard/pkg/logger"
	"github.com/githubnext/runner-guard/pkg/sliceutil"
)

var checkLog = logger.New("policy:check")

// DisallowedError lists the runner tags an allowlist rejected.
type DisallowedError struct {
	Tags []string
}

func (e *DisallowedError) Error() string {
	return "Found disallowed runner tags: " + strings.Join(e.Tags, ", ")
}

// Verdict is the outcome of checking runner tags against an allowlist.
type Verdict struct {
	// Tags are the unique checked tags in first-seen order.
	Tags []string `json:"tags"`
	// Disallowed are the tags the allowlist rejected, in first-seen order.
	Disallowed []string `json:"disallowed"`
	// Wildcard is true when the allowlist contained "*".
	Wildcard bool `json:"wildcard"`
}

// Passed reports whether no tag was rejected.
func (v Verdict) Passed() bool {
	return len(v.Disallowed) == 0
}

// Err returns a *DisallowedError when the check failed, else nil.
func (v Verdict) Err() error {
	if v.Passed() {
		return nil
	}
	return &DisallowedError{Tags: v.Disallowed}
}

// Check deduplicates tags and rejects those allow does not contain. A
// wildcard allowlist passes unconditionally.
func Check(tags []string, allow Allowlist) Verdict {
	unique := sliceutil.Deduplicate(tags)
	verdict := Verdict{
		Tags:       unique,
		Disallowed: []string{},
		Wildcard:   allow.Wildcard(),
	}

	if verdict.Wildcard {
		checkLog.Printf("Wildcard allowlist, %d tags pass unconditionally", len(unique))
		return verdict
	}

	verdict.Disallowed = sliceutil.Filter(unique, func(tag string) bool {
		return !allow.Allows(tag)
	})
	checkLog.Printf("Checked %d tags against %d allowed: disallowed=%v", len(unique), len(allow.tokens), verdict.Disallowed)
	return verdict
}

// Describe renders a one-line summary of v for console output.
func (v Verdict) Describe() string {
	switch {
	case v.Wildcard:
		return fmt.Sprintf("Wildcard allowlist: all %d runner tags are allowed", len(v.Tags))
	case v.Passed():
		return "All runner tags are allowed"
	default:
		return v.Err().Error()
	}
}
