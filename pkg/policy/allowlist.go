// Package policy decides whether a set of runner tags is permitted by an
// allowlist.
package policy

import (
	"strings"

	"github.com/githubnext/runner-guard/pkg/constants"
	"github.com/githubnext/runner-guard/pkg/logger"
	"github.com/githubnext/runner-guard/pkg/sliceutil"
)

var allowlistLog = logger.New("policy:allowlist")

// Allowlist is the ordered set of permitted runner tags. The token "*"
// permits every tag.
type Allowlist struct {
	tokens []string
}

// ParseAllowlist splits input on any whitespace, dropping empty tokens and
// repeats.
func ParseAllowlist(input string) Allowlist {
	tokens := sliceutil.Deduplicate(strings.Fields(input))
	allowlistLog.Printf("Parsed allowlist: %v", tokens)
	return Allowlist{tokens: tokens}
}

// Tokens returns the allowlist entries in input order. The result is never nil.
func (a Allowlist) Tokens() []string {
	return append([]string{}, a.tokens...)
}

// Wildcard reports whether the allowlist contains "*".
func (a Allowlist) Wildcard() bool {
	return sliceutil.Contains(a.tokens, constants.WildcardRunner)
}

// Allows reports whether tag is permitted.
func (a Allowlist) Allows(tag string) bool {
	return a.Wildcard() || sliceutil.Contains(a.tokens, tag)
}

// Merge returns an allowlist holding a's tokens followed by extra, without
// repeats. Empty and whitespace-only entries of extra are ignored.
func (a Allowlist) Merge(extra ...string) Allowlist {
	merged := append([]string(nil), a.tokens...)
	for _, tag := range extra {
		if tag = strings.TrimSpace(tag); tag != "" {
			merged = append(merged, tag)
		}
	}
	return Allowlist{tokens: sliceutil.Deduplicate(merged)}
}

// String renders the allowlist the way it is accepted as input.
func (a Allowlist) String() string {
	return strings.Join(a.tokens, " ")
}
