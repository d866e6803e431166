package domain

import (
	"fmt"
	"strings"
)

// DefaultRevision is checked out when a manifest entry carries no revision spec.
const DefaultRevision = "refs/heads/master"

// Revision spec prefixes recognized in the third manifest field. Matching is
// case-sensitive.
const (
	branchPrefix = "B:"
	tagPrefix    = "T:"
	commitPrefix = "C:"
)

// ResolveRevision turns manifest revision-spec shorthand into a fully
// qualified revision reference:
//
//	""        -> refs/heads/master
//	B:<name>  -> refs/heads/<name>
//	T:<name>  -> refs/tags/<name>
//	C:<hash>  -> <hash> (a direct commit, not a symbolic ref)
//
// Any other prefix is an error for the entry that carried it.
func ResolveRevision(spec string) (string, error) {
	switch {
	case spec == "":
		return DefaultRevision, nil
	case strings.HasPrefix(spec, branchPrefix):
		return "refs/heads/" + strings.TrimPrefix(spec, branchPrefix), nil
	case strings.HasPrefix(spec, tagPrefix):
		return "refs/tags/" + strings.TrimPrefix(spec, tagPrefix), nil
	case strings.HasPrefix(spec, commitPrefix):
		return strings.TrimPrefix(spec, commitPrefix), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrRevisionSpec, spec)
	}
}
