// Package manifest parses build manifest files: one image definition per
// line in the form `[tag] url [revision-spec]`, with full-line # comments
// and blank lines skipped.
package manifest

import (
	"errors"
	"fmt"
	"strings"
)

// Layout of a manifest library checkout.
const (
	// LibraryDir is the subdirectory holding one manifest file per image.
	LibraryDir = "library"

	// MaintainersFile sits next to the manifests and is never parsed as one.
	MaintainersFile = "MAINTAINERS"
)

// ErrLineFormat marks a manifest line that does not match `[tag] url [spec]`.
var ErrLineFormat = errors.New("malformed manifest line")

// Entry is one image definition: where to fetch the source, which revision to
// build and the tag the result is published under. Tag and RevisionSpec are
// empty when the line left them out; defaults are the caller's business.
type Entry struct {
	Raw          string
	SourceURL    string
	Tag          string
	RevisionSpec string
}

// Line is one parsed manifest line. Err is set instead of Entry when the line
// is malformed; the raw text is kept either way for reporting.
type Line struct {
	Number int
	Raw    string
	Entry  Entry
	Err    error
}

// Parse splits a manifest file into its entries. Blank lines and # comments
// are dropped; malformed lines come back with Err set so callers can report
// them without abandoning the rest of the file. Numbers are 1-based and refer
// to the original file.
func Parse(content string) []Line {
	var out []Line
	for i, raw := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		line := Line{Number: i + 1, Raw: trimmed}
		fields := strings.Fields(trimmed)
		switch len(fields) {
		case 1:
			line.Entry = Entry{Raw: trimmed, SourceURL: fields[0]}
		case 2:
			line.Entry = Entry{Raw: trimmed, Tag: fields[0], SourceURL: fields[1]}
		case 3:
			line.Entry = Entry{
				Raw:          trimmed,
				Tag:          fields[0],
				SourceURL:    fields[1],
				RevisionSpec: fields[2],
			}
		default:
			line.Err = fmt.Errorf("%w: expected `[tag] url [revision]`, got %d fields",
				ErrLineFormat, len(fields))
		}
		out = append(out, line)
	}
	return out
}
