package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/stackbrew/manifest"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

// EntryBuilder helps create manifest entries with a fluent interface.
type EntryBuilder struct {
	*testkit.BaseBuilder
	raw          string
	sourceURL    string
	tag          string
	revisionSpec string
}

// NewEntryBuilder creates a new entry builder with sensible defaults.
func NewEntryBuilder() *EntryBuilder {
	return &EntryBuilder{
		BaseBuilder:  testkit.NewBaseBuilder(),
		raw:          "latest https://example.com/app.git",
		sourceURL:    "https://example.com/app.git",
		tag:          "latest",
		revisionSpec: "",
	}
}

// WithRaw sets the raw manifest line text.
func (b *EntryBuilder) WithRaw(raw string) *EntryBuilder {
	b.raw = raw
	return b
}

// WithSourceURL sets the source repository URL.
func (b *EntryBuilder) WithSourceURL(url string) *EntryBuilder {
	b.sourceURL = url
	return b
}

// WithTag sets the image tag.
func (b *EntryBuilder) WithTag(tag string) *EntryBuilder {
	b.tag = tag
	return b
}

// WithRevisionSpec sets the revision spec shorthand.
func (b *EntryBuilder) WithRevisionSpec(spec string) *EntryBuilder {
	b.revisionSpec = spec
	return b
}

// Build creates the entry (satisfies testkit.Builder interface).
func (b *EntryBuilder) Build() interface{} {
	return b.BuildEntry()
}

// BuildEntry creates the entry with a concrete return type.
func (b *EntryBuilder) BuildEntry() manifest.Entry {
	return manifest.Entry{
		Raw:          b.raw,
		SourceURL:    b.sourceURL,
		Tag:          b.tag,
		RevisionSpec: b.revisionSpec,
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *EntryBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.raw = "latest https://example.com/app.git"
	b.sourceURL = "https://example.com/app.git"
	b.tag = "latest"
	b.revisionSpec = ""
	return b
}

// Clone creates a deep copy of the EntryBuilder.
func (b *EntryBuilder) Clone() testkit.Builder {
	return &EntryBuilder{
		BaseBuilder:  b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		raw:          b.raw,
		sourceURL:    b.sourceURL,
		tag:          b.tag,
		revisionSpec: b.revisionSpec,
	}
}
