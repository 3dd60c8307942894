package model

import (
	"iter"
	"strings"
)

// Tag is one named value of grid meta or column meta. A bare tag carries Marker.
type Tag struct {
	Name  string
	Value Value
}

// Tags is an ordered, read-only mapping from tag name to value.
// The zero Tags is empty and ready to use.
type Tags struct {
	tags  []Tag
	index map[string]int
}

// TagsBuilder accumulates tags in insertion order. Build freezes the result.
type TagsBuilder struct {
	tags  []Tag
	index map[string]int
}

// NewTagsBuilder creates a TagsBuilder.
func NewTagsBuilder() *TagsBuilder {
	return &TagsBuilder{index: make(map[string]int)}
}

// Add appends a tag. It returns false and leaves the builder unchanged if
// the name is already present.
func (b *TagsBuilder) Add(name string, v Value) bool {
	if _, ok := b.index[name]; ok {
		return false
	}
	b.index[name] = len(b.tags)
	b.tags = append(b.tags, Tag{Name: name, Value: v})
	return true
}

// Build returns the accumulated tags. The builder must not be used afterwards.
func (b *TagsBuilder) Build() Tags {
	t := Tags{tags: b.tags, index: b.index}
	b.tags, b.index = nil, nil
	return t
}

// NewTags builds Tags from tags in order. Later duplicates are ignored.
func NewTags(tags ...Tag) Tags {
	b := NewTagsBuilder()
	for _, t := range tags {
		b.Add(t.Name, t.Value)
	}
	return b.Build()
}

// Len returns the number of tags.
func (t Tags) Len() int { return len(t.tags) }

// Get returns the value of the named tag.
func (t Tags) Get(name string) (Value, bool) {
	i, ok := t.index[name]
	if !ok {
		return Value{}, false
	}
	return t.tags[i].Value, true
}

// Has reports whether the named tag is present.
func (t Tags) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

// At returns the i-th tag.
func (t Tags) At(i int) Tag { return t.tags[i] }

// Names returns the tag names in order.
func (t Tags) Names() []string {
	names := make([]string, len(t.tags))
	for i, tag := range t.tags {
		names[i] = tag.Name
	}
	return names
}

// All iterates over the tags in order.
func (t Tags) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for _, tag := range t.tags {
			if !yield(tag.Name, tag.Value) {
				return
			}
		}
	}
}

// Str returns the text of the named tag if it is a Str.
func (t Tags) Str(name string) (string, bool) {
	v, ok := t.Get(name)
	if !ok || v.Kind() != KindStr {
		return "", false
	}
	return v.Text(), true
}

// Equal reports whether both hold the same tags in the same order.
func (t Tags) Equal(o Tags) bool {
	if len(t.tags) != len(o.tags) {
		return false
	}
	for i, tag := range t.tags {
		if tag.Name != o.tags[i].Name || !tag.Value.Equal(o.tags[i].Value) {
			return false
		}
	}
	return true
}

// String renders the tags as a space separated Zinc tag list.
func (t Tags) String() string {
	var sb strings.Builder
	t.appendZinc(&sb)
	return sb.String()
}

func (t Tags) appendZinc(sb *strings.Builder) {
	for i, tag := range t.tags {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(tag.Name)
		if tag.Value.Kind() == KindMarker {
			continue
		}
		sb.WriteByte(':')
		tag.Value.appendZinc(sb)
	}
}
