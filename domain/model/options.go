package model

import "runtime"

// DecodeOptions configures how data rows are decoded.
type DecodeOptions struct {
	workers    int
	mixedKinds bool
}

// NewDecodeOptions creates DecodeOptions with default values:
// one worker per available CPU and strict per-column kinds.
func NewDecodeOptions() DecodeOptions {
	return DecodeOptions{}
}

// WithWorkers sets the maximum number of columns decoded concurrently.
// Zero or a negative value means runtime.GOMAXPROCS(0).
func (o DecodeOptions) WithWorkers(n int) DecodeOptions {
	o.workers = n
	return o
}

// WithMixedKinds allows cells whose kind differs from their column's kind.
// Such cells keep their own decoded kind instead of failing the column.
// Malformed cells still fail.
func (o DecodeOptions) WithMixedKinds(allow bool) DecodeOptions {
	o.mixedKinds = allow
	return o
}

// Workers returns the effective worker count.
func (o DecodeOptions) Workers() int {
	if o.workers <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return o.workers
}

// MixedKinds reports whether mixed kinds within a column are allowed.
func (o DecodeOptions) MixedKinds() bool {
	return o.mixedKinds
}
