package model

import (
	"strings"

	"go.uber.org/zap"
)

// PlanSource tells how the kind of a column was chosen.
type PlanSource int

const (
	// PlanDeclared means the column carries a kind tag
	PlanDeclared PlanSource = iota
	// PlanImplied means the kind follows from an enum, unit or tz tag
	PlanImplied
	// PlanSampled means the kind was taken from the first non-empty cell
	PlanSampled
	// PlanEmpty means the column holds no values and decodes as Null
	PlanEmpty
)

// String returns the string representation of the plan source.
func (s PlanSource) String() string {
	switch s {
	case PlanDeclared:
		return "declared"
	case PlanImplied:
		return "implied"
	case PlanSampled:
		return "sampled"
	case PlanEmpty:
		return "empty"
	default:
		return "unknown"
	}
}

// Plan is the decode strategy of one column.
type Plan struct {
	Kind   Kind
	Source PlanSource
	// Enum holds the categories of an enum tag, in declaration order.
	Enum []string
}

// ResolvePlans picks a decode plan for every column of raw.
func ResolvePlans(h *Header, raw *RawColumns) ([]Plan, error) {
	plans := make([]Plan, len(h.Columns))
	for i, def := range h.Columns {
		p, err := ResolvePlan(def, raw.Column(i))
		if err != nil {
			return nil, err
		}
		plans[i] = p
	}
	return plans, nil
}

// ResolvePlan picks the decode plan of one column.
//
// Tags win over data: a kind tag naming a supported kind is used as is,
// otherwise an enum tag implies Str, a unit tag implies Number and a tz tag
// implies DateTime. Without such tags the first cell holding a value (not
// empty, N or NA) is decoded and its kind adopted. A column with no such
// cell decodes as Null.
func ResolvePlan(def ColumnDef, cells []string) (Plan, error) {
	if p, ok := planFromTags(def.Tags); ok {
		return p, nil
	}

	for row, cell := range cells {
		if cell == "" {
			continue
		}
		v, err := DecodeLiteral(cell)
		if err != nil {
			return Plan{}, &ColumnError{Column: def.Name, Row: row, Cell: cell, Cause: err}
		}
		if v.IsAbsent() {
			continue
		}
		Logger().Debug("no kind tags, inferring column kind from first value",
			zap.String("column", def.Name),
			zap.Int("row", row),
			zap.Stringer("kind", v.Kind()))
		return Plan{Kind: v.Kind(), Source: PlanSampled}, nil
	}
	return Plan{Kind: KindNull, Source: PlanEmpty}, nil
}

func planFromTags(tags Tags) (Plan, bool) {
	if name, ok := tags.Str("kind"); ok {
		if k, ok := kindFromName(name); ok {
			p := Plan{Kind: k, Source: PlanDeclared}
			if k == KindStr {
				p.Enum = enumCategories(tags)
			}
			return p, true
		}
		Logger().Debug("ignoring unsupported kind tag", zap.String("kind", name))
	}
	if enum := enumCategories(tags); enum != nil {
		return Plan{Kind: KindStr, Source: PlanImplied, Enum: enum}, true
	}
	if tags.Has("unit") {
		return Plan{Kind: KindNumber, Source: PlanImplied}, true
	}
	if tags.Has("tz") {
		return Plan{Kind: KindDateTime, Source: PlanImplied}, true
	}
	return Plan{}, false
}

func enumCategories(tags Tags) []string {
	s, ok := tags.Str("enum")
	if !ok {
		return nil
	}
	return strings.Split(s, ",")
}
