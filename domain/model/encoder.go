package model

import (
	"io"
	"strings"
)

// Encode renders g as Zinc text. Parsing the result yields a grid equal to g.
func Encode(g *Grid) string {
	var sb strings.Builder
	appendGrid(&sb, g)
	return sb.String()
}

// WriteZinc writes g as Zinc text to w.
func (g *Grid) WriteZinc(w io.Writer) error {
	_, err := io.WriteString(w, Encode(g))
	return err
}

func appendGrid(sb *strings.Builder, g *Grid) {
	if !g.meta.Has("ver") {
		sb.WriteString(`ver:"` + Version3 + `"`)
		if g.meta.Len() > 0 {
			sb.WriteByte(' ')
		}
	}
	g.meta.appendZinc(sb)
	sb.WriteByte('\n')

	for i, c := range g.columns {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(c.name)
		if c.tags.Len() > 0 {
			sb.WriteByte(' ')
			c.tags.appendZinc(sb)
		}
	}
	sb.WriteByte('\n')

	// A lone empty field would read back as a blank line, so single column
	// grids spell Null out.
	explicitNull := len(g.columns) == 1
	for row := range g.rows {
		for i, c := range g.columns {
			if i > 0 {
				sb.WriteByte(',')
			}
			v := c.values[row]
			if v.IsNull() && !explicitNull {
				continue
			}
			v.appendZinc(sb)
		}
		sb.WriteByte('\n')
	}
}
