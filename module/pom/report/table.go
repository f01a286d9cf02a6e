package report

import (
	"encoding/json"

	"github.com/harness/pomwatch/module/pom/descriptor"
	"github.com/harness/pomwatch/module/pom/policy"
)

// CellKind tells the renderers how to draw a cell.
type CellKind int

const (
	// RowHeader is the artifactId cell.
	RowHeader CellKind = iota
	// Plain is the project version cell.
	Plain
	// Badge is a tracked property, coloured by tier.
	Badge
)

// Cell is one rendered value.
type Cell struct {
	Column string
	Value  string
	Kind   CellKind
	Tier   policy.Tier
}

// MarshalJSON leaves the tier out of the artifactId and version cells.
func (c Cell) MarshalJSON() ([]byte, error) {
	out := struct {
		Column string       `json:"column"`
		Value  string       `json:"value"`
		Tier   *policy.Tier `json:"tier,omitempty"`
	}{Column: c.Column, Value: c.Value}
	if c.Kind == Badge {
		tier := c.Tier
		out.Tier = &tier
	}
	return json.Marshal(out)
}

// Color returns the badge colour of the cell's tier.
func (c Cell) Color() string {
	return c.Tier.Color()
}

// Table is the tabular view shared by the HTML and terminal renderers.
type Table struct {
	Header []string `json:"header"`
	Rows   [][]Cell `json:"rows"`
}

// Columns returns the fixed column set: artifactId, version, then every
// policy property in configured order.
func Columns(p *policy.Policy) []string {
	return append([]string{descriptor.ArtifactIDField, descriptor.VersionField}, p.Properties()...)
}

// BuildTable classifies every descriptor value. The header does not depend
// on which repositories were fetched.
func BuildTable(descriptors []*descriptor.Descriptor, p *policy.Policy) Table {
	t := Table{Header: Columns(p)}
	for _, d := range descriptors {
		row := make([]Cell, 0, len(t.Header))
		for _, col := range t.Header {
			cell := Cell{Column: col, Value: d.Value(col)}
			switch col {
			case descriptor.ArtifactIDField:
				cell.Kind = RowHeader
			case descriptor.VersionField:
				cell.Kind = Plain
			default:
				cell.Kind = Badge
				cell.Tier = p.Classify(col, cell.Value)
			}
			row = append(row, cell)
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}
