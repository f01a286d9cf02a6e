// Package policy classifies tracked property versions against the desired
// (latest, minimum) bounds.
package policy

import (
	"fmt"
	"strings"

	"github.com/harness/pomwatch/module/pom/descriptor"
	"github.com/harness/pomwatch/util/common/errors"
)

// Tier is the staleness classification of one property value.
type Tier int

const (
	Unknown Tier = iota
	Missing
	BelowMinimum
	BelowLatest
	UpToDate
)

var tierNames = map[Tier]string{
	Unknown:      "unknown",
	Missing:      "missing",
	BelowMinimum: "below-minimum",
	BelowLatest:  "below-latest",
	UpToDate:     "up-to-date",
}

// badge colours of the bootstrap theme
var tierColors = map[Tier]string{
	Unknown:      "light",
	Missing:      "secondary",
	BelowMinimum: "danger",
	BelowLatest:  "warning",
	UpToDate:     "success",
}

func (t Tier) String() string {
	if s, ok := tierNames[t]; ok {
		return s
	}
	return fmt.Sprintf("tier(%d)", int(t))
}

// Color returns the badge colour used to render the tier.
func (t Tier) Color() string {
	if c, ok := tierColors[t]; ok {
		return c
	}
	return tierColors[Unknown]
}

// MarshalText renders the tier by name in JSON output.
func (t Tier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Rule is the desired version window of one property.
type Rule struct {
	Property string `yaml:"property" toml:"property" json:"property"`
	Latest   string `yaml:"latest" toml:"latest" json:"latest"`
	Minimum  string `yaml:"minimum" toml:"minimum" json:"minimum"`
}

type bounds struct {
	rule    Rule
	latest  *Version
	minimum *Version
}

// Policy is an ordered, read-only set of rules.
type Policy struct {
	rules  []Rule
	bounds map[string]bounds
}

// New validates rules and builds a Policy. Property names must be unique,
// both bounds must parse and minimum must not exceed latest.
func New(rules []Rule) (*Policy, error) {
	p := &Policy{
		rules:  make([]Rule, 0, len(rules)),
		bounds: make(map[string]bounds, len(rules)),
	}
	for i, r := range rules {
		field := fmt.Sprintf("policy[%d]", i)
		r.Property = strings.TrimSpace(r.Property)
		if r.Property == "" {
			return nil, errors.NewValidationError(field, "property name cannot be empty")
		}
		if _, dup := p.bounds[r.Property]; dup {
			return nil, errors.NewValidationError(field, fmt.Sprintf("duplicate property %q", r.Property))
		}
		latest, err := ParseVersion(r.Latest)
		if err != nil {
			return nil, errors.NewValidationError(field+".latest", err.Error())
		}
		minimum, err := ParseVersion(r.Minimum)
		if err != nil {
			return nil, errors.NewValidationError(field+".minimum", err.Error())
		}
		if latest.LessThan(minimum) {
			return nil, errors.NewValidationError(field,
				fmt.Sprintf("minimum %s is greater than latest %s", r.Minimum, r.Latest))
		}
		p.rules = append(p.rules, r)
		p.bounds[r.Property] = bounds{rule: r, latest: latest, minimum: minimum}
	}
	return p, nil
}

// Rules returns a copy of the rules in configured order.
func (p *Policy) Rules() []Rule {
	out := make([]Rule, len(p.rules))
	copy(out, p.rules)
	return out
}

// Properties returns the tracked property names in configured order.
func (p *Policy) Properties() []string {
	names := make([]string, 0, len(p.rules))
	for _, r := range p.rules {
		names = append(names, r.Property)
	}
	return names
}

// Lookup returns the rule for a property.
func (p *Policy) Lookup(property string) (Rule, bool) {
	b, ok := p.bounds[property]
	return b.rule, ok
}

// Classify places value into a tier. Unknown properties win over missing
// values; only a strictly lower version drops to a lower tier. A value with
// no numeric component orders below every version.
func (p *Policy) Classify(property, value string) Tier {
	b, ok := p.bounds[property]
	if !ok {
		return Unknown
	}
	if value == descriptor.MissingValue {
		return Missing
	}
	v, err := ParseVersion(value)
	if err != nil {
		return BelowMinimum
	}
	if v.LessThan(b.minimum) {
		return BelowMinimum
	}
	if v.LessThan(b.latest) {
		return BelowLatest
	}
	return UpToDate
}
