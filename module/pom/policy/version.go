package policy

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// leadingNumeric captures the dotted numeric prefix of a Maven version.
// Whatever follows it (".RELEASE", "-SNAPSHOT", "-jre") is a qualifier.
var leadingNumeric = regexp.MustCompile(`^[vV]?(\d+(?:\.\d+)*)`)

// Version is a Maven-style version reduced to its numeric components.
// The first three components are held as a semantic version, any further
// components are compared afterwards in order.
type Version struct {
	original string
	core     *semver.Version
	extra    []uint64
}

// ParseVersion parses s. Missing components count as zero, so "12" and
// "12.0.0" are equal.
func ParseVersion(s string) (*Version, error) {
	trimmed := strings.TrimSpace(s)
	m := leadingNumeric.FindStringSubmatch(trimmed)
	if m == nil {
		return nil, fmt.Errorf("invalid version %q: no numeric component", s)
	}

	parts := strings.Split(m[1], ".")
	nums := make([]uint64, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.ParseUint(p, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid version %q: %w", s, err)
		}
		nums = append(nums, n)
	}
	for len(nums) < 3 {
		nums = append(nums, 0)
	}

	return &Version{
		original: s,
		core:     semver.New(nums[0], nums[1], nums[2], "", ""),
		extra:    nums[3:],
	}, nil
}

// Compare returns -1, 0 or 1. Qualifiers take no part in ordering.
func (v *Version) Compare(o *Version) int {
	if c := v.core.Compare(o.core); c != 0 {
		return c
	}
	n := len(v.extra)
	if len(o.extra) > n {
		n = len(o.extra)
	}
	for i := 0; i < n; i++ {
		a, b := componentAt(v.extra, i), componentAt(o.extra, i)
		if a < b {
			return -1
		}
		if a > b {
			return 1
		}
	}
	return 0
}

// LessThan reports whether v orders strictly before o.
func (v *Version) LessThan(o *Version) bool {
	return v.Compare(o) < 0
}

func (v *Version) String() string {
	return v.original
}

func componentAt(nums []uint64, i int) uint64 {
	if i < len(nums) {
		return nums[i]
	}
	return 0
}
