package common

import (
	"github.com/inhies/go-bytesize"
)

// HumanSize formats a byte count for log output, e.g. "1.50KB".
func HumanSize(n int) string {
	return bytesize.New(float64(n)).String()
}
