package order

import (
	"strings"
	"time"

	"marketplace/internal/core/domain/model/kernel"
)

const (
	numberPrefix       = "ORD"
	numberTimeLayout   = "200601021504"
	numberSuffixLength = 8
)

// NewNumber builds the human readable order number: the ORD prefix, the UTC
// minute of placement and the first hex digits of the order id.
//
//	ORD202405171230a1b2c3d4
func NewNumber(id kernel.UUID, placedAt time.Time) string {
	hex := strings.ReplaceAll(id.String(), "-", "")
	return numberPrefix + placedAt.UTC().Format(numberTimeLayout) + hex[:numberSuffixLength]
}
