package trade

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"time"
)

// ReferencePattern matches human-facing order references such as CO-240101-4821
var ReferencePattern = regexp.MustCompile(`^CO-\d{6}-\d{4}$`)

// ReferenceGenerator produces an order reference for the given instant
type ReferenceGenerator func(now time.Time) string

// GenerateReference builds "CO-YYMMDD-NNNN" from the UTC date and a random
// suffix in [1000, 9999]. Collisions are not checked.
func GenerateReference(now time.Time) string {
	return fmt.Sprintf("CO-%s-%d", now.UTC().Format("060102"), 1000+rand.IntN(9000))
}
