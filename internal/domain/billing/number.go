package billing

import (
	"fmt"
	"math/rand"
	"time"
)

// GenerateBillNumber builds a bill number of the form
// BILL-<YYYYMMDDHHMMSS>-<NNNN> where NNNN is a random 4-digit suffix.
// Uniqueness is not guaranteed by construction; callers must check the
// generated number against existing bills and retry on collision.
func GenerateBillNumber(now time.Time) string {
	return fmt.Sprintf("BILL-%s-%04d", now.Format("20060102150405"), rand.Intn(10000))
}
