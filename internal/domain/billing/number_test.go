package billing

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateBillNumber(t *testing.T) {
	t.Run("matches the BILL-timestamp-suffix format", func(t *testing.T) {
		now := time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC)
		number := GenerateBillNumber(now)

		require.Regexp(t, regexp.MustCompile(`^BILL-20250314150926-\d{4}$`), number)
	})

	t.Run("suffix is always four digits", func(t *testing.T) {
		for i := 0; i < 100; i++ {
			number := GenerateBillNumber(time.Now())
			assert.Len(t, number, len("BILL-")+14+1+4)
		}
	})

	t.Run("ten thousand numbers in one second via regeneration", func(t *testing.T) {
		// The suffix space is exactly 10^4 per second, so uniqueness comes
		// from the caller's check-and-retry loop. Filling the whole space
		// within a single second must still terminate.
		now := time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC)
		used := make(map[string]bool)
		for i := 0; i < 10000; i++ {
			number := GenerateBillNumber(now)
			for used[number] {
				number = GenerateBillNumber(now)
			}
			used[number] = true
		}
		assert.Len(t, used, 10000)
	})
}
