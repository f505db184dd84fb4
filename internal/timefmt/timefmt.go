// Package timefmt is the best-effort wall-clock formatter used for progress
// logs. It is never on the correctness path: a formatting failure falls back
// to RFC3339 rather than aborting whatever is logging progress.
package timefmt

import (
	"time"

	"github.com/lestrrat-go/strftime"
)

// FormatLocal renders t using the given strftime format string.
func FormatLocal(format string, t time.Time) string {
	out, err := strftime.Format(format, t)
	if err != nil {
		return t.Format(time.RFC3339)
	}
	return out
}
