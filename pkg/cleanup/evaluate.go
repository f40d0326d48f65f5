package cleanup

import (
	"time"

	"github.com/pelagos-io/remora/pkg/common"
)

// IsEligible decides whether an image may be removed under the given policy.
// An image without a creation date can't be aged, so it is never eligible.
func IsEligible(image ImageRecord, policy common.CleanupPolicy, now time.Time) bool {
	if image.CreationDate.IsZero() {
		return false
	}
	if now.Sub(image.CreationDate) <= policy.MaxAge {
		return false
	}
	return !common.MatchesAny(image.Tags, policy.ExcludedTags)
}
