package domain

import "time"

// HasAccess decides whether a viewer may watch a video. Free videos are open
// to everyone; paid ones need a signed-in user whose expiry is in the future.
func HasAccess(anonymous bool, videoIsPaid bool, expiry *time.Time, now time.Time) bool {
	if !videoIsPaid {
		return true
	}
	if anonymous {
		return false
	}
	return expiry != nil && expiry.After(now)
}
