package models

import "time"

const secondsPerDay = 24 * 60 * 60

// Timestamp returns the current instant as an RFC 3339 UTC string, the
// format used for every provenance field in the document.
func Timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// CalculateExpiry converts a key duration into an epoch-seconds expiry.
// Lifetime durations map to the NeverExpires sentinel.
func CalculateExpiry(d KeyDuration) int64 {
	return expiryFrom(d, time.Now())
}

func expiryFrom(d KeyDuration, now time.Time) int64 {
	if d.Lifetime {
		return NeverExpires
	}
	return now.Unix() + d.Days*secondsPerDay
}
