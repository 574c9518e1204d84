package ics

import (
	"crypto/md5"
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
)

// RandomUID returns a fresh "<uuid>@domain" identifier.  Use it when the
// invite never has to be correlated with a later update or cancellation.
func RandomUID(domain string) string {
	return uuid.NewString() + "@" + domain
}

// StableUID derives "<md5 hex of seed>@domain".  The same seed and domain
// always give the same UID, so reprocessing one interview event produces an
// update of the existing calendar entry instead of a duplicate.
func StableUID(seed, domain string) (string, error) {
	if seed == "" {
		return "", validationError("seed", "stable uid requires a non-empty seed")
	}
	digest := md5.Sum([]byte(seed))
	return hex.EncodeToString(digest[:]) + "@" + domain, nil
}

// StableUIDFromFields is StableUID over several identifying fields, for
// example summary, organizer email and formatted start.  Fields are trimmed
// and joined with "|"; at least one must be non-blank.
func StableUIDFromFields(domain string, fields ...string) (string, error) {
	parts := make([]string, len(fields))
	blank := true
	for i, f := range fields {
		parts[i] = strings.TrimSpace(f)
		if parts[i] != "" {
			blank = false
		}
	}
	if blank {
		return "", validationError("seed", "stable uid requires at least one non-blank field")
	}
	return StableUID(strings.Join(parts, "|"), domain)
}
