package projection

import "time"

// Metadata captures persistence timestamps shared by projections.
// It is never rendered on the wire.
type Metadata struct {
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Touch returns metadata for a write at now, keeping the creation time of prev when present.
func Touch(prev *Metadata, now time.Time) Metadata {
	if prev == nil || prev.CreatedAt.IsZero() {
		return Metadata{CreatedAt: now, UpdatedAt: now}
	}
	return Metadata{CreatedAt: prev.CreatedAt, UpdatedAt: now}
}
