package entities

import "time"

// BaseEntity carries the identity and audit fields shared by every aggregate.
// Embedded rather than inherited; aggregates stay plain structs.
type BaseEntity struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newBaseEntity(id string, now time.Time) BaseEntity {
	return BaseEntity{ID: id, CreatedAt: now, UpdatedAt: now}
}

func (b *BaseEntity) touch(now time.Time) {
	b.UpdatedAt = now
}
