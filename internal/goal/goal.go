package goal

import (
	"time"

	"github.com/google/uuid"
)

// Goal is a savings target with a priority weight used to allocate surplus
// balance. CurrentAmount only ever moves toward TargetAmount and never past it.
type Goal struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Name          string
	TargetAmount  int64 // in cents, immutable after creation
	CurrentAmount int64 // in cents
	Priority      int   // 0 means the goal never receives distribution
	CreatedAt     time.Time
}

// Remaining reports the capacity left before the goal is fully funded.
func (g *Goal) Remaining() int64 {
	return g.TargetAmount - g.CurrentAmount
}
