package app

import "time"

// TickMsg triggers a frame update: positions are recomputed from scratch.
type TickMsg time.Time
