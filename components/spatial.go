package components

// The components below are stored in the consumer-side ECS world that mirrors
// the most recent snapshot. They are float32 because they only feed rendering
// and cursor queries.

// Position represents a rendered particle's position.
type Position struct {
	X, Y float32
}

// Velocity represents a rendered particle's velocity.
type Velocity struct {
	X, Y float32
}

// Species holds a rendered particle's type index.
type Species struct {
	Type uint16
}
