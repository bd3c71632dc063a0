package game

// InputSource is polled once per frame for the most recently requested
// direction. Sources do not buffer: a poll consumes whatever was pending.
type InputSource interface {
	PollDirection() (Direction, bool)
}

// NoInput never requests a direction.
type NoInput struct{}

func (NoInput) PollDirection() (Direction, bool) {
	return Up, false
}
