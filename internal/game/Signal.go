package game

// signal is a single-slot event. Raising it twice before a drain is the same
// as raising it once; draining clears it.
type signal struct {
	raised bool
}

func (s *signal) raise() {
	s.raised = true
}

func (s *signal) drain() bool {
	raised := s.raised
	s.raised = false
	return raised
}
