package event

// MemSource serves events held in memory.
type MemSource struct {
	Events []Event
}

// NewMemSource returns a source over evts. Event indices are set to their
// position in evts.
func NewMemSource(evts []Event) *MemSource {
	for i := range evts {
		evts[i].Index = int64(i)
	}
	return &MemSource{Events: evts}
}

func (s *MemSource) Len() int64 { return int64(len(s.Events)) }

func (s *MemSource) Read(start, stop int64) ([]Event, error) {
	if err := checkRange(start, stop, s.Len()); err != nil {
		return nil, err
	}
	out := make([]Event, stop-start)
	copy(out, s.Events[start:stop])
	return out, nil
}

func (s *MemSource) Close() error { return nil }
