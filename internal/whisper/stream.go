package whisper

import "iter"

// Stream is a forward-only, non-restartable sequence of segments.
//
// Use it like bufio.Scanner:
//
//	for seg, ok := s.Next(); ok; seg, ok = s.Next() { ... }
//	if err := s.Err(); err != nil { ... }
//
// or range over All.
type Stream struct {
	next    func() (Segment, bool, error)
	started bool
	done    bool
	err     error
}

// NewStream wraps a pull function. next returns ok=false once the source is
// exhausted; a non-nil error also ends the stream.
func NewStream(next func() (Segment, bool, error)) *Stream {
	return &Stream{next: next}
}

// NewSliceStream yields segments in order and then ends with err.
func NewSliceStream(segments []Segment, err error) *Stream {
	i := 0
	return NewStream(func() (Segment, bool, error) {
		if i < len(segments) {
			i++
			return segments[i-1], true, nil
		}
		return Segment{}, false, err
	})
}

// Next advances the stream.
func (s *Stream) Next() (Segment, bool) {
	if s.done {
		return Segment{}, false
	}
	s.started = true

	seg, ok, err := s.next()
	if err != nil {
		s.err = err
		s.done = true
		return Segment{}, false
	}
	if !ok {
		s.done = true
		return Segment{}, false
	}
	return seg, true
}

// Err returns the first error encountered by the stream.
func (s *Stream) Err() error {
	return s.err
}

// All returns an iterator over the remaining segments. Ranging over a stream
// that has already been started yields nothing and sets Err to
// ErrStreamConsumed. Breaking out early discards the rest of the stream so
// the underlying source is left at a clean boundary.
func (s *Stream) All() iter.Seq[Segment] {
	return func(yield func(Segment) bool) {
		if s.started {
			if s.err == nil {
				s.err = ErrStreamConsumed
			}
			return
		}
		for {
			seg, ok := s.Next()
			if !ok {
				return
			}
			if !yield(seg) {
				s.discard()
				return
			}
		}
	}
}

func (s *Stream) discard() {
	for {
		if _, ok := s.Next(); !ok {
			return
		}
	}
}
