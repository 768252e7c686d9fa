package control

import (
	"fmt"
	"sync"
)

// Store guards the single State shared by the MIDI listener, keyboard
// handlers and the render loop. Every method takes one lock exactly once
// and never calls out while holding it.
type Store struct {
	mu    sync.Mutex
	state State
}

// NewStore returns a Store holding initial, clamped to legal ranges.
func NewStore(initial State) *Store {
	initial.normalize()
	return &Store{state: initial}
}

// Snapshot returns a consistent copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Update applies fn to the state and clamps the result before committing.
// fn runs under the store lock and must not block or call back into s.
func (s *Store) Update(fn func(*State)) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state
	fn(&next)
	next.normalize()
	s.state = next

	return next
}

// SetMode activates m. Undefined modes are rejected.
func (s *Store) SetMode(m Mode) error {
	if !m.Valid() {
		return fmt.Errorf("control: invalid mode %d", uint8(m))
	}
	s.Update(func(st *State) { st.Mode = m })
	return nil
}

// SetIntensity sets intensity, clamped to [LevelMin, LevelMax].
func (s *Store) SetIntensity(v float64) {
	s.Update(func(st *State) { st.Intensity = v })
}

// AdjustIntensity adds delta to intensity, clamped.
func (s *Store) AdjustIntensity(delta float64) {
	s.Update(func(st *State) { st.Intensity += delta })
}

// SetDilation sets time dilation, clamped to [LevelMin, LevelMax].
func (s *Store) SetDilation(v float64) {
	s.Update(func(st *State) { st.Dilation = v })
}

// AdjustDilation adds delta to dilation, clamped.
func (s *Store) AdjustDilation(delta float64) {
	s.Update(func(st *State) { st.Dilation += delta })
}

// SetDecay sets the envelope decay factor, clamped to [0,1].
func (s *Store) SetDecay(v float64) {
	s.Update(func(st *State) { st.Decay = v })
}

// SetReset asserts or clears the time reset.
func (s *Store) SetReset(on bool) {
	s.Update(func(st *State) { st.Reset = on })
}

// SetBackward sets the time direction.
func (s *Store) SetBackward(backward bool) {
	s.Update(func(st *State) { st.Backward = backward })
}

// ToggleBackward flips the time direction.
func (s *Store) ToggleBackward() {
	s.Update(func(st *State) { st.Backward = !st.Backward })
}

// SetChannel restricts MIDI handling to ch (0-15) or Omni.
func (s *Store) SetChannel(ch int) {
	s.Update(func(st *State) { st.Channel = ch })
}
