package state

// Recorder captures one gesture at a time. It is Idle until a gesture starts
// on a dot and Recording until the gesture ends or is abandoned.
//
// A Recorder is owned by a single event loop and is not safe for concurrent use.
type Recorder struct {
	active    Path
	recording bool
}

func (r *Recorder) Recording() bool { return r.recording }

// Active returns a copy of the in-progress path.
func (r *Recorder) Active() Path { return r.active.Clone() }

// Start begins a gesture at hit. A miss leaves the recorder Idle. It reports
// whether the active path changed.
func (r *Recorder) Start(hit Dot, ok bool) bool {
	if !ok {
		return false
	}
	r.recording = true
	r.active = Path{hit}
	return true
}

// Move extends the active path with hit unless that intersection is already
// part of the path. A dot is never reused within one path, even after the
// pointer has moved away from it.
func (r *Recorder) Move(hit Dot, ok bool) bool {
	if !r.recording || !ok {
		return false
	}
	if r.active.Contains(hit) {
		return false
	}
	r.active = append(r.active, hit)
	return true
}

// Finish ends the gesture and returns the recorded path when it is complete.
// The active buffer is cleared in every case.
func (r *Recorder) Finish() (Path, bool) {
	path := r.active
	r.Reset()
	if !path.Complete() {
		return nil, false
	}
	return path, true
}

// Reset drops the active gesture without producing a path.
func (r *Recorder) Reset() {
	r.recording = false
	r.active = nil
}
