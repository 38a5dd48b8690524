package draw

// Command is a single recorded draw call.
type Command interface {
	Apply(s Surface)
}

// ClearCmd clears the whole surface to transparent.
type ClearCmd struct{}

func (ClearCmd) Apply(s Surface) { s.Clear() }

func (c Circle) Apply(s Surface) { s.FillCircle(c) }

func (r Rect) Apply(s Surface) { s.FillRect(r) }

// Frame is the ordered list of draw calls produced by one tick.
type Frame []Command

// Replay issues every command of the frame on s, in order.
func (f Frame) Replay(s Surface) {
	for _, cmd := range f {
		cmd.Apply(s)
	}
}

// Circles returns the circles of the frame in draw order.
func (f Frame) Circles() []Circle {
	var out []Circle
	for _, cmd := range f {
		if c, ok := cmd.(Circle); ok {
			out = append(out, c)
		}
	}
	return out
}

// Rects returns the rectangles of the frame in draw order.
func (f Frame) Rects() []Rect {
	var out []Rect
	for _, cmd := range f {
		if r, ok := cmd.(Rect); ok {
			out = append(out, r)
		}
	}
	return out
}

// Recorder is a Surface that records the calls it receives.
type Recorder struct {
	frame Frame
}

func (r *Recorder) Clear()              { r.frame = append(r.frame, ClearCmd{}) }
func (r *Recorder) FillCircle(c Circle) { r.frame = append(r.frame, c) }
func (r *Recorder) FillRect(rc Rect)    { r.frame = append(r.frame, rc) }

// Take returns the recorded frame and starts a new one.
func (r *Recorder) Take() Frame {
	f := r.frame
	r.frame = nil
	return f
}

// Len is the number of commands recorded since the last Take.
func (r *Recorder) Len() int { return len(r.frame) }
