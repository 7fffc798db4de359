package world

import (
	"context"
	"sync"
)

// Recorder is a Sink that keeps every write in call order. It never drops
// writes, which makes it useful for inspecting exactly what a stamper did.
type Recorder struct {
	mu       sync.Mutex
	writes   []Write
	finishes int
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) SetVoxel(pos BlockCoord, material Material, color Color) {
	r.mu.Lock()
	r.writes = append(r.writes, Write{Pos: pos, Material: material, Color: color})
	r.mu.Unlock()
}

func (r *Recorder) Finish(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.finishes++
	if r.finishes > 1 {
		return ErrSceneFinished
	}
	return nil
}

// Writes returns a copy of the recorded writes.
func (r *Recorder) Writes() []Write {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Write, len(r.writes))
	copy(out, r.writes)
	return out
}

// Finishes reports how many times Finish was called.
func (r *Recorder) Finishes() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.finishes
}

// Final collapses the write log with last-write-wins semantics.
func (r *Recorder) Final() map[BlockCoord]Write {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[BlockCoord]Write, len(r.writes))
	for _, w := range r.writes {
		out[w.Pos] = w
	}
	return out
}

// Reset discards recorded writes and finish calls.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.writes = nil
	r.finishes = 0
	r.mu.Unlock()
}
