// Package playback feeds rendered audio to an output device callback,
// looping over a selected range of the current buffer.
package playback

import (
	"sync/atomic"
)

// loop is an immutable view of a rendered buffer plus the read cursor for
// that view. Publishing a new loop replaces the cursor as well, so the
// reader never observes a cursor that belongs to a different buffer.
type loop struct {
	samples []float32
	start   int
	end     int
	pos     atomic.Int64
}

// Looper hands out fixed-size blocks of a rendered buffer, wrapping from
// the loop end back to the loop start. Read is meant for the audio
// callback goroutine; every other method may be called concurrently with
// it. Read never blocks and never allocates.
type Looper struct {
	current atomic.Pointer[loop]
	playing atomic.Bool
}

// NewLooper returns a paused looper without audio.
func NewLooper() *Looper {
	return &Looper{}
}

// Swap publishes samples as the new buffer, loops over [loopStart, loopEnd)
// and moves the cursor to loopStart. The bounds are clamped to the buffer.
func (l *Looper) Swap(samples []float64, loopStart, loopEnd int) {
	buf := make([]float32, len(samples))
	for i, v := range samples {
		buf[i] = float32(v)
	}

	l.publish(buf, loopStart, loopEnd)
}

// SetLoop moves the loop within the current buffer and rewinds to its
// start. It reports false when no buffer has been published.
func (l *Looper) SetLoop(loopStart, loopEnd int) bool {
	cur := l.current.Load()
	if cur == nil {
		return false
	}

	l.publish(cur.samples, loopStart, loopEnd)

	return true
}

func (l *Looper) publish(buf []float32, loopStart, loopEnd int) {
	loopStart = min(max(loopStart, 0), len(buf))
	loopEnd = min(max(loopEnd, loopStart), len(buf))

	next := &loop{samples: buf, start: loopStart, end: loopEnd}
	next.pos.Store(int64(loopStart))
	l.current.Store(next)
}

// Read fills dst with the next block and returns len(dst). dst is filled
// with silence while paused or when the loop is empty.
func (l *Looper) Read(dst []float32) int {
	cur := l.current.Load()
	if !l.playing.Load() || cur == nil || cur.end <= cur.start {
		clear(dst)
		return len(dst)
	}

	pos := int(cur.pos.Load())
	if pos < cur.start || pos >= cur.end {
		pos = cur.start
	}

	filled := 0
	for filled < len(dst) {
		n := copy(dst[filled:], cur.samples[pos:cur.end])
		filled += n
		pos += n

		if pos >= cur.end {
			pos = cur.start
		}
	}

	cur.pos.Store(int64(pos))

	return len(dst)
}

// Play resumes output.
func (l *Looper) Play() { l.playing.Store(true) }

// Pause silences output without moving the cursor.
func (l *Looper) Pause() { l.playing.Store(false) }

// Toggle flips between playing and paused and returns the new state.
func (l *Looper) Toggle() bool {
	for {
		old := l.playing.Load()
		if l.playing.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

// Playing reports whether output is running.
func (l *Looper) Playing() bool { return l.playing.Load() }

// Rewind moves the cursor back to the loop start.
func (l *Looper) Rewind() {
	if cur := l.current.Load(); cur != nil {
		cur.pos.Store(int64(cur.start))
	}
}

// Position returns the cursor as an index into the current buffer.
func (l *Looper) Position() int {
	cur := l.current.Load()
	if cur == nil {
		return 0
	}

	return int(cur.pos.Load())
}

// Loop returns the current loop bounds and buffer length.
func (l *Looper) Loop() (start, end, length int) {
	cur := l.current.Load()
	if cur == nil {
		return 0, 0, 0
	}

	return cur.start, cur.end, len(cur.samples)
}

// Progress maps the cursor back into the source file. startIndex is the
// source sample the buffer was rendered from, stretch the time factor it
// was rendered with and fileLen the source length. The result is a
// fraction of the file.
func (l *Looper) Progress(startIndex int, stretch float64, fileLen int) float64 {
	if fileLen <= 0 || stretch <= 0 {
		return 0
	}

	src := float64(startIndex) + float64(l.Position())/stretch

	return src / float64(fileLen)
}
