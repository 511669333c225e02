package metrics

// DefaultHistoryCapacity bounds chart history per series.
const DefaultHistoryCapacity = 3000

// History is a bounded ring buffer that keeps the most recent items.
// It is not safe for concurrent use.
type History[T any] struct {
	buf   []T
	start int
	n     int
}

func NewHistory[T any](capacity int) *History[T] {
	if capacity <= 0 {
		capacity = DefaultHistoryCapacity
	}
	return &History[T]{buf: make([]T, capacity)}
}

// Append adds v, overwriting the oldest item when full.
func (h *History[T]) Append(v T) {
	if h.n < len(h.buf) {
		h.buf[(h.start+h.n)%len(h.buf)] = v
		h.n++
		return
	}
	h.buf[h.start] = v
	h.start = (h.start + 1) % len(h.buf)
}

// Items returns a copy of the buffered items, oldest first.
func (h *History[T]) Items() []T {
	out := make([]T, h.n)
	for i := 0; i < h.n; i++ {
		out[i] = h.buf[(h.start+i)%len(h.buf)]
	}
	return out
}

// Last returns the newest item.
func (h *History[T]) Last() (T, bool) {
	var zero T
	if h.n == 0 {
		return zero, false
	}
	return h.buf[(h.start+h.n-1)%len(h.buf)], true
}

func (h *History[T]) Len() int { return h.n }
func (h *History[T]) Cap() int { return len(h.buf) }

func (h *History[T]) Clear() {
	h.start = 0
	h.n = 0
}
