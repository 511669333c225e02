package metrics

import "testing"

func TestHistory_Wraps(t *testing.T) {
	h := NewHistory[int](3)
	for i := 1; i <= 5; i++ {
		h.Append(i)
	}

	items := h.Items()
	if len(items) != 3 || items[0] != 3 || items[1] != 4 || items[2] != 5 {
		t.Errorf("expected [3 4 5], got %v", items)
	}
	if h.Len() != 3 || h.Cap() != 3 {
		t.Errorf("expected len 3 cap 3, got %d %d", h.Len(), h.Cap())
	}
	if last, ok := h.Last(); !ok || last != 5 {
		t.Errorf("expected last 5, got %v %v", last, ok)
	}
}

func TestHistory_PartialFill(t *testing.T) {
	h := NewHistory[float64](10)
	h.Append(1.5)
	h.Append(2.5)

	items := h.Items()
	if len(items) != 2 || items[0] != 1.5 || items[1] != 2.5 {
		t.Errorf("expected [1.5 2.5], got %v", items)
	}
}

func TestHistory_Clear(t *testing.T) {
	h := NewHistory[int](2)
	h.Append(1)
	h.Clear()

	if h.Len() != 0 {
		t.Errorf("expected empty history, got %d", h.Len())
	}
	if _, ok := h.Last(); ok {
		t.Error("expected no last item after clear")
	}

	h.Append(7)
	if items := h.Items(); len(items) != 1 || items[0] != 7 {
		t.Errorf("expected [7], got %v", items)
	}
}

func TestHistory_DefaultCapacity(t *testing.T) {
	h := NewHistory[int](0)
	if h.Cap() != DefaultHistoryCapacity {
		t.Errorf("expected capacity %d, got %d", DefaultHistoryCapacity, h.Cap())
	}
}
