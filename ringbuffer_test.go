package netspeed

import "testing"

func TestRingBufferBounded(t *testing.T) {
	rb := newRingBuffer[Speed](2)
	rb.add(Speed{UploadBytesPerSec: 1})
	rb.add(Speed{UploadBytesPerSec: 2})
	rb.add(Speed{UploadBytesPerSec: 3})

	if rb.len() != 2 {
		t.Fatalf("expected len 2, got %d", rb.len())
	}
	items := rb.all()
	if items[0].UploadBytesPerSec != 2 || items[1].UploadBytesPerSec != 3 {
		t.Errorf("expected oldest-first eviction leaving {2,3}, got %+v", items)
	}
}

func TestRingBufferOrder(t *testing.T) {
	rb := newRingBuffer[Speed](5)
	for i := 1; i <= 3; i++ {
		rb.add(Speed{UploadBytesPerSec: uint64(i)})
	}
	items := rb.all()
	for i, s := range items {
		if s.UploadBytesPerSec != uint64(i+1) {
			t.Errorf("position %d: expected %d, got %d", i, i+1, s.UploadBytesPerSec)
		}
	}
}

func TestRingBufferEmpty(t *testing.T) {
	rb := newRingBuffer[Speed](4)
	if rb.len() != 0 {
		t.Error("new buffer should be empty")
	}
	if items := rb.all(); len(items) != 0 {
		t.Error("all() on empty buffer should return empty slice")
	}
}

func TestRingBufferClear(t *testing.T) {
	rb := newRingBuffer[Speed](3)
	rb.add(Speed{UploadBytesPerSec: 1})
	rb.add(Speed{UploadBytesPerSec: 2})
	rb.clear()

	if rb.len() != 0 {
		t.Fatalf("expected empty buffer after clear, got len %d", rb.len())
	}
	rb.add(Speed{UploadBytesPerSec: 9})
	items := rb.all()
	if len(items) != 1 || items[0].UploadBytesPerSec != 9 {
		t.Errorf("buffer should be reusable after clear, got %+v", items)
	}
}

func TestRingBufferMinimumCapacity(t *testing.T) {
	rb := newRingBuffer[Speed](0)
	rb.add(Speed{UploadBytesPerSec: 7})
	if rb.len() != 1 {
		t.Error("zero capacity should clamp to one slot")
	}
}
