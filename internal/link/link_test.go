package link

import "testing"

func TestMemoryReceiveByte(t *testing.T) {
	m := NewMemory(nil)
	if _, ok := m.ReceiveByte(); ok {
		t.Fatal("expected empty link to report no byte")
	}
	m.Feed([]byte{0xAA, 0xBB})
	if got := m.BytesReceived(); got != 2 {
		t.Fatalf("BytesReceived() = %d, want 2", got)
	}
	b, ok := m.ReceiveByte()
	if !ok || b != 0xAA {
		t.Fatalf("ReceiveByte() = (%#x, %v), want (0xaa, true)", b, ok)
	}
	if got := m.BytesReceived(); got != 1 {
		t.Fatalf("BytesReceived() after pop = %d, want 1", got)
	}
}

func TestMemorySendData(t *testing.T) {
	m := NewMemory(nil)
	n, err := m.SendData([]byte{1, 2, 3})
	if err != nil || n != 3 {
		t.Fatalf("SendData() = (%d, %v), want (3, nil)", n, err)
	}
	if got := m.Sent(); len(got) != 3 || got[0] != 1 {
		t.Fatalf("Sent() = %v, want [1 2 3]", got)
	}
	if got := m.Sent(); len(got) != 0 {
		t.Fatalf("Sent() after drain = %v, want empty", got)
	}
}

func TestMemoryTaskPump(t *testing.T) {
	calls := 0
	var m *Memory
	m = NewMemory(func() { calls++; m.Feed([]byte{0x42}) })
	m.TaskPump()
	if calls != 1 {
		t.Fatalf("pump called %d times, want 1", calls)
	}
	b, ok := m.ReceiveByte()
	if !ok || b != 0x42 {
		t.Fatalf("ReceiveByte() = (%#x, %v), want (0x42, true)", b, ok)
	}
}

func TestRingOverflowDropsOldest(t *testing.T) {
	var r ring
	for i := 0; i < ringSize+3; i++ {
		r.put(byte(i))
	}
	if got := r.len(); got != ringSize {
		t.Fatalf("ring len = %d, want %d", got, ringSize)
	}
	b, _ := r.get()
	if want := byte(3); b != want {
		t.Fatalf("oldest surviving byte = %d, want %d", b, want)
	}
}
