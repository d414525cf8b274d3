package alsframe

import "testing"

func TestChannelBufferFrameView(t *testing.T) {
	c := NewChannelBuffer(8, 3)
	if len(c.Raw) != 11 {
		t.Fatalf("len(Raw) = %d, want 11", len(c.Raw))
	}
	view := c.Frame(c.Raw, 8)
	if len(view) != 8 {
		t.Fatalf("len(Frame view) = %d, want 8", len(view))
	}
}

func TestAdvanceHistoryCarriesFrameTail(t *testing.T) {
	c := NewChannelBuffer(8, 3)
	for i := range c.Raw {
		c.Raw[i] = int32(i)
	}
	// Current frame occupies indices [3, 11): values 3..10. The last 3
	// samples of the frame (8, 9, 10) should become the next frame's
	// leading history.
	c.AdvanceHistory(8)
	want := []int32{8, 9, 10}
	for i, w := range want {
		if c.Raw[i] != w {
			t.Errorf("Raw[%d] = %d, want %d", i, c.Raw[i], w)
		}
	}
}

func TestAdvanceHistoryShortFrame(t *testing.T) {
	c := NewChannelBuffer(8, 3)
	for i := range c.Raw {
		c.Raw[i] = int32(i)
	}
	// A 2-sample terminal frame occupies [3, 5): values 3, 4. There aren't
	// enough frame samples to fill all 3 history slots; AdvanceHistory must
	// not panic or read before index 0.
	c.AdvanceHistory(2)
}
