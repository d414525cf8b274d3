package alsframe

import "testing"

func TestChannelOrderIdentity(t *testing.T) {
	o := NewChannelOrder(4)
	if !o.IsIdentity() {
		t.Fatal("NewChannelOrder should start as the identity permutation")
	}
	for i := 0; i < o.Len(); i++ {
		if o.Apply(i) != i {
			t.Errorf("Apply(%d) = %d, want %d", i, o.Apply(i), i)
		}
	}
}

func TestApplyCompressionLevel(t *testing.T) {
	golden := []struct {
		level          int
		wantBGMC       bool
		wantJoint      bool
		wantMaxOrder   int
		wantCRCEnabled bool
	}{
		{level: 0, wantBGMC: false, wantJoint: false, wantMaxOrder: 4, wantCRCEnabled: false},
		{level: 1, wantBGMC: false, wantJoint: true, wantMaxOrder: 10, wantCRCEnabled: true},
		{level: 2, wantBGMC: true, wantJoint: true, wantMaxOrder: 32, wantCRCEnabled: true},
	}
	for _, g := range golden {
		var c Config
		c.ApplyCompressionLevel(g.level)
		if c.BGMC != g.wantBGMC {
			t.Errorf("level %d: BGMC = %v, want %v", g.level, c.BGMC, g.wantBGMC)
		}
		if c.JointStereo != g.wantJoint {
			t.Errorf("level %d: JointStereo = %v, want %v", g.level, c.JointStereo, g.wantJoint)
		}
		if c.MaxOrder != g.wantMaxOrder {
			t.Errorf("level %d: MaxOrder = %d, want %d", g.level, c.MaxOrder, g.wantMaxOrder)
		}
		if c.CRCEnabled != g.wantCRCEnabled {
			t.Errorf("level %d: CRCEnabled = %v, want %v", g.level, c.CRCEnabled, g.wantCRCEnabled)
		}
	}
}

func TestHistoryPad(t *testing.T) {
	c := Config{MaxOrder: 32}
	if got := c.HistoryPad(); got != LTPMaxLag {
		t.Errorf("HistoryPad() = %d, want %d (LTP lag dominates)", got, LTPMaxLag)
	}
	c = Config{MaxOrder: 4096}
	if got := c.HistoryPad(); got != 4096 {
		t.Errorf("HistoryPad() = %d, want 4096 (max order dominates)", got)
	}
}
