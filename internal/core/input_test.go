package core

import "testing"

func TestInputFrameKeepsPressOrder(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionUp)
	f.Set(ActionLeft)
	f.Set(ActionUp) // repeat ignored

	got := f.Actions()
	if len(got) != 2 || got[0] != ActionUp || got[1] != ActionLeft {
		t.Fatalf("Actions() = %v, expected [Up Left]", got)
	}
	if !f.Has(ActionLeft) || f.Has(ActionDown) {
		t.Error("Has() does not match recorded actions")
	}
}

func TestInputFrameIgnoresNone(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionNone)
	if f.Len() != 0 {
		t.Errorf("ActionNone should not be recorded, Len() = %d", f.Len())
	}
}

func TestInputFrameClearAndClone(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionPause)

	clone := f.Clone()
	f.Clear()

	if f.Len() != 0 {
		t.Error("Clear() should empty the frame")
	}
	if !clone.Has(ActionPause) {
		t.Error("Clone should not share storage with the original")
	}
}

func TestZeroInputFrame(t *testing.T) {
	var f InputFrame
	if f.Has(ActionUp) {
		t.Error("zero frame should have no actions")
	}
	f.Set(ActionDown)
	if !f.Has(ActionDown) {
		t.Error("zero frame should accept actions")
	}
}

func TestActionIsDirectional(t *testing.T) {
	for _, a := range []Action{ActionUp, ActionDown, ActionLeft, ActionRight} {
		if !a.IsDirectional() {
			t.Errorf("%v should be directional", a)
		}
	}
	for _, a := range []Action{ActionNone, ActionConfirm, ActionPause, ActionRestart} {
		if a.IsDirectional() {
			t.Errorf("%v should not be directional", a)
		}
	}
}

func TestParseColor(t *testing.T) {
	c, ok := ParseColor(" Orange ")
	if !ok || c != ColorOrange {
		t.Errorf("ParseColor(\"Orange\") = %v, %v", c, ok)
	}
	if _, ok := ParseColor("chartreuse"); ok {
		t.Error("unknown color names should not parse")
	}
}
