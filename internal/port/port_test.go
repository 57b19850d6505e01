package port

import "testing"

// fakeLine is an in-memory Line for exercising Driver without hardware.
type fakeLine struct {
	level     bool
	isOutput  bool
	outCalls  int
	inCalls   int
}

func (l *fakeLine) Out()          { l.isOutput = true; l.outCalls++ }
func (l *fakeLine) In()           { l.isOutput = false; l.inCalls++ }
func (l *fakeLine) High()         { l.level = true }
func (l *fakeLine) Low()          { l.level = false }
func (l *fakeLine) Value() bool   { return l.level }

func newTestDriver() (*Driver, *[DataLines]*fakeLine, *[StatusLines]*fakeLine, *[ControlLines]*fakeLine, *fakeLine) {
	var data [DataLines]Line
	var dataPtrs [DataLines]*fakeLine
	for i := range data {
		f := &fakeLine{}
		dataPtrs[i] = f
		data[i] = f
	}
	var status [StatusLines]Line
	var statusPtrs [StatusLines]*fakeLine
	for i := range status {
		f := &fakeLine{}
		statusPtrs[i] = f
		status[i] = f
	}
	var control [ControlLines]Line
	var controlPtrs [ControlLines]*fakeLine
	for i := range control {
		f := &fakeLine{}
		controlPtrs[i] = f
		control[i] = f
	}
	led := &fakeLine{}
	return New(data, status, control, led), &dataPtrs, &statusPtrs, &controlPtrs, led
}

func TestWriteDataSetsEachLine(t *testing.T) {
	d, data, _, _, _ := newTestDriver()
	d.WriteData(0b10110001)
	for i := 0; i < DataLines; i++ {
		want := (0b10110001>>uint(i))&1 != 0
		if data[i].level != want {
			t.Fatalf("data line %d = %v, want %v", i, data[i].level, want)
		}
	}
}

func TestControlPolarityRoundTrip(t *testing.T) {
	d, _, _, _, _ := newTestDriver()
	for b := 0; b < 16; b++ {
		d.WriteControl(byte(b))
		if got := d.ReadControl(); got != byte(b) {
			t.Fatalf("WriteControl(%#x) then ReadControl() = %#x, want %#x", b, got, b)
		}
	}
}

func TestReadStatusInvertsBusy(t *testing.T) {
	d, _, status, _, _ := newTestDriver()
	// All status lines low: raw=0, busy bit (status[4], bit7) low -> inverted to 1.
	if got := d.ReadStatus(); got&0x80 == 0 {
		t.Fatalf("ReadStatus() = %#x, want busy bit set when raw busy line is low", got)
	}
	status[4].level = true
	if got := d.ReadStatus(); got&0x80 != 0 {
		t.Fatalf("ReadStatus() = %#x, want busy bit clear when raw busy line is high", got)
	}
}

func TestActivateDrivesInitialState(t *testing.T) {
	d, data, status, control, led := newTestDriver()
	d.Activate()
	for i, l := range data {
		if !l.isOutput || l.level {
			t.Fatalf("data line %d not configured as output-low", i)
		}
	}
	for i, l := range status {
		if l.isOutput || !l.level {
			t.Fatalf("status line %d = (out=%v level=%v), want (false,true) — input with pull-up enabled", i, l.isOutput, l.level)
		}
	}
	for i, l := range control {
		if !l.isOutput || l.level {
			t.Fatalf("control line %d = (out=%v level=%v), want (true,false)", i, l.isOutput, l.level)
		}
	}
	if !led.isOutput || !led.level {
		t.Fatal("LED not driven high/output on activate")
	}
}

func TestDeactivateUndrivesBus(t *testing.T) {
	d, data, status, control, led := newTestDriver()
	d.Activate()
	d.Deactivate()
	for i, l := range data {
		if l.isOutput || l.level {
			t.Fatalf("data line %d = (out=%v level=%v), want (false,false)", i, l.isOutput, l.level)
		}
	}
	for i, l := range status {
		if l.isOutput || l.level {
			t.Fatalf("status line %d = (out=%v level=%v), want (false,false) — input with pull-up disabled", i, l.isOutput, l.level)
		}
	}
	for i, l := range control {
		if l.isOutput || l.level {
			t.Fatalf("control line %d = (out=%v level=%v), want (false,false)", i, l.isOutput, l.level)
		}
	}
	if led.isOutput || led.level {
		t.Fatal("LED not turned off/input on deactivate")
	}
}

func TestInvertStrobeTogglesStrobeAndLED(t *testing.T) {
	d, _, _, control, led := newTestDriver()
	d.Activate()
	ledBefore := led.level
	strobeBefore := d.ReadControl() & 0x01
	d.InvertStrobe()
	if led.level == ledBefore {
		t.Fatal("InvertStrobe did not toggle LED")
	}
	if got := d.ReadControl() & 0x01; got == strobeBefore {
		t.Fatal("InvertStrobe did not toggle STROBE")
	}
	_ = control
}
