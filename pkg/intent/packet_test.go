package intent

import "testing"

func TestPackUnpackRoundTrip(t *testing.T) {
	p := Packet{
		IntentID: IDMove,
		ConfQ15:  27851,
		Aux:      NewAuxFromSlice([]int16{30, -5, 0}),
	}
	buf := p.Pack()
	if len(buf) != Size {
		t.Fatalf("expected packed size %d, got %d", Size, len(buf))
	}

	got := Unpack(buf[:])
	if got != p {
		t.Fatalf("round trip mismatch: got %+v want %+v", got, p)
	}
}

func TestNewAuxFromSliceZeroPads(t *testing.T) {
	aux := NewAuxFromSlice([]int16{30})
	if aux[0] != 30 {
		t.Fatalf("expected aux[0]=30, got %d", aux[0])
	}
	for i := 1; i < AuxLen; i++ {
		if aux[i] != 0 {
			t.Fatalf("expected aux[%d]=0, got %d", i, aux[i])
		}
	}
}

func TestNewAuxFromSliceTruncatesOverflow(t *testing.T) {
	long := make([]int16, AuxLen+5)
	for i := range long {
		long[i] = int16(i + 1)
	}
	aux := NewAuxFromSlice(long)
	for i := 0; i < AuxLen; i++ {
		if aux[i] != int16(i+1) {
			t.Fatalf("aux[%d]: got %d want %d", i, aux[i], i+1)
		}
	}
}
