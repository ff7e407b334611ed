package uart

import "testing"

// waitClocksFor exposes the five fixed-overhead computations as plain
// functions of clocks-per-bit / clocks-per-stop-bit / clocks-per-half-bit
// so the invariant test below can check them without threading a full
// Plan through every case.
func waitClocksFor(name string, clocksPerBit, clocksPerStopBit, clocksPerHalfBit uint32) uint32 {
	p := &Plan{ClocksPerBit: clocksPerBit, ClocksPerStopBit: clocksPerStopBit, ClocksPerHalfBit: clocksPerHalfBit}
	switch name {
	case "tx_start":
		w := p.TxStartBitWait()
		return w.Loop*4 + uint32(tailCycles(w.Tail))
	case "tx_bit":
		w := p.TxBitWait()
		return w.Loop*4 + uint32(tailCycles(w.Tail))
	case "tx_stop":
		w := p.TxStopBitWait()
		return w.Loop*4 + uint32(tailCycles(w.Tail))
	case "rx_start":
		w := p.RxStartBitWait()
		return w.Loop*4 + uint32(tailCycles(w.Tail))
	case "rx_bit":
		w := p.RxBitWait()
		return w.Loop*4 + uint32(tailCycles(w.Tail))
	}
	panic("unknown wait point: " + name)
}

func tailCycles(instrs []string) int {
	switch len(instrs) {
	case 0:
		return 0
	case 1:
		if instrs[0] == "nop" {
			return 1
		}
		return 2 // "goto .+1"
	case 2:
		return 3 // "goto .+1", "nop"
	default:
		panic("tail with more than 2 instructions")
	}
}

// TestDecomposeTailLength asserts spec.md §8 property 2: the tail list
// has length in {0,1,2}.
func TestDecomposeTailLength(t *testing.T) {
	for cycles := uint32(0); cycles <= 3; cycles++ {
		got := tailInstructions(cycles)
		if len(got) > 2 {
			t.Errorf("tailInstructions(%d) has length %d, want <= 2", cycles, len(got))
		}
	}
}

func TestDecomposeTailPanicsOnOverflow(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("tailInstructions(4) did not panic")
		}
	}()
	tailInstructions(4)
}

// TestWaitInvariant asserts spec.md §8 property 1 for every wait point:
// the loop/tail decomposition reconstructs exactly the clocks the
// fixed-overhead accounting set aside for it, for a spread of plans
// that satisfy the §3 construction invariants.
func TestWaitInvariant(t *testing.T) {
	points := []string{"tx_start", "tx_bit", "tx_stop", "rx_start", "rx_bit"}
	cases := []struct {
		clocksPerBit, clocksPerStopBit, clocksPerHalfBit uint32
	}{
		{69, 69, 35},
		{104, 156, 52},
		{833, 833, 417},
		{1024, 1024, 512},
		{16, 16, 16},
		{20, 40, 16},
	}
	for _, c := range cases {
		for _, point := range points {
			got := waitClocksFor(point, c.clocksPerBit, c.clocksPerStopBit, c.clocksPerHalfBit)
			var want uint32
			p := &Plan{ClocksPerBit: c.clocksPerBit, ClocksPerStopBit: c.clocksPerStopBit, ClocksPerHalfBit: c.clocksPerHalfBit}
			switch point {
			case "tx_start":
				want = p.ClocksPerBit - txBitSetLoopLagClocks - txSetWaitLoopCounterClocks - txSetPinClocks - txResetBitCounterClocks + waitLoopMissingCycle
			case "tx_bit":
				want = p.ClocksPerBit - txBitCompareAndSetPinClocks - txSetWaitLoopCounterClocks - txCompareBitCountClocks + waitLoopMissingCycle
			case "tx_stop":
				want = p.ClocksPerStopBit - txBitSetLoopLagClocks - txSetPinClocks - txSetWaitLoopCounterClocks + waitLoopMissingCycle
			case "rx_start":
				want = p.ClocksPerHalfBit - rxCheckStartBitClocks - rxFunctionPreludeClocks - rxSetStartWaitLoopCtrClocks - rxValidateStartBitClocks - rxSetBitCounterClocks + waitLoopMissingCycle + rxBitLoopLagClocks
			case "rx_bit":
				want = p.ClocksPerBit - rxShiftCarryClocks - rxSetBitWaitLoopCtrClocks - rxDecBitCounterClocks - rxCheckBitClocks - rxCheckBitCounterClocks + waitLoopMissingCycle
			}
			if got != want {
				t.Errorf("%s: loop*4+tail = %d, want %d (clocksPerBit=%d)", point, got, want, c.clocksPerBit)
			}
		}
	}
}
