package uart

import "fmt"

// waitLoopMissingCycle compensates for the dzsn skip semantics of the
// target architecture: the final iteration of the generated 4-cycle
// wait loop is one cycle shorter than the others, so one cycle is
// added back to every fixed-overhead subtraction below.
const waitLoopMissingCycle = 1

// Fixed-overhead constants, per spec.md §4.4. Each is the number of
// non-wait-loop instruction cycles the emitted assembly scaffold
// spends around the corresponding wait point; changing one requires
// changing the matching fixed assembly in the gen package's template.
const (
	txBitSetLoopLagClocks        = 5
	txSetWaitLoopCounterClocks   = 1
	txSetPinClocks               = 1
	txResetBitCounterClocks      = 2
	txBitCompareAndSetPinClocks  = 8
	txCompareBitCountClocks      = 3
	rxCheckStartBitClocks        = 2
	rxFunctionPreludeClocks      = 1
	rxSetStartWaitLoopCtrClocks  = 1
	rxValidateStartBitClocks     = 2
	rxSetBitCounterClocks        = 2
	rxBitLoopLagClocks           = 6
	rxSetBitWaitLoopCtrClocks    = 1
	rxShiftCarryClocks           = 1
	rxDecBitCounterClocks        = 1
	rxCheckBitClocks             = 3
	rxCheckBitCounterClocks      = 3
)

// Wait is the output of decompose: a loop iteration count plus the
// minimal instruction tail needed to consume the remaining 0-3 cycles.
type Wait struct {
	Loop uint32
	Tail []string
}

// decompose splits waitClocks into (loop, tail) such that
// 4*loop + len-weighted-tail-cycles == waitClocks, where the wait loop
// itself costs 4*loop-1 cycles (see waitLoopMissingCycle) and the tail
// makes up the remaining residue exactly. The mod-4 split always leaves
// a 0-3 residue, so the panic in tailInstructions for larger tails is
// never reached from here.
func decompose(waitClocks uint32) Wait {
	loop := waitClocks / 4
	tail := waitClocks % 4
	return Wait{Loop: loop, Tail: tailInstructions(tail)}
}

// tailInstructions expands a 0-3 cycle residue into the shortest
// instruction sequence producing exactly that many cycles.
func tailInstructions(cycles uint32) []string {
	switch cycles {
	case 0:
		return nil
	case 1:
		return []string{"nop"}
	case 2:
		return []string{"goto .+1"}
	case 3:
		return []string{"goto .+1", "nop"}
	default:
		panic(fmt.Sprintf("decompose: tail of %d cycles is not representable in 0-3", cycles))
	}
}

// TxStartBitWait decomposes the wait interval between the TX line
// going low (start bit) and the first data bit being clocked out.
func (p *Plan) TxStartBitWait() Wait {
	clocks := p.ClocksPerBit -
		txBitSetLoopLagClocks -
		txSetWaitLoopCounterClocks -
		txSetPinClocks -
		txResetBitCounterClocks +
		waitLoopMissingCycle
	return decompose(clocks)
}

// TxBitWait decomposes the wait interval inside the TX data-bit loop.
func (p *Plan) TxBitWait() Wait {
	clocks := p.ClocksPerBit -
		txBitCompareAndSetPinClocks -
		txSetWaitLoopCounterClocks -
		txCompareBitCountClocks +
		waitLoopMissingCycle
	return decompose(clocks)
}

// TxStopBitWait decomposes the wait interval spent holding the stop bit.
func (p *Plan) TxStopBitWait() Wait {
	clocks := p.ClocksPerStopBit -
		txBitSetLoopLagClocks -
		txSetPinClocks -
		txSetWaitLoopCounterClocks +
		waitLoopMissingCycle
	return decompose(clocks)
}

// RxStartBitWait decomposes the wait interval from detecting the start
// bit's falling edge to the mid-bit sample point.
func (p *Plan) RxStartBitWait() Wait {
	clocks := p.ClocksPerHalfBit -
		rxCheckStartBitClocks -
		rxFunctionPreludeClocks -
		rxSetStartWaitLoopCtrClocks -
		rxValidateStartBitClocks -
		rxSetBitCounterClocks +
		waitLoopMissingCycle +
		rxBitLoopLagClocks
	return decompose(clocks)
}

// RxBitWait decomposes the wait interval inside the RX data-bit loop.
func (p *Plan) RxBitWait() Wait {
	clocks := p.ClocksPerBit -
		rxShiftCarryClocks -
		rxSetBitWaitLoopCtrClocks -
		rxDecBitCounterClocks -
		rxCheckBitClocks -
		rxCheckBitCounterClocks +
		waitLoopMissingCycle
	return decompose(clocks)
}
