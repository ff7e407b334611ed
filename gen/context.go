// Package gen turns a frozen uart.Plan into the final generated C
// source: a flat substitution record (Context) plus one static
// text/template string rendered exactly once per run.
package gen

import (
	"fmt"

	"github.com/pacmancoder/freepdk-gen/uart"
)

// Context is the flat record of every value the template interpolates
// or iterates over. It holds no behaviour beyond what NewContext
// derives from a Plan.
type Context struct {
	AppName    string
	AppVersion string

	Frequency uint32
	Baud      uint32

	TxFunctionName             string
	TxPort                     byte
	TxPin                      uint8
	TxInverted                 bool
	TxStartBitWaitCycles       uint32
	TxStartBitTailInstructions []string
	TxBitWaitCycles            uint32
	TxBitTailInstructions      []string
	TxStopBitWaitCycles        uint32
	TxStopBitTailInstructions  []string

	RxFunctionName             string
	RxByteName                 string
	RxPort                     byte
	RxPin                      uint8
	RxInverted                 bool
	RxStartBitWaitCycles       uint32
	RxStartBitTailInstructions []string
	RxBitWaitCycles            uint32
	RxBitTailInstructions      []string
}

// NewContext derives a Context from a frozen Plan. appName/appVersion
// are threaded through purely for the provenance header (spec.md §4.5);
// they have no bearing on generation semantics.
func NewContext(p *uart.Plan, appName, appVersion string) *Context {
	txName := p.TxFunctionName
	if txName == "" {
		txName = fmt.Sprintf("uart%d_send", p.UartNum)
	}
	rxName := fmt.Sprintf("uart%d_receive", p.UartNum)
	rxByte := fmt.Sprintf("uart%d_rx_byte", p.UartNum)

	txStart := p.TxStartBitWait()
	txBit := p.TxBitWait()
	txStop := p.TxStopBitWait()
	rxStart := p.RxStartBitWait()
	rxBit := p.RxBitWait()

	return &Context{
		AppName:    appName,
		AppVersion: appVersion,

		Frequency: p.Frequency.Hz(),
		Baud:      p.Baud,

		TxFunctionName:             txName,
		TxPort:                     p.TxPort.Char(),
		TxPin:                      p.TxPin.Num(),
		TxInverted:                 p.InvertTx,
		TxStartBitWaitCycles:       txStart.Loop,
		TxStartBitTailInstructions: txStart.Tail,
		TxBitWaitCycles:            txBit.Loop,
		TxBitTailInstructions:      txBit.Tail,
		TxStopBitWaitCycles:        txStop.Loop,
		TxStopBitTailInstructions:  txStop.Tail,

		RxFunctionName:             rxName,
		RxByteName:                 rxByte,
		RxPort:                     p.RxPort.Char(),
		RxPin:                      p.RxPin.Num(),
		RxInverted:                 p.InvertRx,
		RxStartBitWaitCycles:       rxStart.Loop,
		RxStartBitTailInstructions: rxStart.Tail,
		RxBitWaitCycles:            rxBit.Loop,
		RxBitTailInstructions:      rxBit.Tail,
	}
}
