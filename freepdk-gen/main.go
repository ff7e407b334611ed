// freepdk-gen emits a self-contained C source file implementing a
// cycle-accurate bit-banged UART for an 8-bit microcontroller target.
// Given a clock frequency, baud rate, TX/RX pin assignment and stop-bit
// width it computes a timing plan and renders uartN_send/uartN_receive
// functions whose timing matches the requested baud rate.
//
// Usage:
//
//	freepdk-gen --freq <FREQ> uart
//	    --baud <N>
//	    --tx-port <A|B|C> --tx-pin <0-7> [--invert-tx]
//	    --rx-port <A|B|C> --rx-pin <0-7> [--invert-rx]
//	    --uart-num <u8>
//	    [--stop-bits {1|1.5|2}]
//	    [--tx-function-name <IDENT>]
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/pacmancoder/freepdk-gen/config"
	"github.com/pacmancoder/freepdk-gen/gen"
	"github.com/pacmancoder/freepdk-gen/mcu"
	"github.com/pacmancoder/freepdk-gen/uart"
)

const (
	appName    = "freepdk-gen"
	appVersion = "0.1.0"
)

var freqFlag = flag.String("freq", "", "MCU clock frequency, e.g. 8000000, 8mhz, 115200hz")

func main() {
	log.SetFlags(0)
	log.SetPrefix(appName + ": ")

	flag.Parse()
	args := flag.Args()
	if len(args) < 1 || args[0] != "uart" {
		log.Fatalf("Usage: %s --freq <FREQ> uart --baud <N> --tx-port <A|B|C> --tx-pin <0-7> --rx-port <A|B|C> --rx-pin <0-7> --uart-num <N>", os.Args[0])
	}

	uartFlags := flag.NewFlagSet("uart", flag.ExitOnError)
	baud := uartFlags.Uint("baud", 0, "Generated UART baud rate")
	txPort := uartFlags.String("tx-port", "", "Port to use for UART TX pin")
	txPin := uartFlags.String("tx-pin", "", "Pin to use for UART TX")
	invertTx := uartFlags.Bool("invert-tx", false, "Invert UART TX logic level")
	rxPort := uartFlags.String("rx-port", "", "Port to use for UART RX pin")
	rxPin := uartFlags.String("rx-pin", "", "Pin to use for UART RX")
	invertRx := uartFlags.Bool("invert-rx", false, "Invert UART RX logic level")
	uartNum := uartFlags.Uint("uart-num", 0, "UART instance number, used to derive function names")
	stopBits := uartFlags.String("stop-bits", "1", "Stop bit width: 1, 1.5 or 2")
	txFunctionName := uartFlags.String("tx-function-name", "", "Override the generated TX function name")
	if err := uartFlags.Parse(args[1:]); err != nil {
		log.Fatalf("can't parse uart subcommand flags: %v", err)
	}

	freq, err := mcu.ParseFrequency(*freqFlag)
	if err != nil {
		log.Fatalf("invalid --freq: %v", err)
	}
	tp, err := mcu.ParsePort(*txPort)
	if err != nil {
		log.Fatalf("invalid --tx-port: %v", err)
	}
	tpin, err := mcu.ParsePin(*txPin)
	if err != nil {
		log.Fatalf("invalid --tx-pin: %v", err)
	}
	rp, err := mcu.ParsePort(*rxPort)
	if err != nil {
		log.Fatalf("invalid --rx-port: %v", err)
	}
	rpin, err := mcu.ParsePin(*rxPin)
	if err != nil {
		log.Fatalf("invalid --rx-pin: %v", err)
	}
	sb, err := mcu.ParseStopBits(*stopBits)
	if err != nil {
		log.Fatalf("invalid --stop-bits: %v", err)
	}
	if *uartNum > 255 {
		log.Fatalf("invalid --uart-num: %d does not fit in a byte", *uartNum)
	}

	cfg := config.AppConfig{
		Freq: freq,
		Uart: config.UartArgs{
			Baud:           uint32(*baud),
			TxPort:         tp,
			TxPin:          tpin,
			InvertTx:       *invertTx,
			RxPort:         rp,
			RxPin:          rpin,
			InvertRx:       *invertRx,
			UartNum:        uint8(*uartNum),
			StopBits:       sb,
			TxFunctionName: *txFunctionName,
		},
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("%v", err)
	}

	plan, err := uart.New(cfg.Uart, cfg.Freq)
	if err != nil {
		log.Fatalf("%v", err)
	}

	log.Printf("Estimated clocks per bit: %d", plan.ClocksPerBit)
	bitPeriod := plan.BitPeriodSeconds()
	log.Printf("Bit period: %.4fms (%.4fus)", bitPeriod*1000, bitPeriod*1000000)
	log.Printf("Clock rate deviation due to rounding: %.2f%%", plan.Deviation*100)

	ctx := gen.NewContext(plan, appName, appVersion)
	rendered, err := gen.Render(ctx)
	if err != nil {
		log.Fatalf("%v", err)
	}

	fmt.Println(rendered)
}
