package gen

import (
	"strings"
	"text/template"
)

// uartTemplate is the single static template compiled once per run
// (spec.md §5 resource discipline: one template compilation, one
// write to stdout, nothing else). Scalar fields interpolate directly;
// TxInverted/RxInverted pick between the set/clear pin instruction
// pair; the five *TailInstructions slices each emit one instruction
// per line via {{range}}.
//
// The RX path performs exactly one mid-bit resample and no further
// glitch filtering - see the comment above the RX function below and
// DESIGN.md's Open Question decisions.
const uartTemplate = `// THIS FILE WAS GENERATED BY {{.AppName}} v{{.AppVersion}}
// Target F_CPU: {{.Frequency}};  Target baud: {{.Baud}}
// TX pin: P{{printf "%c" .TxPort}}{{.TxPin}}; TX Inverted: {{.TxInverted}}
#include <stdint.h>
#include <pdk/device.h>

#ifndef F_CPU
#error "Generated uart requires F_CPU to be set"
#endif

#if F_CPU != {{.Frequency}}
#error "Defined F_CPU does not match generated uart's frequency ({{.Frequency}})"
#endif

#define UART_RESULT_RX_IDLE 0
#define UART_RESULT_RX_RECEIVED 1
#define UART_RESULT_RX_ERROR 2

typedef uint8_t UartResult;

static uint8_t _gen_{{.TxFunctionName}}_bits_left;

static void {{.TxFunctionName}}(uint8_t byte) {
    __asm
    ; start bit
    {{if .TxInverted}}set1{{else}}set0{{end}} P{{printf "%c" .TxPort}}_ADDR, #{{.TxPin}} ; 1T
    mov a, #{{.TxStartBitWaitCycles}} ; 1T
    0001$: ; wait loop takes ({{.TxStartBitWaitCycles}} * 4 - 1)T
    nop ; 1T
    dzsn a ; Normally 1T, 2T in last cycle
    goto 0001$ ; 2T
    mov a, #8 ; 1T
    mov __gen_{{.TxFunctionName}}_bits_left, a ; 1T
{{range .TxStartBitTailInstructions}}    {{.}}
{{end}}
    ; send 1 bit; compare block takes 8T
    0002$:
    sr _{{.TxFunctionName}}_PARM_1 ; 1T, carry flag will contain LSB
    t1sn f, c ; 1T when bit is 0, 2T otherwise
    goto .+4 ; 2T
    nop ; 1T
    {{if .TxInverted}}set0{{else}}set1{{end}} P{{printf "%c" .TxPort}}_ADDR, #{{.TxPin}} ; 1T
    goto .+3 ; 2T
    {{if .TxInverted}}set1{{else}}set0{{end}} P{{printf "%c" .TxPort}}_ADDR, #{{.TxPin}} ; 1T
    goto .+1 ; 2T, goto instead of nop to equalize branches
    mov a, #{{.TxBitWaitCycles}} ; 1T
    0004$: ; wait loop takes ({{.TxBitWaitCycles}} * 4 - 1)T
    nop ; 1T
    dzsn a ; 1T normally, 2T on skip
    goto 0004$ ; 2T
{{range .TxBitTailInstructions}}    {{.}}
{{end}}
    ; check for more bits; this chunk takes 3T in any case
    dzsn __gen_{{.TxFunctionName}}_bits_left ; 1T normally, 2T on skip
    goto 0002$ ; 2T
    nop ; 1T

    ; wait +5T to adjust lag from the code above
    goto .+1 ; 2T
    goto .+1 ; 2T
    nop ; 1T

    ; send stop bit
    {{if .TxInverted}}set0{{else}}set1{{end}} P{{printf "%c" .TxPort}}_ADDR, #{{.TxPin}} ; 1T
    mov a, #{{.TxStopBitWaitCycles}} ; 1T
    0005$: ; wait loop takes ({{.TxStopBitWaitCycles}} * 4 - 1)T
    nop ; 1T
    dzsn a ; 1T normally, 2T on skip
    goto 0005$ ; 2T
{{range .TxStopBitTailInstructions}}    {{.}}
{{end}}
    __endasm;
}

uint8_t {{.RxByteName}};
static uint8_t _gen_{{.RxFunctionName}}_bit;

// RX performs a single mid-bit resample with no further glitch
// filtering: a short noise spike that happens to straddle the sample
// point is not distinguished from a genuine edge.
static UartResult {{.RxFunctionName}}(void) __naked {
    __asm
    ; Early idle check (A&F are not affected)
    {{if .RxInverted}}t1sn{{else}}t0sn{{end}} P{{printf "%c" .RxPort}}_ADDR, #{{.RxPin}} ; 1T/2T on skip/start bit
    ret #UART_RESULT_RX_IDLE

    ; Function prelude
    pushaf ; 1T

    ; Wait to the middle of the bit
    mov a, #{{.RxStartBitWaitCycles}} ; 1T
    nop ; 1T
    dzsn a ; 1T normally, 2T on skip
    goto .-2 ; 2T
{{range .RxStartBitTailInstructions}}    {{.}}
{{end}}
    ; Validate start bit mid-value
    {{if .RxInverted}}t1sn{{else}}t0sn{{end}} P{{printf "%c" .RxPort}}_ADDR, #{{.RxPin}} ; 1T/2T on skip/start bit
    goto _gen_label_{{.RxFunctionName}}_error ; 2T

    ; Set bit counter to initial value
    mov a, #8 ; 1T, loop ends on the 9th bit (after dec 0)
    mov __gen_{{.RxFunctionName}}_bit, a ; 1T

    ; Bit loop
    _gen_label_{{.RxFunctionName}}_bit_loop:
    src _{{.RxByteName}} ; 1T; insert bit from carry (previous iteration)
    mov a, #{{.RxBitWaitCycles}} ; 1T
    nop ; 1T
    dzsn a ; 1T normally, 2T on skip
    goto .-2 ; 2T
{{range .RxBitTailInstructions}}    {{.}}
{{end}}
    ; check rx bit value; code before the actual check introduces 4T lag
    dec __gen_{{.RxFunctionName}}_bit ; 1T; decrease remaining bit count
    {{if .RxInverted}}set0{{else}}set1{{end}} f, c ; 1T
    {{if .RxInverted}}t0sn{{else}}t1sn{{end}} P{{printf "%c" .RxPort}}_ADDR, #{{.RxPin}} ; 1T/2T, read rx bit
    {{if .RxInverted}}set1{{else}}set0{{end}} f, c ; 1T

    ; check bit counter; 0xFF (7th bit set) marks the 9th iteration
    t1sn __gen_{{.RxFunctionName}}_bit, #7 ; 1T normally, 2T on loop exit
    goto _gen_label_{{.RxFunctionName}}_bit_loop ; 2T
    nop ; 1T

    ; Validate stop bit value
    {{if .RxInverted}}t0sn{{else}}t1sn{{end}} f, c ; 1T/2T
    goto _gen_label_{{.RxFunctionName}}_error ; 2T
    popaf ; 1T
    ret #UART_RESULT_RX_RECEIVED ; 2T
    _gen_label_{{.RxFunctionName}}_error:
    popaf
    ret #UART_RESULT_RX_ERROR ; 2T; start/stop bits were invalid
    __endasm;
}
`

// Render compiles uartTemplate and executes it against c, returning
// the generated C source or a TemplateFailure.
func Render(c *Context) (string, error) {
	tmpl, err := template.New("uart").Parse(uartTemplate)
	if err != nil {
		return "", TemplateFailure{Msg: err.Error()}
	}
	var b strings.Builder
	if err := tmpl.Execute(&b, c); err != nil {
		return "", TemplateFailure{Msg: err.Error()}
	}
	return b.String(), nil
}
