//go:build rp2040

// Command preamp-fw is the firmware entry for the RP2040 front-panel board.
// It wires the machine peripherals to the controller: I2C0 carries the
// display and the settings EEPROM, SPI0 the attenuator, and GPIO edges feed
// the remote decoder and the power-loss handler from interrupt context.
package main

import (
	"context"
	"machine"
	"time"

	"github.com/jangala-dev/tinygo-uartx/uartx"
	"tinygo.org/x/drivers/at24cx"
	"tinygo.org/x/drivers/hd44780i2c"

	"preampcode-go/bus"
	"preampcode-go/drivers/muses72323"
	"preampcode-go/drivers/rc5"
	"preampcode-go/drivers/rotary"
	"preampcode-go/services/config"
	"preampcode-go/services/monitor"
	"preampcode-go/services/panel"
)

// Board pinout.
const (
	pinDebugTX = machine.GPIO0
	pinDebugRX = machine.GPIO1

	pinSDA = machine.GPIO4
	pinSCL = machine.GPIO5

	pinRelay1 = machine.GPIO6
	pinRelay2 = machine.GPIO7
	pinRelay3 = machine.GPIO8
	pinRelay4 = machine.GPIO9

	pinEncA   = machine.GPIO10
	pinEncB   = machine.GPIO11
	pinEncBtn = machine.GPIO12

	pinIR        = machine.GPIO13
	pinPowerGood = machine.GPIO14

	pinAttCS = machine.GPIO17
	pinSCK   = machine.GPIO18
	pinSDO   = machine.GPIO19
	pinSDI   = machine.GPIO16
)

const displayAddr = 0x27

// relayLines drives one GPIO per source input.
type relayLines struct {
	pins [4]machine.Pin
}

func (r *relayLines) Set(line uint8, enabled bool) error {
	if line < 1 || int(line) > len(r.pins) {
		return nil
	}
	r.pins[line-1].Set(enabled)
	return nil
}

func main() {
	uartx.UART0.Configure(uartx.UARTConfig{BaudRate: 115200, TX: pinDebugTX, RX: pinDebugRX})
	uartx.UART0.Write([]byte("preamp-fw starting\r\n"))

	// Display and EEPROM share I2C0.
	machine.I2C0.Configure(machine.I2CConfig{SDA: pinSDA, SCL: pinSCL, Frequency: 400 * machine.KHz})
	disp := hd44780i2c.New(machine.I2C0, displayAddr)
	if err := disp.Configure(hd44780i2c.Config{Width: 20, Height: 4}); err != nil {
		println("display configure:", err.Error())
	}
	eeprom := at24cx.New(machine.I2C0)

	// Attenuator on SPI0.
	machine.SPI0.Configure(machine.SPIConfig{
		Frequency: 250 * machine.KHz,
		SCK:       pinSCK,
		SDO:       pinSDO,
		SDI:       pinSDI,
	})
	pinAttCS.Configure(machine.PinConfig{Mode: machine.PinOutput})
	pinAttCS.Low()
	att := muses72323.New(machine.SPI0, 0, func(high bool) { pinAttCS.Set(high) })
	if err := att.Configure(muses72323.Config{ZeroCrossing: true}); err != nil {
		println("attenuator configure:", err.Error())
	}

	lines := &relayLines{pins: [4]machine.Pin{pinRelay1, pinRelay2, pinRelay3, pinRelay4}}
	for _, p := range lines.pins {
		p.Configure(machine.PinConfig{Mode: machine.PinOutput})
		p.Low()
	}

	for _, p := range []machine.Pin{pinEncA, pinEncB, pinEncBtn} {
		p.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	}
	enc := rotary.New(
		func() bool { return pinEncA.Get() },
		func() bool { return pinEncB.Get() },
		func() bool { return !pinEncBtn.Get() }, // active low
	)

	// Remote decoder fed from the IR receiver's edges.
	dec := rc5.NewDecoder()
	t0 := time.Now()
	pinIR.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	if err := pinIR.SetInterrupt(machine.PinToggle, func(p machine.Pin) {
		dec.Edge(p.Get(), time.Since(t0))
	}); err != nil {
		println("ir interrupt:", err.Error())
	}

	b := bus.NewBus(8)
	ctl := panel.New(panel.Config{}, panel.Devices{
		Display:    &disp,
		Attenuator: &att,
		Sources:    lines,
		Storage:    &eeprom,
		Rotary:     enc,
		Remote:     dec,
	})
	ctl.AttachBus(b.NewConnection("panel"))

	// Arm the power-loss handler before anything can change state.
	pinPowerGood.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	if err := pinPowerGood.SetInterrupt(machine.PinFalling, func(machine.Pin) {
		ctl.PowerFail()
	}); err != nil {
		println("power-good interrupt:", err.Error())
	}

	if err := ctl.Boot(); err != nil {
		println("boot:", err.Error())
	}

	ctx := context.Background()
	go func() { _ = config.New(b.NewConnection("config"), config.DefaultDevice).Run(ctx) }()
	go func() { _ = monitor.New(b.NewConnection("monitor"), time.Minute).Run(ctx) }()

	_ = ctl.Run(ctx)
}
