// Command preamp-sim runs the front-panel controller against simulated
// hardware on a development host. Inputs are injected from an interactive
// console; the display, relays and attenuator are logged, and the EEPROM is
// a small file so persisted settings survive restarts of the simulator.
//
//	cw [n] / ccw [n]   turn the encoder
//	btn                press and release the encoder button
//	ir <addr> <cmd>    one remote key press (auto-toggling)
//	hold               repeat the last remote frame (held key)
//	powerfail          trip the power-loss handler
//	show               render the display glass
//	state              dump the controller state
//	quit
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/google/shlex"
	"github.com/rs/zerolog"

	"preampcode-go/bus"
	"preampcode-go/drivers/rc5"
	"preampcode-go/drivers/rotary"
	"preampcode-go/services/config"
	"preampcode-go/services/monitor"
	"preampcode-go/services/panel"
)

func main() {
	var (
		device = flag.String("device", config.DefaultDevice, "device config profile")
		eeprom = flag.String("eeprom", "preamp-eeprom.bin", "eeprom image file")
		debug  = flag.Bool("debug", false, "log device-level writes")
	)
	flag.Parse()

	level := zerolog.InfoLevel
	if *debug {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		Level(level).With().Timestamp().Logger()

	b := bus.NewBus(16)

	disp := newSimDisplay()
	in := &simInput{}
	ctl := panel.New(panel.Config{Splash: time.Millisecond}, panel.Devices{
		Display:    disp,
		Attenuator: &simAtt{log: log},
		Sources:    &simLines{log: log},
		Storage:    newSimStore(*eeprom, log),
		Rotary:     in,
		Remote:     in,
	})
	ctl.AttachBus(b.NewConnection("panel"))

	if err := ctl.Boot(); err != nil {
		log.Fatal().Err(err).Msg("boot failed")
	}
	log.Info().Interface("state", ctl.State()).Msg("panel up")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() { _ = config.New(b.NewConnection("config"), *device).Run(ctx) }()
	go func() { _ = monitor.New(b.NewConnection("monitor"), 30*time.Second).Run(ctx) }()
	go func() { _ = ctl.Run(ctx) }()

	console(ctx, cancel, log, ctl, disp, in)
}

func console(ctx context.Context, cancel context.CancelFunc, log zerolog.Logger,
	ctl *panel.Controller, disp *simDisplay, in *simInput) {

	toggle := uint8(0)
	var last rc5.Frame
	haveLast := false

	sc := bufio.NewScanner(os.Stdin)
	fmt.Print("> ")
	for sc.Scan() {
		args, err := shlex.Split(sc.Text())
		if err != nil {
			log.Error().Err(err).Msg("bad command line")
			fmt.Print("> ")
			continue
		}
		if len(args) == 0 {
			fmt.Print("> ")
			continue
		}

		switch args[0] {
		case "cw", "ccw":
			n := 1
			if len(args) > 1 {
				if v, err := strconv.Atoi(args[1]); err == nil && v > 0 {
					n = v
				}
			}
			d := rotary.Clockwise
			if args[0] == "ccw" {
				d = rotary.CounterClockwise
			}
			in.turn(d, n)
		case "btn":
			in.press()
		case "ir":
			if len(args) != 3 {
				log.Error().Msg("usage: ir <addr> <cmd>")
				break
			}
			addr, errA := strconv.ParseUint(args[1], 0, 8)
			cmd, errC := strconv.ParseUint(args[2], 0, 8)
			if errA != nil || errC != nil {
				log.Error().Msg("addr and cmd must be numbers (0x.. for hex)")
				break
			}
			toggle ^= 1
			last = rc5.Frame{Toggle: toggle, Addr: uint8(addr), Cmd: uint8(cmd)}
			haveLast = true
			in.send(last)
		case "hold":
			if !haveLast {
				log.Error().Msg("no previous ir frame")
				break
			}
			in.send(last)
		case "powerfail":
			ctl.PowerFail()
			log.Info().Msg("power-loss handler tripped")
		case "show":
			fmt.Println(disp.Render())
		case "state":
			fmt.Printf("%+v\n", ctl.State())
		case "quit", "exit":
			cancel()
			return
		default:
			log.Error().Str("cmd", args[0]).Msg("unknown command")
		}

		// Let the control loop drain the injected events before prompting.
		time.Sleep(25 * time.Millisecond)
		select {
		case <-ctx.Done():
			return
		default:
		}
		fmt.Print("> ")
	}
}
