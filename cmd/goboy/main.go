package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli"

	"github.com/thelolagemann/dmgcore/internal/cartridge"
	"github.com/thelolagemann/dmgcore/internal/gameboy"
	"github.com/thelolagemann/dmgcore/internal/serial/accessories"
	"github.com/thelolagemann/dmgcore/pkg/audio"
	"github.com/thelolagemann/dmgcore/pkg/display"
	"github.com/thelolagemann/dmgcore/pkg/display/terminal"
	"github.com/thelolagemann/dmgcore/pkg/emu"
	"github.com/thelolagemann/dmgcore/pkg/log"
	"github.com/thelolagemann/dmgcore/pkg/utils"
)

// frameTime is the length of a DMG frame, ~59.73 Hz.
const frameTime = time.Second * gameboy.CyclesPerFrame / gameboy.ClockSpeed

func main() {
	app := cli.NewApp()
	app.Name = "goboy"
	app.Usage = "goboy [options] <ROM file>"
	app.Description = "A cycle accurate DMG emulator"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "rom",
			Usage: "Path to the ROM file (.gb, .gbc, .zip, .gz or .7z)",
		},
		cli.StringFlag{
			Name:  "boot",
			Usage: "Path to a DMG boot ROM to run before the cartridge",
		},
		cli.IntFlag{
			Name:  "frames",
			Usage: "Number of frames to run (0 runs until quit in terminal mode)",
		},
		cli.StringFlag{
			Name:  "log-level",
			Usage: "Log level (trace, debug, info, warn, error)",
			Value: "info",
		},
		cli.BoolFlag{
			Name:  "terminal",
			Usage: "Show the screen in the terminal, in real time",
		},
		cli.StringFlag{
			Name:  "palette",
			Usage: "Screen palette (greyscale, green, red, yellow)",
			Value: "greyscale",
		},
		cli.StringFlag{
			Name:  "snapshot",
			Usage: "Write the last frame to this PNG file",
		},
		cli.IntFlag{
			Name:  "scale",
			Usage: "Scale factor for --snapshot",
			Value: 2,
		},
		cli.BoolFlag{
			Name:  "hash",
			Usage: "Print the xxhash64 of the last frame",
		},
		cli.StringFlag{
			Name:  "wav",
			Usage: "Record audio to this WAV file",
		},
		cli.IntFlag{
			Name:  "wav-rate",
			Usage: "Sample rate of the --wav recording",
			Value: 44100,
		},
		cli.StringFlag{
			Name:  "plot",
			Usage: "Plot the first frame of recorded audio to this image file",
		},
		cli.BoolFlag{
			Name:  "serial",
			Usage: "Print everything sent over the serial port on exit",
		},
		cli.StringFlag{
			Name:  "save-dir",
			Usage: "Directory for battery saves (empty disables saving)",
			Value: "saves",
		},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "goboy:", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	logger, err := log.NewWithLevel(c.String("log-level"))
	if err != nil {
		return err
	}

	romPath := c.String("rom")
	if romPath == "" {
		if c.NArg() == 0 {
			cli.ShowAppHelp(c)
			return errors.New("no ROM path provided")
		}
		romPath = c.Args().Get(0)
	}
	frames := c.Int("frames")
	if frames <= 0 && !c.Bool("terminal") {
		return errors.New("--frames must be positive without --terminal")
	}
	palette, err := display.PaletteByName(c.String("palette"))
	if err != nil {
		return err
	}

	rom, err := utils.LoadFile(romPath)
	if err != nil {
		return err
	}

	fb := display.NewFrameBuffer()
	fb.Palette = palette
	opts := []gameboy.Opt{
		gameboy.WithLogger(logger),
		gameboy.WithRenderer(fb),
	}

	if path := c.String("boot"); path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		opts = append(opts, gameboy.WithBootROM(b))
	}

	var recorder *audio.WAVRecorder
	if c.String("wav") != "" || c.String("plot") != "" {
		recorder = audio.NewWAVRecorder(c.Int("wav-rate"))
		opts = append(opts, gameboy.WithAudioTerminal(audio.NewDecimator(recorder, recorder.Rate)))
	} else {
		opts = append(opts, gameboy.NoAudio())
	}

	var capture *accessories.Capture
	if c.Bool("serial") {
		capture = accessories.NewCapture(logger)
		opts = append(opts, gameboy.WithSerialLink(capture))
	}

	header, err := cartridge.ParseHeader(rom)
	if err != nil {
		return err
	}
	battery := header.CartridgeType.Has(cartridge.FeatureBattery)

	var saves *emu.Saves
	if dir := c.String("save-dir"); dir != "" && battery {
		if saves, err = emu.NewSaves(dir); err != nil {
			return err
		}
		ram, err := saves.Load(header.Title, rom)
		if err != nil {
			return err
		}
		if ram != nil {
			opts = append(opts, gameboy.WithSaveRAM(ram))
			logger.Infof("loading save %s", saves.Path(header.Title, rom))
		}
	}

	gb, err := gameboy.New(rom, opts...)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	if c.Bool("terminal") {
		err = runTerminal(ctx, gb, fb, palette, frames)
	} else {
		err = runHeadless(ctx, gb, frames)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Infof("ran %d cycles in %s", gb.Cycles(), time.Since(start))

	if saves != nil {
		if err := saves.Save(header.Title, rom, gb.RAM()); err != nil {
			return err
		}
		logger.Infof("saved %s", saves.Path(header.Title, rom))
	}
	if path := c.String("snapshot"); path != "" {
		if err := fb.WritePNG(path, c.Int("scale")); err != nil {
			return err
		}
	}
	if c.Bool("hash") {
		fmt.Printf("%016x\n", fb.Hash())
	}
	if path := c.String("wav"); path != "" {
		if err := recorder.WriteFile(path); err != nil {
			return err
		}
	}
	if path := c.String("plot"); path != "" {
		if err := audio.PlotWaveform(recorder, c.Int("wav-rate")/60, path); err != nil {
			return err
		}
	}
	if capture != nil {
		fmt.Print(capture.String())
	}
	return nil
}

// runHeadless runs frames as fast as possible.
func runHeadless(ctx context.Context, gb *gameboy.GameBoy, frames int) error {
	return gb.AdvanceTo(ctx, uint64(frames)*gameboy.CyclesPerFrame)
}

// runTerminal runs in real time, drawing each frame to the terminal.
func runTerminal(ctx context.Context, gb *gameboy.GameBoy, fb *display.FrameBuffer, p display.Palette, frames int) error {
	screen, err := terminal.New(p)
	if err != nil {
		return err
	}
	defer screen.Close()

	ticker := time.NewTicker(frameTime)
	defer ticker.Stop()

	for i := 0; frames <= 0 || i < frames; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-screen.Quit():
			return nil
		case <-ticker.C:
			gb.Frame()
			frame := fb.Frame()
			screen.Draw(&frame)
		}
	}
	return nil
}
