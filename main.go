package main

import (
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/gdamore/tcell/v2"
	"github.com/jessevdk/go-flags"
	"github.com/muesli/termenv"
)

func main() {
	opts := defaultOptions()

	if err := loadFileOptions(defaultConfigPath(), &opts); err != nil {
		fmt.Fprintf(os.Stderr, "Could not read config file: %s\n", err)
		os.Exit(1)
	}

	parser := flags.NewParser(&opts, flags.Default)
	parser.Name = "mir"
	parser.Usage = "[OPTIONS]"
	if _, err := parser.Parse(); err != nil {
		if fe, ok := err.(*flags.Error); ok && fe.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	// setup logging with logfile ~/.mir-log
	logfile, err := os.OpenFile(os.Getenv("HOME")+"/.mir-log", os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		fmt.Printf("Could not open logfile. %s\n", err)
		os.Exit(1)
	}
	defer logfile.Close()
	log.SetOutput(logfile)
	log.Println("-------------")
	log.Println("Starting mir. This logfile is for development/debug purposes.")

	stderr := termenv.NewOutput(os.Stderr)
	warn := func(format string, args ...any) {
		msg := fmt.Sprintf(format, args...)
		fmt.Fprintln(os.Stderr, stderr.String(msg).Foreground(termenv.ANSIYellow))
	}

	sc, fellBack := resolveScheme(opts.Color)
	if fellBack {
		warn("Warning: color code %d is out of range (0-15), using %d (green)", opts.Color, defaultColorCode)
	}

	charset, known := paletteByName(opts.Palette)
	if !known {
		warn("Warning: unknown palette %q, using classic", opts.Palette)
	}

	if opts.RGB && termenv.EnvColorProfile() != termenv.TrueColor {
		warn("Warning: terminal does not advertise truecolor, RGB fade may render poorly")
	}

	glitchProb := opts.GlitchProb
	if opts.NoGlitch {
		glitchProb = 0
	}
	flickerProb := opts.FlickerProb
	if opts.NoFlicker {
		flickerProb = 0
	}
	stuckProb := opts.StuckProb
	if opts.NoStuck {
		stuckProb = 0
	}

	cfg := NewConfig()
	cfg.SetFrameRate(float64(opts.FPS))
	cfg.SetMinTrail(opts.MinTrail)
	cfg.SetMaxTrail(opts.MaxTrail)
	cfg.SetGlitchProbability(glitchProb)
	cfg.SetFlickerProbability(flickerProb)
	cfg.SetNewDropProbability(opts.DropProb)
	cfg.SetStuckProbability(stuckProb)
	cfg.SetStuckCapacity(opts.StuckCap)

	if opts.Debug {
		log.Printf("resolved options: \n%s", spew.Sdump(opts))
		log.Printf("charset size: %d", len(charset))
	}

	screen, err := tcell.NewScreen()
	if err == nil {
		err = screen.Init()
	}
	if err != nil {
		fmt.Println("Could not start the terminal screen for mir. View ~/.mir-log for error messages.")
		log.Printf("Cannot start mir, tcell gave an error:\n%s\n", err)
		os.Exit(1)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	eng := newEngine(screen, cfg, sc, charset, engineParams{
		rgbFade:      opts.RGB,
		stuckEnabled: !opts.NoStuck,
		initialDrops: opts.Drops,
		debug:        opts.Debug,
	}, rng)

	// an OS interrupt takes the same drain path as an in-band quit key: the
	// handler clears the running flag and nothing more
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		eng.stop()
	}()

	if err := eng.run(); err != nil {
		log.Printf("mir stopped with error: %s", err)
		fmt.Fprintf(os.Stderr, "mir stopped with error: %s\n", err)
		os.Exit(1)
	}

	log.Println("stopping mir")
	stdout := termenv.NewOutput(os.Stdout)
	fmt.Println(stdout.String("Goodbye from the Matrix...").Foreground(termenv.ANSIGreen))
}
