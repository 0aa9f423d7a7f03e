// Command kaleido shows an animated kaleidoscope.
//
//	kaleido [-mprv] [-s seconds] [variant [variants.toml]]
//
// Keys: f tiles, k single cell, t texture, c camera, m change texture,
// r start or stop recording, space pause, q or escape quit.
package main

import (
	"fmt"
	"os"
	"runtime/pprof"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/seebs/gogetopt"

	"seebs.net/kaleido/config"
	"seebs.net/kaleido/keys"
	"seebs.net/kaleido/logging"
	"seebs.net/kaleido/session"
)

const defaultVariant = "dogs"

type game struct {
	s        *session.Session
	input    *keys.Reader
	timedOut <-chan time.Time
	w, h     int
	title    string
	paused   bool
}

func (gm *game) Update() error {
	gm.s.Apply(gm.input.Read())
	if gm.s.Quitting() {
		return ebiten.Termination
	}
	if p := gm.s.Paused(); p != gm.paused {
		gm.paused = p
		if p {
			ebiten.SetWindowTitle(gm.title + " (paused)")
		} else {
			ebiten.SetWindowTitle(gm.title)
		}
	}
	gm.s.Update()
	select {
	case <-gm.timedOut:
		return ebiten.Termination
	default:
		return nil
	}
}

func (gm *game) Draw(screen *ebiten.Image) {
	gm.s.Draw(screen)
}

func (gm *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return gm.w, gm.h
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "exiting: %s\n", err)
		os.Exit(1)
	}
}

func run() error {
	opts, args, err := gogetopt.GetOpt(os.Args[1:], "mprvs#")
	if err != nil {
		return fmt.Errorf("option parsing failed: %w", err)
	}
	logger := logging.New(os.Stderr, logging.Level(opts.Seen("v")))
	if opts.Seen("p") {
		f, err := os.Create("cpu-profile.dat")
		if err != nil {
			return fmt.Errorf("can't create cpu-profile.dat: %w", err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}
	if opts.Seen("m") {
		defer writeHeapProfiles(logger)
	}

	name, path := defaultVariant, ""
	if len(args) > 0 {
		name = args[0]
	}
	if len(args) > 1 {
		path = args[1]
	}
	set, err := config.Load(path)
	if err != nil {
		return err
	}
	v, err := set.Lookup(name)
	if err != nil {
		return err
	}
	if opts.Seen("r") {
		v.Record.Enabled, v.Record.Autostart = true, true
	}

	s := session.New(logger)
	if err := s.Configure(v); err != nil {
		return err
	}
	defer func() {
		if err := s.Dispose(); err != nil {
			logger.Error("shutting down", "err", err)
		}
	}()

	gm := &game{s: s, input: keys.NewReader(), w: v.Width, h: v.Height, title: v.Title}
	if opts.Seen("s") {
		gm.timedOut = time.After(time.Duration(opts["s"].Int) * time.Second)
	}
	ebiten.SetWindowSize(v.Width, v.Height)
	ebiten.SetWindowTitle(gm.title)
	ebiten.SetTPS(v.TPS)
	logger.Info("starting", "variant", v.Name, "tps", v.TPS)
	return ebiten.RunGame(gm)
}

func writeHeapProfiles(logger *log.Logger) {
	for _, p := range []string{"heap", "allocs"} {
		name := p + "-profile.dat"
		f, err := os.Create(name)
		if err != nil {
			logger.Error("can't create profile", "file", name, "err", err)
			continue
		}
		pprof.Lookup(p).WriteTo(f, 0)
		f.Close()
	}
}
