//go:build cgo
// +build cgo

package main

import (
	"context"
	"os"

	"github.com/appengine-ltd/wildlands/internal/gui"
)

func frontend(ctx context.Context, s session) error {
	if s.opts.headless {
		return repl(ctx, s.console, os.Stdin, os.Stdout)
	}
	app := gui.NewApp(gui.AppConfig{
		Version:   version,
		Commit:    commit,
		BuildDate: date,
		Sim:       s.sim,
		Console:   s.console,
		Logger:    s.log,
	})
	return app.Run()
}
