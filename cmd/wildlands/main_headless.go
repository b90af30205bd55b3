//go:build !cgo
// +build !cgo

package main

import (
	"context"
	"os"
)

func frontend(ctx context.Context, s session) error {
	if !s.opts.headless {
		s.log.Warn("built without cgo, the window is unavailable; playing in the terminal")
	}
	return repl(ctx, s.console, os.Stdin, os.Stdout)
}
