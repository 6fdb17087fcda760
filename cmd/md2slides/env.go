package main

import (
	"io"
	"os"
	"time"

	md2slides "github.com/alnah/go-md2slides"
)

// Environment holds injectable dependencies for testability.
// Includes I/O, time and the converter pool factory.
type Environment struct {
	Now    func() time.Time
	Stdout io.Writer
	Stderr io.Writer
	// NewPool builds the converter pool for a batch. Tests replace it to
	// avoid launching Chrome.
	NewPool func(size int, opts ...md2slides.Option) Pool
	// Serve runs the query server until ctx is done. Tests replace it to
	// avoid binding a port.
	Serve serveFunc
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:     time.Now,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		NewPool: newConverterPool,
		Serve:   listenAndServe,
	}
}
