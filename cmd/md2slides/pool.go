package main

import (
	"context"

	md2slides "github.com/alnah/go-md2slides"
)

// SlideConverter is the part of md2slides.Converter the CLI uses.
type SlideConverter interface {
	Convert(ctx context.Context, input md2slides.Input) (*md2slides.ConvertResult, error)
	Themes() []string
}

// Compile-time interface implementation check.
var _ SlideConverter = (*md2slides.Converter)(nil)

// Pool abstracts converter pool operations for testability.
type Pool interface {
	Acquire() (SlideConverter, error)
	Release(SlideConverter)
	Size() int
	Close() error
}

// converterPool adapts md2slides.ConverterPool to Pool.
type converterPool struct {
	pool *md2slides.ConverterPool
}

// newConverterPool creates a pool of size converters, each owning one
// browser started on first use.
func newConverterPool(size int, opts ...md2slides.Option) Pool {
	return &converterPool{pool: md2slides.NewConverterPool(size, opts...)}
}

func (p *converterPool) Acquire() (SlideConverter, error) {
	conv, err := p.pool.Acquire()
	if err != nil {
		return nil, err
	}
	return conv, nil
}

func (p *converterPool) Release(c SlideConverter) {
	if conv, ok := c.(*md2slides.Converter); ok {
		p.pool.Release(conv)
	}
}

func (p *converterPool) Size() int    { return p.pool.Size() }
func (p *converterPool) Close() error { return p.pool.Close() }
