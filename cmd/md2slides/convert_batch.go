package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	md2slides "github.com/alnah/go-md2slides"
	"github.com/alnah/go-md2slides/internal/hints"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// conversionParams groups parameters shared across every deck of a batch.
type conversionParams struct {
	css         string
	theme       string
	strictTheme bool
	htmlOutput  bool
	htmlOnly    bool
	scene       string
}

// OutputFile is one file written for a deck.
type OutputFile struct {
	Path string
	Size int64
}

// DeckResult holds the outcome of a single deck conversion.
type DeckResult struct {
	InputPath    string
	OutputDir    string
	Theme        string
	Font         string
	MissingFonts []string
	Slides       int
	Files        []OutputFile
	Err          error // whole-deck failure or joined slide failures
	Duration     time.Duration

	// themes lists the registered themes when Err is an unknown theme.
	themes []string
}

// convertBatch processes decks concurrently using the converter pool.
func convertBatch(ctx context.Context, pool Pool, decks []DeckToConvert, params *conversionParams) []DeckResult {
	if len(decks) == 0 {
		return nil
	}

	concurrency := min(pool.Size(), len(decks))

	results := make([]DeckResult, len(decks))
	var wg sync.WaitGroup
	jobs := make(chan int, len(decks))

	for range concurrency {
		wg.Add(1)
		go func() {
			defer wg.Done()

			conv, err := pool.Acquire()
			if err != nil {
				// Converter creation failed, mark the jobs this worker takes as failed
				for idx := range jobs {
					results[idx] = DeckResult{
						InputPath: decks[idx].InputPath,
						OutputDir: decks[idx].OutputDir,
						Err:       fmt.Errorf("starting converter: %w", err),
					}
				}
				return
			}
			defer pool.Release(conv)

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = DeckResult{
						InputPath: decks[idx].InputPath,
						OutputDir: decks[idx].OutputDir,
						Err:       ctx.Err(),
					}
					continue
				}
				results[idx] = convertDeck(ctx, conv, decks[idx], params)
			}
		}()
	}

	for i := range decks {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// convertDeck converts one markdown file and writes its slides. Slides that
// rendered are written even when others failed.
func convertDeck(ctx context.Context, conv SlideConverter, d DeckToConvert, params *conversionParams) DeckResult {
	start := time.Now()
	result := DeckResult{
		InputPath: d.InputPath,
		OutputDir: d.OutputDir,
	}
	finish := func(err error) DeckResult {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	content, err := os.ReadFile(d.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		return finish(fmt.Errorf("%w: %v", ErrReadMarkdown, err))
	}

	res, err := conv.Convert(ctx, md2slides.Input{
		Markdown:    string(content),
		Theme:       params.theme,
		StrictTheme: params.strictTheme,
		CSS:         params.css,
		HTMLOnly:    params.htmlOnly,
		Scene:       params.scene,
	})
	if err != nil {
		if errors.Is(err, md2slides.ErrThemeNotFound) {
			result.themes = conv.Themes()
		}
		return finish(err)
	}
	result.Theme = res.Theme
	result.Font = res.Font
	result.MissingFonts = res.MissingFonts
	result.Slides = len(res.Slides)

	if err := os.MkdirAll(d.OutputDir, dirPermissions); err != nil {
		return finish(fmt.Errorf("%w: creating output directory: %v", ErrWriteOutput, err))
	}

	for _, slide := range res.Slides {
		if params.htmlOnly || params.htmlOutput {
			if err := result.write(slideFileName(slide.Index, "html"), slide.HTML); err != nil {
				return finish(err)
			}
		}
		if slide.SVG != nil {
			if err := result.write(slideFileName(slide.Index, "svg"), slide.SVG); err != nil {
				return finish(err)
			}
		}
	}

	if res.Scene != nil {
		if err := result.write(sceneFileName, res.Scene); err != nil {
			return finish(err)
		}
	}

	return finish(res.Err())
}

// write stores data under the deck's output directory and records it.
func (r *DeckResult) write(name string, data []byte) error {
	path := filepath.Join(r.OutputDir, name)
	// #nosec G306 -- slides are meant to be readable
	if err := os.WriteFile(path, data, filePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	r.Files = append(r.Files, OutputFile{Path: path, Size: int64(len(data))})
	return nil
}

// ResultSummary holds the count of succeeded and failed decks.
type ResultSummary struct {
	Succeeded int
	Failed    int
	Files     int
	Bytes     int64
}

// countResults tallies decks and written files.
func countResults(results []DeckResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
		summary.Files += len(r.Files)
		for _, f := range r.Files {
			summary.Bytes += f.Size
		}
	}
	return summary
}

// printResults writes one line per generated file, then failures and a
// summary for multi-deck runs. Returns the number of failed decks.
func printResults(results []DeckResult, quiet, verbose bool, env *Environment) int {
	summary := countResults(results)

	for _, r := range results {
		if !quiet {
			for _, f := range r.Files {
				fmt.Fprintf(env.Stdout, "Created %s (%s)\n", f.Path, humanize.Bytes(uint64(f.Size))) // #nosec G115 -- sizes are non-negative
			}
			if verbose && r.Err == nil {
				fmt.Fprintf(env.Stdout, "%s -> %s (%d slides, theme %s, font %s, %v)\n",
					r.InputPath, r.OutputDir, r.Slides, r.Theme, r.Font, r.Duration.Round(time.Millisecond))
			}
		}

		if len(r.MissingFonts) > 0 {
			fmt.Fprintf(env.Stderr, "warning: %s: theme font not installed, using %s%s\n",
				r.InputPath, r.Font, hints.ForMissingFonts(r.MissingFonts))
		}

		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v%s\n", r.InputPath, r.Err, hintFor(r.Err, r.themes))
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed (%d files, %s)\n",
			summary.Succeeded, summary.Failed, summary.Files, humanize.Bytes(uint64(summary.Bytes))) // #nosec G115 -- sizes are non-negative
	}

	return summary.Failed
}
