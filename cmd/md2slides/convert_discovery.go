package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	md2slides "github.com/alnah/go-md2slides"
)

// DeckToConvert is one markdown file and the directory its slides go to.
type DeckToConvert struct {
	InputPath string
	OutputDir string
}

// discoverDecks finds all markdown decks to convert.
//
// A single file writes into outputDir itself. Files found under a
// directory each get their own folder below outputDir, mirroring the
// input tree. With no outputDir, each deck gets a folder named after it
// next to the markdown file.
func discoverDecks(inputPath, outputDir string) ([]DeckToConvert, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if err := validateMarkdownExtension(inputPath); err != nil {
			return nil, err
		}
		out := outputDir
		if out == "" {
			out = deckDir(inputPath)
		}
		return []DeckToConvert{{InputPath: inputPath, OutputDir: out}}, nil
	}

	var decks []DeckToConvert
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() {
			return nil
		}
		if !isMarkdown(path) {
			return nil
		}
		decks = append(decks, DeckToConvert{
			InputPath: path,
			OutputDir: resolveDeckDir(path, outputDir, inputPath),
		})
		return nil
	})

	return decks, err
}

// resolveDeckDir determines the output folder for a deck found under
// baseInputDir.
func resolveDeckDir(inputPath, outputDir, baseInputDir string) string {
	if outputDir == "" {
		return deckDir(inputPath)
	}

	name := deckName(inputPath)
	if relPath, err := filepath.Rel(baseInputDir, inputPath); err == nil {
		return filepath.Join(outputDir, filepath.Dir(relPath), name)
	}
	return filepath.Join(outputDir, name)
}

// deckDir is the folder named after the deck next to its markdown file.
func deckDir(inputPath string) string {
	return filepath.Join(filepath.Dir(inputPath), deckName(inputPath))
}

// deckName is the file name without its extension.
func deckName(inputPath string) string {
	base := filepath.Base(inputPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func isMarkdown(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".md" || ext == ".markdown"
}

// validateMarkdownExtension checks that the file has a .md or .markdown extension.
func validateMarkdownExtension(path string) error {
	if !isMarkdown(path) {
		return fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(path))
	}
	return nil
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > md2slides.MaxPoolSize {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, md2slides.MaxPoolSize)
	}
	return nil
}

// slideFileName is the SVG name of the slide at 0-based index.
func slideFileName(index int, ext string) string {
	return fmt.Sprintf("slide_%02d.%s", index+1, ext)
}

// sceneFileName is the scene JSON written next to the slides.
const sceneFileName = "slides.json"
