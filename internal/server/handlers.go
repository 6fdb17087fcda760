package server

import (
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/alnah/go-md2slides/internal/assets"
	"github.com/alnah/go-md2slides/internal/pipeline"
	"github.com/alnah/go-md2slides/internal/scene"
)

var mimeTypes = map[string]string{
	".svg":  "image/svg+xml",
	".html": "text/html; charset=utf-8",
	".json": "application/json",
	".js":   "application/javascript",
	".png":  "image/png",
	".css":  "text/css; charset=utf-8",
}

const importerFile = "importer.html"

type slidesResponse struct {
	Slides []string `json:"slides"`
	Total  int      `json:"total"`
}

type dataResponse struct {
	Slides []pipeline.Slide `json:"slides"`
	Total  int              `json:"total"`
}

// handleListSlides lists the SVG files in the output directory.
func (s *Server) handleListSlides(w http.ResponseWriter, r *http.Request) {
	entries, err := os.ReadDir(s.cfg.OutputDir)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		s.log.Error(err, "listing output directory")
		jsonError(w, "failed to list slides", http.StatusInternalServerError)
		return
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ".svg") {
			names = append(names, e.Name())
		}
	}
	slices.Sort(names)

	writeJSON(w, http.StatusOK, slidesResponse{Slides: names, Total: len(names)})
}

// handleData returns every slide with its lexed tokens.
func (s *Server) handleData(w http.ResponseWriter, r *http.Request) {
	slides, ok := s.loadSlides(w)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, dataResponse{Slides: slides, Total: len(slides)})
}

// handleSlideData returns one slide by 1-based index.
func (s *Server) handleSlideData(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		jsonError(w, "slide index must be a number", http.StatusBadRequest)
		return
	}

	slides, ok := s.loadSlides(w)
	if !ok {
		return
	}
	if index < 1 || index > len(slides) {
		jsonError(w, "slide not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, slides[index-1])
}

// handleScene builds the native scene for the whole deck. The mode query
// parameter selects "design" (default) or "slides" placement.
func (s *Server) handleScene(w http.ResponseWriter, r *http.Request) {
	mode := scene.Mode(r.URL.Query().Get("mode"))
	switch mode {
	case "":
		mode = scene.ModeDesign
	case scene.ModeDesign, scene.ModeSlides:
	default:
		jsonError(w, "mode must be design or slides", http.StatusBadRequest)
		return
	}

	slides, ok := s.loadSlides(w)
	if !ok {
		return
	}

	doc, _, err := scene.Run(r.Context(), slides, s.cfg.Theme, scene.Options{Mode: mode, Layout: s.cfg.Layout})
	if err != nil {
		if errors.Is(err, scene.ErrNoSlides) {
			jsonError(w, "markdown has no slides", http.StatusNotFound)
			return
		}
		s.log.Error(err, "building scene")
		var f *scene.Failure
		if errors.As(err, &f) {
			writeJSON(w, http.StatusServiceUnavailable, f)
			return
		}
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// handleStatic serves files from the output directory. The root path
// serves the importer page, falling back to the built-in one.
func (s *Server) handleStatic(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(r.URL.Path, "/")
	if name == "" {
		name = importerFile
	}

	content, err := s.readOutputFile(name)
	if err != nil && name == importerFile {
		var page string
		if page, err = s.cfg.Assets.LoadTemplate(assets.ImporterTemplateName); err == nil {
			content = []byte(page)
		}
	}
	if err != nil {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}

	contentType, ok := mimeTypes[strings.ToLower(filepath.Ext(name))]
	if !ok {
		contentType = "text/plain; charset=utf-8"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(content)
}

// readOutputFile reads name from the output directory, refusing paths that
// leave it.
func (s *Server) readOutputFile(name string) ([]byte, error) {
	if s.cfg.OutputDir == "" {
		return nil, fs.ErrNotExist
	}
	root, err := os.OpenRoot(s.cfg.OutputDir)
	if err != nil {
		return nil, err
	}
	defer func() { _ = root.Close() }()

	return root.ReadFile(filepath.FromSlash(name))
}

// loadSlides reads and parses the markdown source, writing the error
// response itself when that fails.
func (s *Server) loadSlides(w http.ResponseWriter) ([]pipeline.Slide, bool) {
	data, err := os.ReadFile(s.cfg.MarkdownPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || s.cfg.MarkdownPath == "" {
			jsonError(w, "Markdown file not found", http.StatusNotFound)
			return nil, false
		}
		s.log.Error(err, "reading markdown")
		jsonError(w, "failed to read markdown", http.StatusInternalServerError)
		return nil, false
	}
	return pipeline.Parse(string(data)), true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, status int) {
	writeJSON(w, status, map[string]string{"error": msg})
}
