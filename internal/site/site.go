// Package site serves the sketchbook page and the read-only page APIs.
package site

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/sketchbook/internal/book"
	"github.com/ziadkadry99/sketchbook/internal/commission"
	"github.com/ziadkadry99/sketchbook/internal/content"
	"github.com/ziadkadry99/sketchbook/internal/input"
)

// Config describes the page shell.
type Config struct {
	Title  string
	Artist string
	// Brand labels the navigation bar; it defaults to Artist.
	Brand     string
	AssetsDir string
	// The page script falls back to these when it has no live session,
	// as in a static export.
	TurnDuration   time.Duration
	WheelThreshold float64
	SwipeThreshold float64
	// Static renders a page that never opens a socket.
	Static bool
}

// Site renders the page stack as one HTML document.
type Site struct {
	cfg   Config
	stack *content.Stack
	tmpl  *template.Template
}

// PageSummary is one entry of GET /api/pages.
type PageSummary struct {
	Index int          `json:"index"`
	ID    string       `json:"id"`
	Title string       `json:"title"`
	Kind  content.Kind `json:"kind"`
}

// pageData feeds pageTemplate.
type pageData struct {
	Title    string
	Artist   string
	Sections []content.Section
	Nav      content.NavBar
	Pricing  []commission.Price
	Projects []commission.ProjectType
	TurnMS   int64
	Wheel    float64
	Swipe    float64
	Static   bool
}

// New parses the page template.
func New(cfg Config, stack *content.Stack) (*Site, error) {
	if cfg.Brand == "" {
		cfg.Brand = cfg.Artist
	}
	if cfg.TurnDuration <= 0 {
		cfg.TurnDuration = book.DefaultTurnDuration
	}
	if cfg.WheelThreshold <= 0 {
		cfg.WheelThreshold = input.DefaultWheelThreshold
	}
	if cfg.SwipeThreshold <= 0 {
		cfg.SwipeThreshold = input.DefaultSwipeThreshold
	}
	tmpl, err := template.New("page").Funcs(template.FuncMap{
		"add": func(a, b int) int { return a + b },
	}).Parse(pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing page template: %w", err)
	}
	return &Site{cfg: cfg, stack: stack, tmpl: tmpl}, nil
}

// RegisterRoutes mounts the page, the page APIs and the asset directory.
func (s *Site) RegisterRoutes(r chi.Router) {
	r.Get("/", s.handleIndex)
	r.Get("/api/pages", s.handlePages)
	r.Get("/api/pages/{id}", s.handlePage)
	r.Get("/api/nav", s.handleNav)

	if s.cfg.AssetsDir != "" {
		if info, err := os.Stat(s.cfg.AssetsDir); err == nil && info.IsDir() {
			fs := http.StripPrefix("/assets/", http.FileServer(http.Dir(s.cfg.AssetsDir)))
			r.Handle("/assets/*", fs)
		} else {
			log.Printf("site: assets dir %s not found, /assets disabled", s.cfg.AssetsDir)
		}
	}
}

// Render writes the full page.
func (s *Site) Render() ([]byte, error) {
	data := pageData{
		Title:    s.cfg.Title,
		Artist:   s.cfg.Artist,
		Sections: s.stack.Sections,
		Nav:      s.stack.NavBar(s.cfg.Brand, 0),
		Pricing:  commission.Pricing(),
		Projects: []commission.ProjectType{
			commission.ProjectPortrait, commission.ProjectScene,
			commission.ProjectCharacter, commission.ProjectOther,
		},
		TurnMS: s.cfg.TurnDuration.Milliseconds(),
		Wheel:  s.cfg.WheelThreshold,
		Swipe:  s.cfg.SwipeThreshold,
		Static: s.cfg.Static,
	}
	var buf bytes.Buffer
	if err := s.tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("rendering page: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *Site) handleIndex(w http.ResponseWriter, r *http.Request) {
	page, err := s.Render()
	if err != nil {
		log.Printf("site: %v", err)
		http.Error(w, "could not render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page)
}

func (s *Site) handlePages(w http.ResponseWriter, r *http.Request) {
	out := make([]PageSummary, 0, s.stack.Len())
	for i, sec := range s.stack.Sections {
		out = append(out, PageSummary{Index: i, ID: sec.ID, Title: sec.Title, Kind: sec.Kind})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Site) handlePage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	sec, ok := s.stack.Get(id)
	if !ok {
		// Numeric ids address pages by index.
		if n, err := strconv.Atoi(id); err == nil {
			sec, ok = s.stack.At(n)
		}
	}
	if !ok {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, sec)
}

func (s *Site) handleNav(w http.ResponseWriter, r *http.Request) {
	idx, err := strconv.Atoi(r.URL.Query().Get("index"))
	if err != nil || idx < 0 || idx >= s.stack.Len() {
		idx = 0
	}
	writeJSON(w, http.StatusOK, s.stack.NavBar(s.cfg.Brand, idx))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
