// Package content loads the sketchbook's pages: the ordered, opaque panels
// the page stack turns through.
package content

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Stack is the ordered list of panels.
type Stack struct {
	Sections []Section
	byID     map[string]int
}

// NewStack orders sections by their Order field (ties keep input order)
// and rejects duplicate or empty IDs.
func NewStack(sections []Section) (*Stack, error) {
	if len(sections) == 0 {
		return nil, fmt.Errorf("page stack is empty")
	}
	sorted := append([]Section(nil), sections...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Order < sorted[j].Order })

	s := &Stack{Sections: sorted, byID: make(map[string]int, len(sorted))}
	for i, sec := range sorted {
		if sec.ID == "" {
			return nil, fmt.Errorf("section %d (%q) has no id", i, sec.Title)
		}
		if _, dup := s.byID[sec.ID]; dup {
			return nil, fmt.Errorf("duplicate section id %q", sec.ID)
		}
		s.byID[sec.ID] = i
	}
	return s, nil
}

// Default returns the rendered built-in stack.
func Default() (*Stack, error) {
	s, err := NewStack(DefaultSections())
	if err != nil {
		return nil, err
	}
	if err := s.Render(); err != nil {
		return nil, err
	}
	return s, nil
}

// Len returns the number of pages.
func (s *Stack) Len() int { return len(s.Sections) }

// Index returns the page index of the section with the given id.
func (s *Stack) Index(id string) (int, bool) {
	i, ok := s.byID[id]
	return i, ok
}

// At returns the section at page index i.
func (s *Stack) At(i int) (Section, bool) {
	if i < 0 || i >= len(s.Sections) {
		return Section{}, false
	}
	return s.Sections[i], true
}

// Get returns the section with the given id.
func (s *Stack) Get(id string) (Section, bool) {
	i, ok := s.byID[id]
	if !ok {
		return Section{}, false
	}
	return s.Sections[i], true
}

// Load reads markdown panels from dir. Each file may start with a YAML front
// matter block delimited by "---" lines. A missing or empty dir yields the
// built-in stack.
func Load(dir string, include, exclude []string) (*Stack, error) {
	if dir == "" {
		return Default()
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return Default()
	} else if err != nil {
		return nil, fmt.Errorf("accessing content dir %s: %w", dir, err)
	}
	if len(include) == 0 {
		include = DefaultInclude
	}

	var sections []Section
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && shouldSkipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		if !MatchesInclude(rel, include) || MatchesExclude(rel, exclude) {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", rel, err)
		}
		sec, err := ParseSection(data)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", rel, err)
		}
		if sec.ID == "" {
			sec.ID = strings.TrimSuffix(filepath.Base(rel), filepath.Ext(rel))
		}
		sec.Source = filepath.ToSlash(rel)
		sections = append(sections, sec)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking content dir: %w", err)
	}
	if len(sections) == 0 {
		return Default()
	}

	s, err := NewStack(sections)
	if err != nil {
		return nil, err
	}
	if err := s.Render(); err != nil {
		return nil, err
	}
	return s, nil
}

var frontMatterDelim = []byte("---")

// ParseSection splits optional YAML front matter from the markdown body.
func ParseSection(data []byte) (Section, error) {
	var sec Section
	data = bytes.TrimPrefix(data, []byte("\ufeff"))
	trimmed := bytes.TrimLeft(data, " \t\r\n")

	if !bytes.HasPrefix(trimmed, frontMatterDelim) {
		sec.Body = string(data)
		sec.Title = extractTitle(sec.Body)
		sec.Kind = KindProse
		return sec, nil
	}

	rest := trimmed[len(frontMatterDelim):]
	end := bytes.Index(rest, []byte("\n---"))
	if end < 0 {
		return sec, fmt.Errorf("front matter is not closed")
	}
	if err := yaml.Unmarshal(rest[:end], &sec); err != nil {
		return sec, fmt.Errorf("decoding front matter: %w", err)
	}

	body := rest[end+len("\n---"):]
	if i := bytes.IndexByte(body, '\n'); i >= 0 {
		body = body[i+1:]
	} else {
		body = nil
	}
	sec.Body = strings.TrimSpace(string(body))
	if sec.Title == "" {
		sec.Title = extractTitle(sec.Body)
	}
	if sec.Kind == "" {
		sec.Kind = KindProse
	}
	return sec, nil
}

// extractTitle returns the first H1 heading of a markdown body.
func extractTitle(body string) string {
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "# "))
		}
	}
	return ""
}
