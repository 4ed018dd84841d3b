package tutorial

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Script is one narrated tutorial: an ordered list of sections whose text
// may carry {{variable}} placeholders filled at synthesis time.
type Script struct {
	Slug     string    `yaml:"slug"`
	Title    string    `yaml:"title"`
	Voice    string    `yaml:"voice"`
	Sections []Section `yaml:"sections"`
}

// Section is one screen's worth of narration.
type Section struct {
	ID   string `yaml:"id"`
	Text string `yaml:"text"`
}

var placeholderRe = regexp.MustCompile(`\{\{\s*([a-zA-Z0-9_]+)\s*\}\}`)

// LoadScript reads and validates a YAML narration script.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading script: %w", err)
	}

	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing script %s: %w", filepath.Base(path), err)
	}

	if s.Slug == "" {
		s.Slug = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if len(s.Sections) == 0 {
		return nil, fmt.Errorf("script %s has no sections", s.Slug)
	}
	seen := make(map[string]bool, len(s.Sections))
	for i, sec := range s.Sections {
		if sec.ID == "" {
			return nil, fmt.Errorf("script %s: section %d has no id", s.Slug, i)
		}
		if seen[sec.ID] {
			return nil, fmt.Errorf("script %s: duplicate section id %q", s.Slug, sec.ID)
		}
		seen[sec.ID] = true
	}
	return &s, nil
}

// ListScripts returns the paths of the YAML scripts under dir, sorted by name.
func ListScripts(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading script dir: %w", err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		if ext == ".yaml" || ext == ".yml" {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// Vars returns the placeholder names used across the script, sorted and
// de-duplicated.
func (s *Script) Vars() []string {
	seen := make(map[string]bool)
	for _, sec := range s.Sections {
		for _, m := range placeholderRe.FindAllStringSubmatch(sec.Text, -1) {
			seen[m[1]] = true
		}
	}
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Fill returns a copy of the script with every placeholder replaced by its
// value from vars. A placeholder with no value is an error; narration with a
// literal "{{agent_name}}" read aloud is worse than failing fast.
func (s *Script) Fill(vars map[string]string) (*Script, error) {
	filled := &Script{
		Slug:     s.Slug,
		Title:    s.Title,
		Voice:    s.Voice,
		Sections: make([]Section, len(s.Sections)),
	}
	for i, sec := range s.Sections {
		var missing string
		text := placeholderRe.ReplaceAllStringFunc(sec.Text, func(match string) string {
			name := placeholderRe.FindStringSubmatch(match)[1]
			v, ok := vars[name]
			if !ok {
				if missing == "" {
					missing = name
				}
				return match
			}
			return v
		})
		if missing != "" {
			return nil, fmt.Errorf("script %s section %s: no value for {{%s}}", s.Slug, sec.ID, missing)
		}
		filled.Sections[i] = Section{ID: sec.ID, Text: text}
	}
	return filled, nil
}
