package models

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// scriptFile is the on-disk layout of a script document. JSON documents are
// accepted too since YAML is a superset.
type scriptFile struct {
	Events map[string][]any `yaml:"events"`
	Units  map[string]Unit  `yaml:"units"`
}

// Script is the result of loading one or more script files.
type Script struct {
	Events      map[string]Event
	Units       map[string]Unit
	Diagnostics []Diagnostic
}

// Registry returns an event registry over the script's events.
func (s *Script) Registry() *Registry {
	return NewRegistry(s.Events)
}

// Registry is the lookup table of loaded events, keyed by id.
type Registry struct {
	events map[string]Event
}

func NewRegistry(events map[string]Event) *Registry {
	copied := make(map[string]Event, len(events))
	for id, ev := range events {
		copied[id] = ev
	}
	return &Registry{events: copied}
}

func (r *Registry) Get(id string) (Event, bool) {
	if r == nil {
		return Event{}, false
	}
	ev, ok := r.events[id]
	return ev, ok
}

// IDs returns all event ids in lexical order.
func (r *Registry) IDs() []string {
	if r == nil {
		return nil
	}
	ids := make([]string, 0, len(r.events))
	for id := range r.events {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// LoadBytes parses one script document. Malformed records degrade to
// Fallback steps and are reported in Diagnostics; only document-level
// problems are returned as errors.
func LoadBytes(data []byte, parser *Parser) (*Script, error) {
	var file scriptFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode script: %w", err)
	}
	s := &Script{Events: make(map[string]Event), Units: make(map[string]Unit)}
	if err := s.merge(file, parser); err != nil {
		return nil, err
	}
	return s, nil
}

func LoadFile(path string, parser *Parser) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := LoadBytes(data, parser)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// LoadDir loads every script file in dir. Event ids must be unique across
// files. If path names a file rather than a directory it is loaded alone.
func LoadDir(path string, parser *Parser) (*Script, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return LoadFile(path, parser)
	}

	files, err := ListScripts(path)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no script files in %s", path)
	}

	s := &Script{Events: make(map[string]Event), Units: make(map[string]Unit)}
	for _, name := range files {
		full := filepath.Join(path, name)
		data, err := os.ReadFile(full)
		if err != nil {
			return nil, err
		}
		var file scriptFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("%s: decode script: %w", full, err)
		}
		if err := s.merge(file, parser); err != nil {
			return nil, fmt.Errorf("%s: %w", full, err)
		}
	}
	return s, nil
}

// ListScripts returns the script file names in dir, sorted.
func ListScripts(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".yaml", ".yml", ".json":
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

func (s *Script) merge(file scriptFile, parser *Parser) error {
	if parser == nil {
		parser = NewParser(nil)
	}

	ids := make([]string, 0, len(file.Events))
	for id := range file.Events {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		if strings.TrimSpace(id) == "" {
			return fmt.Errorf("event id cannot be blank")
		}
		if _, exists := s.Events[id]; exists {
			return fmt.Errorf("duplicate event %q", id)
		}
		steps, diags := parser.ParseChain(id, file.Events[id])
		s.Events[id] = Event{ID: id, Steps: steps}
		s.Diagnostics = append(s.Diagnostics, diags...)
	}

	for id, unit := range file.Units {
		if _, exists := s.Units[id]; exists {
			return fmt.Errorf("duplicate unit %q", id)
		}
		if unit.Facing != "" {
			if _, err := ParseDirection(unit.Facing); err != nil {
				return fmt.Errorf("unit %q: %w", id, err)
			}
		}
		s.Units[id] = unit
	}
	return nil
}
