// Copyright (C) 2025-2026 DevSecOps Dashboard
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package mockbackend emulates the ERP backend for offline development:
// an in-memory document store seeded from YAML fixtures, exposed over the
// same HTTP contract the real backend speaks.
package mockbackend

import (
	"embed"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

//go:embed fixtures/*.yaml
var embeddedFixtures embed.FS

// Doc is a schemaless backend document, keyed by snake_case field names.
// Every doc carries at least a "name".
type Doc map[string]any

// Store holds documents grouped by doctype. All methods are safe for
// concurrent use; handlers and the websocket broadcaster share one instance.
type Store struct {
	mu   sync.RWMutex
	docs map[string]map[string]Doc // doctype → name → doc
}

// fixtureFile is the YAML schema: doctype → list of documents.
type fixtureFile map[string][]Doc

// LoadEmbedded builds a store from the fixture set compiled into the binary.
func LoadEmbedded() (*Store, error) {
	s := newStore()
	entries, err := embeddedFixtures.ReadDir("fixtures")
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		raw, err := embeddedFixtures.ReadFile("fixtures/" + entry.Name())
		if err != nil {
			return nil, err
		}
		if err := s.loadYAML(raw); err != nil {
			return nil, fmt.Errorf("fixture %s: %w", entry.Name(), err)
		}
	}
	return s, nil
}

// LoadFile builds a store from a fixture file on disk, for custom data sets.
func LoadFile(path string) (*Store, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s := newStore()
	if err := s.loadYAML(raw); err != nil {
		return nil, fmt.Errorf("fixture %s: %w", path, err)
	}
	return s, nil
}

func newStore() *Store {
	return &Store{docs: make(map[string]map[string]Doc)}
}

func (s *Store) loadYAML(raw []byte) error {
	var file fixtureFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return err
	}
	for doctype, docs := range file {
		for _, doc := range docs {
			if _, ok := doc["name"]; !ok {
				return fmt.Errorf("doctype %s: fixture document without a name", doctype)
			}
			s.put(doctype, doc)
		}
	}
	return nil
}

func (s *Store) put(doctype string, doc Doc) {
	if s.docs[doctype] == nil {
		s.docs[doctype] = make(map[string]Doc)
	}
	s.docs[doctype][fmt.Sprint(doc["name"])] = doc
}

// Filter is one list constraint in the backend's triplet form. Only the
// "=" and "!=" operators are supported; that covers everything the client
// sends.
type Filter struct {
	Field    string
	Operator string
	Value    string
}

// List returns documents of a doctype matching all filters, restricted to
// the requested fields (all fields when empty), ordered by name for
// deterministic output.
func (s *Store) List(doctype string, filters []Filter, fields []string) []Doc {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Doc
	for _, doc := range s.docs[doctype] {
		if matches(doc, filters) {
			out = append(out, project(doc, fields))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return fmt.Sprint(out[i]["name"]) < fmt.Sprint(out[j]["name"])
	})
	return out
}

// Get returns one document by name, or nil when absent.
func (s *Store) Get(doctype, name string) Doc {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[doctype][name]
	if !ok {
		return nil
	}
	return project(doc, nil)
}

// Insert stores a new document, minting a name when none is supplied, and
// returns the stored copy.
func (s *Store) Insert(doctype string, doc Doc) Doc {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := cloneDoc(doc)
	name, _ := stored["name"].(string)
	if name == "" {
		prefix := strings.ToUpper(strings.ReplaceAll(doctype, " ", "-"))
		name = fmt.Sprintf("%s-%s", prefix, uuid.New().String()[:8])
		stored["name"] = name
	}
	s.put(doctype, stored)
	return project(stored, nil)
}

// Update merges changed fields into an existing document. Returns nil when
// the document does not exist. The name field is immutable.
func (s *Store) Update(doctype, name string, changes Doc) Doc {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[doctype][name]
	if !ok {
		return nil
	}
	for k, v := range changes {
		if k == "name" {
			continue
		}
		doc[k] = v
	}
	return project(doc, nil)
}

// Delete removes a document. Reports whether it existed.
func (s *Store) Delete(doctype, name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.docs[doctype][name]; !ok {
		return false
	}
	delete(s.docs[doctype], name)
	return true
}

func matches(doc Doc, filters []Filter) bool {
	for _, f := range filters {
		got := fmt.Sprint(doc[f.Field])
		switch f.Operator {
		case "", "=":
			if got != f.Value {
				return false
			}
		case "!=":
			if got == f.Value {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// project copies a doc, keeping only the requested fields (all when empty).
// Copies are returned so callers can never mutate the store in place.
func project(doc Doc, fields []string) Doc {
	if len(fields) == 0 {
		return cloneDoc(doc)
	}
	out := make(Doc, len(fields))
	for _, f := range fields {
		if v, ok := doc[f]; ok {
			out[f] = v
		}
	}
	return out
}

func cloneDoc(doc Doc) Doc {
	out := make(Doc, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	return out
}
