package registry

import (
	"encoding/json"
	"fmt"
	"os"
)

// Language describes one language the service knows about. The registry
// is loaded once at startup and only read afterwards; hyperlink fields
// are derived at render time, never stored here.
type Language struct {
	Code  string `json:"code"`
	Title string `json:"title"`
}

// Model describes a named translation model and the language pairs it
// serves. Name doubles as the route-path token.
type Model struct {
	Name     string   `json:"model"`
	Supports Supports `json:"supports"`
	Default  bool     `json:"default"`
	Title    string   `json:"title"`
	Domain   string   `json:"domain"`
}

// Registry holds the language and model catalogs. Immutable after Load;
// safe for unsynchronized concurrent reads.
type Registry struct {
	languages     []Language
	languagesByID map[string]Language
	models        []Model
	modelsByName  map[string]*Model
}

type registryFile struct {
	Languages []Language `json:"languages"`
	Models    []Model    `json:"models"`
}

// Load reads the registry from path, or returns the built-in catalog
// when path is empty.
func Load(path string) (*Registry, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read models file: %w", err)
	}
	var rf registryFile
	if err := json.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parse models file: %w", err)
	}
	return New(rf.Languages, rf.Models)
}

// New builds a registry from explicit catalogs, validating model names
// are unique and every model supports at least one pair.
func New(languages []Language, models []Model) (*Registry, error) {
	r := &Registry{
		languages:     languages,
		languagesByID: make(map[string]Language, len(languages)),
		models:        models,
		modelsByName:  make(map[string]*Model, len(models)),
	}
	for _, l := range languages {
		r.languagesByID[l.Code] = l
	}
	for i := range models {
		m := &models[i]
		if m.Supports.Len() == 0 {
			return nil, fmt.Errorf("model %q supports no language pairs", m.Name)
		}
		if _, dup := r.modelsByName[m.Name]; dup {
			return nil, fmt.Errorf("duplicate model name %q", m.Name)
		}
		r.modelsByName[m.Name] = m
	}
	return r, nil
}

// Default returns the built-in catalog used when no models file is
// configured.
func Default() *Registry {
	r, err := New(
		[]Language{
			{Code: "en", Title: "English"},
			{Code: "cs", Title: "Czech"},
			{Code: "uk", Title: "Ukrainian"},
			{Code: "ru", Title: "Russian"},
			{Code: "fr", Title: "French"},
		},
		[]Model{
			{
				Name:     "en-cs",
				Supports: NewSupports(SupportsPair{Source: "en", Targets: []string{"cs"}}),
				Default:  true,
				Title:    "en-cs (English->Czech (CUBBITT))",
			},
			{
				Name:     "cs-en",
				Supports: NewSupports(SupportsPair{Source: "cs", Targets: []string{"en"}}),
				Default:  true,
				Title:    "cs-en (Czech->English (CUBBITT))",
			},
			{
				Name: "doc-en-cs",
				Supports: NewSupports(
					SupportsPair{Source: "en", Targets: []string{"cs"}},
					SupportsPair{Source: "cs", Targets: []string{"en"}},
				),
				Title:  "doc-en-cs (English<->Czech document tuned)",
				Domain: "documents",
			},
			{
				Name: "uk-cs",
				Supports: NewSupports(
					SupportsPair{Source: "uk", Targets: []string{"cs"}},
					SupportsPair{Source: "cs", Targets: []string{"uk"}},
				),
				Default: true,
				Title:   "uk-cs (Ukrainian<->Czech)",
			},
		},
	)
	if err != nil {
		panic(err)
	}
	return r
}

// Languages returns the catalog in load order.
func (r *Registry) Languages() []Language {
	return r.languages
}

// Language returns the language with the given code.
func (r *Registry) Language(code string) (Language, bool) {
	l, ok := r.languagesByID[code]
	return l, ok
}

// Models returns the catalog in load order.
func (r *Registry) Models() []Model {
	return r.models
}

// Model returns the model with the given name.
func (r *Registry) Model(name string) (*Model, bool) {
	m, ok := r.modelsByName[name]
	return m, ok
}

// ModelNames returns all model names in load order.
func (r *Registry) ModelNames() []string {
	names := make([]string, len(r.models))
	for i, m := range r.models {
		names[i] = m.Name
	}
	return names
}

// ModelForPair picks the model serving src -> tgt: a default-flagged
// model wins over a non-default one, ties resolve in load order.
func (r *Registry) ModelForPair(src, tgt string) (*Model, bool) {
	var fallback *Model
	for i := range r.models {
		m := &r.models[i]
		if !m.Supports.HasPair(src, tgt) {
			continue
		}
		if m.Default {
			return m, true
		}
		if fallback == nil {
			fallback = m
		}
	}
	return fallback, fallback != nil
}
