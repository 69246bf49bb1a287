// Package templates holds the starter files written into a new project,
// keyed by language bucket name.
package templates

import (
	"strings"

	"github.com/Akaiko1/thequest/internal/config"
)

// File is a single starter file and its initial content.
type File struct {
	Name    string
	Content string
}

// Registry maps language names to their starter files and keeps display order.
type Registry struct {
	order []string
	files map[string][]File
}

// Default returns the built-in languages: Python, C++, C#, PHP, Node.js, Frontend.
func Default() *Registry {
	r := &Registry{files: make(map[string][]File)}
	r.set("Python", []File{{Name: "main.py"}})
	r.set("C++", []File{{Name: "main.cpp"}})
	r.set("C#", []File{{Name: "Program.cs"}})
	r.set("PHP", []File{
		{Name: "index.php", Content: "<?php\n\n"},
		{Name: "db.php", Content: "<?php\n\n"},
	})
	r.set("Node.js", []File{{Name: "server.js"}})
	r.set("Frontend", []File{{Name: "index.html", Content: "<!DOCTYPE html>\n<html>\n</html>"}})
	return r
}

// FromConfig returns the built-in registry with cfg.Templates merged in.
func FromConfig(cfg *config.Config) *Registry {
	r := Default()
	if cfg != nil {
		r.Merge(cfg.Templates)
	}
	return r
}

// Merge replaces the file list of known languages and appends unknown ones
// after the existing order, in the order they are declared. A language
// declared twice keeps its last file list.
func (r *Registry) Merge(overrides []config.LanguageTemplate) {
	for _, override := range overrides {
		lang := strings.TrimSpace(override.Language)
		if lang == "" {
			continue
		}
		converted := make([]File, 0, len(override.Files))
		for _, f := range override.Files {
			if f.Name == "" {
				continue
			}
			converted = append(converted, File{Name: f.Name, Content: f.Content})
		}
		r.set(lang, converted)
	}
}

// Languages returns the language names in display order.
func (r *Registry) Languages() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Files returns the starter files for language. ok is false for unknown languages.
func (r *Registry) Files(language string) (files []File, ok bool) {
	files, ok = r.files[language]
	if !ok {
		return nil, false
	}
	out := make([]File, len(files))
	copy(out, files)
	return out, true
}

// Has reports whether language is a known bucket.
func (r *Registry) Has(language string) bool {
	_, ok := r.files[language]
	return ok
}

func (r *Registry) set(language string, files []File) {
	if _, ok := r.files[language]; !ok {
		r.order = append(r.order, language)
	}
	r.files[language] = files
}
