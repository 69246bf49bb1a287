// Package projects manages the on-disk project layout
// <base>/<Language>/<ProjectName>: creating scaffolded projects, listing
// recently modified ones and counting folders per language bucket.
package projects

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Akaiko1/thequest/internal/config"
	"github.com/Akaiko1/thequest/internal/templates"
)

var (
	// ErrEmptyName is returned when a project name is blank.
	ErrEmptyName = errors.New("project name cannot be empty")
	// ErrEmptyLanguage is returned when no language is selected.
	ErrEmptyLanguage = errors.New("language cannot be empty")
	// ErrUnknownLanguage is returned for a language with no template entry.
	ErrUnknownLanguage = errors.New("unknown language")
	// ErrNotFound is returned when a project folder does not exist.
	ErrNotFound = errors.New("project not found")
)

// Project is a folder inside a language bucket.
type Project struct {
	Name         string
	Language     string
	Path         string
	LastModified time.Time
}

// ScanResult contains the outcome of walking the base path.
type ScanResult struct {
	BasePath string
	Projects []Project
	// Buckets lists every language folder found, including ones without templates.
	Buckets []string
	// Total is the number of projects found before the recent limit was applied.
	Total int
}

// LanguageCount is the number of project folders in one language bucket.
type LanguageCount struct {
	Language string
	Folders  int
}

// Lister lists and counts projects. The UI and CLI depend on this interface.
type Lister interface {
	Scan(ctx context.Context) (*ScanResult, error)
	Counts(ctx context.Context) ([]LanguageCount, error)
}

// Creator creates new scaffolded projects.
type Creator interface {
	Create(ctx context.Context, name, language string) (*Project, error)
}

// Workspace implements Lister and Creator over a base directory.
type Workspace struct {
	config   *config.Config
	registry *templates.Registry
	logger   *zap.Logger
}

// NewWorkspace creates a Workspace. Nil arguments fall back to defaults.
func NewWorkspace(cfg *config.Config, registry *templates.Registry, logger *zap.Logger) *Workspace {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if registry == nil {
		registry = templates.FromConfig(cfg)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Workspace{
		config:   cfg,
		registry: registry,
		logger:   logger,
	}
}

// BasePath returns the directory holding the language buckets.
func (w *Workspace) BasePath() string {
	return w.config.BasePath
}

// Registry returns the template registry used for creation and counts.
func (w *Workspace) Registry() *templates.Registry {
	return w.registry
}

// ProjectPath returns <base>/<language>/<name>.
func (w *Workspace) ProjectPath(language, name string) string {
	return filepath.Join(w.config.BasePath, language, name)
}

// EnsureBase creates the base path if it does not exist yet.
func (w *Workspace) EnsureBase() error {
	if w.config.BasePath == "" {
		return fmt.Errorf("base path cannot be empty")
	}
	if err := os.MkdirAll(w.config.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to create base path %q: %w", w.config.BasePath, err)
	}
	return nil
}

// Create makes <base>/<language>/<name> and writes the language's starter
// files into it. An existing folder is reused and existing files are kept.
func (w *Workspace) Create(ctx context.Context, name, language string) (*Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if language == "" {
		return nil, ErrEmptyLanguage
	}
	files, ok := w.registry.Files(language)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLanguage, language)
	}

	path := w.ProjectPath(language, name)
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create project folder %q: %w", path, err)
	}

	for _, file := range files {
		if err := writeNewFile(filepath.Join(path, file.Name), file.Content); err != nil {
			if errors.Is(err, fs.ErrExist) {
				w.logger.Debug("Keeping existing file", zap.String("path", filepath.Join(path, file.Name)))
				continue
			}
			return nil, fmt.Errorf("failed to write %s: %w", file.Name, err)
		}
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat project folder %q: %w", path, err)
	}

	w.logger.Info("Project created",
		zap.String("name", name),
		zap.String("language", language),
		zap.String("path", path),
		zap.Int("files", len(files)))

	return &Project{
		Name:         name,
		Language:     language,
		Path:         path,
		LastModified: info.ModTime(),
	}, nil
}

// Find returns the project at <base>/<language>/<name>.
func (w *Workspace) Find(language, name string) (*Project, error) {
	path := w.ProjectPath(language, name)
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s/%s", ErrNotFound, language, name)
		}
		return nil, fmt.Errorf("failed to stat %q: %w", path, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %q is not a directory", ErrNotFound, path)
	}
	return &Project{
		Name:         name,
		Language:     language,
		Path:         path,
		LastModified: info.ModTime(),
	}, nil
}

// Scan walks every language bucket under the base path and returns project
// folders ordered newest first, truncated to the configured recent limit.
func (w *Workspace) Scan(ctx context.Context) (*ScanResult, error) {
	if err := w.EnsureBase(); err != nil {
		return nil, err
	}

	base := w.config.BasePath
	buckets, err := w.listDirs(base)
	if err != nil {
		return nil, fmt.Errorf("failed to list %q: %w", base, err)
	}

	result := &ScanResult{BasePath: base}

	for _, bucket := range buckets {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		result.Buckets = append(result.Buckets, bucket.Name())
		bucketPath := filepath.Join(base, bucket.Name())

		entries, err := w.listDirs(bucketPath)
		if err != nil {
			// Continue with partial results
			w.logger.Warn("Failed to read language folder", zap.String("path", bucketPath), zap.Error(err))
			continue
		}

		for _, entry := range entries {
			projectPath := filepath.Join(bucketPath, entry.Name())
			info, err := os.Stat(projectPath)
			if err != nil {
				w.logger.Warn("Failed to stat project", zap.String("path", projectPath), zap.Error(err))
				continue
			}
			result.Projects = append(result.Projects, Project{
				Name:         entry.Name(),
				Language:     bucket.Name(),
				Path:         projectPath,
				LastModified: info.ModTime(),
			})
		}
	}

	SortRecent(result.Projects)
	result.Total = len(result.Projects)
	if limit := w.config.RecentLimit; limit > 0 && len(result.Projects) > limit {
		result.Projects = result.Projects[:limit]
	}

	w.logger.Debug("Scan finished",
		zap.String("base", base),
		zap.Int("buckets", len(result.Buckets)),
		zap.Int("projects", result.Total))

	return result, nil
}

// Counts returns the number of project folders for every known language, in
// registry order. A missing or unreadable bucket counts as zero.
func (w *Workspace) Counts(ctx context.Context) ([]LanguageCount, error) {
	languages := w.registry.Languages()
	counts := make([]LanguageCount, 0, len(languages))

	for _, language := range languages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		bucketPath := filepath.Join(w.config.BasePath, language)
		entries, err := w.listDirs(bucketPath)
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				// A file in place of the bucket, or no permission
				w.logger.Warn("Failed to read language folder", zap.String("path", bucketPath), zap.Error(err))
			}
			counts = append(counts, LanguageCount{Language: language})
			continue
		}
		counts = append(counts, LanguageCount{Language: language, Folders: len(entries)})
	}

	return counts, nil
}

// listDirs returns the directory entries of path that are directories
// (following symlinks), skipping hidden and system folders.
func (w *Workspace) listDirs(path string) ([]os.DirEntry, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}

	dirs := make([]os.DirEntry, 0, len(entries))
	for _, entry := range entries {
		if !w.config.ShowHidden && strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		if isSystemFolder(entry.Name()) {
			continue
		}
		if !isDir(filepath.Join(path, entry.Name()), entry) {
			continue
		}
		dirs = append(dirs, entry)
	}
	return dirs, nil
}

// SortRecent orders projects newest first; ties break on language, then name.
func SortRecent(projects []Project) {
	sort.SliceStable(projects, func(i, j int) bool {
		a, b := projects[i], projects[j]
		if !a.LastModified.Equal(b.LastModified) {
			return a.LastModified.After(b.LastModified)
		}
		if a.Language != b.Language {
			return a.Language < b.Language
		}
		return a.Name < b.Name
	})
}

// Upsert puts p at the front of list, dropping any earlier entry for the same
// language and name.
func Upsert(list []Project, p Project) []Project {
	out := make([]Project, 0, len(list)+1)
	out = append(out, p)
	for _, existing := range list {
		if existing.Language == p.Language && existing.Name == p.Name {
			continue
		}
		out = append(out, existing)
	}
	return out
}

// GroupByLanguage groups projects by language, keeping the first-seen order
// of languages and the input order within each group.
func GroupByLanguage(projects []Project) (languages []string, groups map[string][]Project) {
	groups = make(map[string][]Project)
	for _, p := range projects {
		if _, ok := groups[p.Language]; !ok {
			languages = append(languages, p.Language)
		}
		groups[p.Language] = append(groups[p.Language], p)
	}
	return languages, groups
}

func writeNewFile(path, content string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(content); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func isDir(path string, entry os.DirEntry) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// isSystemFolder reports folders that show up at drive roots and are never projects.
func isSystemFolder(name string) bool {
	switch name {
	case "System Volume Information", "$Recycle.Bin", "$RECYCLE.BIN", "$WINDOWS.~BT", "lost+found":
		return true
	}
	return false
}

// Languages returns the language buckets offered for new projects.
func (w *Workspace) Languages() []string {
	return w.registry.Languages()
}
