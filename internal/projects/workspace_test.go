package projects

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Akaiko1/thequest/internal/config"
	"github.com/Akaiko1/thequest/internal/templates"
)

func newTestWorkspace(t *testing.T) (*Workspace, string) {
	t.Helper()
	base := filepath.Join(t.TempDir(), "Projects")
	cfg := config.DefaultConfig()
	cfg.BasePath = base
	return NewWorkspace(cfg, templates.Default(), nil), base
}

func mkProject(t *testing.T, base, language, name string, mtime time.Time) string {
	t.Helper()
	path := filepath.Join(base, language, name)
	require.NoError(t, os.MkdirAll(path, 0755))
	require.NoError(t, os.Chtimes(path, mtime, mtime))
	return path
}

func TestCreate_WritesTemplates(t *testing.T) {
	w, base := newTestWorkspace(t)

	p, err := w.Create(context.Background(), "shop", "PHP")
	require.NoError(t, err)

	assert.Equal(t, "shop", p.Name)
	assert.Equal(t, "PHP", p.Language)
	assert.Equal(t, filepath.Join(base, "PHP", "shop"), p.Path)
	assert.False(t, p.LastModified.IsZero())

	index, err := os.ReadFile(filepath.Join(p.Path, "index.php"))
	require.NoError(t, err)
	assert.Equal(t, "<?php\n\n", string(index))

	db, err := os.ReadFile(filepath.Join(p.Path, "db.php"))
	require.NoError(t, err)
	assert.Equal(t, "<?php\n\n", string(db))
}

func TestCreate_EmptyTemplateContent(t *testing.T) {
	w, _ := newTestWorkspace(t)

	p, err := w.Create(context.Background(), "tool", "Python")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(p.Path, "main.py"))
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestCreate_Validation(t *testing.T) {
	w, base := newTestWorkspace(t)
	ctx := context.Background()

	_, err := w.Create(ctx, "", "Python")
	assert.ErrorIs(t, err, ErrEmptyName)

	_, err = w.Create(ctx, "   ", "Python")
	assert.ErrorIs(t, err, ErrEmptyName)

	_, err = w.Create(ctx, "demo", "")
	assert.ErrorIs(t, err, ErrEmptyLanguage)

	_, err = w.Create(ctx, "demo", "COBOL")
	assert.ErrorIs(t, err, ErrUnknownLanguage)

	_, statErr := os.Stat(base)
	assert.True(t, errors.Is(statErr, os.ErrNotExist), "validation failures must not touch disk")
}

func TestCreate_ExistingProjectKeepsFiles(t *testing.T) {
	w, _ := newTestWorkspace(t)
	ctx := context.Background()

	p, err := w.Create(ctx, "api", "Node.js")
	require.NoError(t, err)

	serverJS := filepath.Join(p.Path, "server.js")
	require.NoError(t, os.WriteFile(serverJS, []byte("console.log(1)\n"), 0644))

	again, err := w.Create(ctx, "api", "Node.js")
	require.NoError(t, err)
	assert.Equal(t, p.Path, again.Path)

	data, err := os.ReadFile(serverJS)
	require.NoError(t, err)
	assert.Equal(t, "console.log(1)\n", string(data))
}

func TestCreate_CancelledContext(t *testing.T) {
	w, _ := newTestWorkspace(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := w.Create(ctx, "x", "Python")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestScan_CreatesBaseWhenMissing(t *testing.T) {
	w, base := newTestWorkspace(t)

	result, err := w.Scan(context.Background())
	require.NoError(t, err)
	assert.Empty(t, result.Projects)
	assert.Equal(t, base, result.BasePath)

	info, err := os.Stat(base)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestScan_OrdersNewestFirst(t *testing.T) {
	w, base := newTestWorkspace(t)
	now := time.Now()

	mkProject(t, base, "Python", "old", now.Add(-72*time.Hour))
	mkProject(t, base, "C++", "fresh", now.Add(-time.Minute))
	mkProject(t, base, "Frontend", "mid", now.Add(-2*time.Hour))
	// Folders outside the template list still show up in the recent list.
	mkProject(t, base, "Haskell", "lambda", now.Add(-5*time.Hour))

	result, err := w.Scan(context.Background())
	require.NoError(t, err)

	var names []string
	for _, p := range result.Projects {
		names = append(names, p.Language+"/"+p.Name)
	}
	assert.Equal(t, []string{"C++/fresh", "Frontend/mid", "Haskell/lambda", "Python/old"}, names)
	assert.ElementsMatch(t, []string{"Python", "C++", "Frontend", "Haskell"}, result.Buckets)
	assert.Equal(t, 4, result.Total)
}

func TestScan_SkipsFilesAndHidden(t *testing.T) {
	w, base := newTestWorkspace(t)
	now := time.Now()

	mkProject(t, base, "Python", "visible", now)
	mkProject(t, base, "Python", ".venv", now)
	mkProject(t, base, ".cache", "junk", now)
	require.NoError(t, os.WriteFile(filepath.Join(base, "Python", "notes.txt"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(base, "README.md"), []byte("x"), 0644))

	result, err := w.Scan(context.Background())
	require.NoError(t, err)
	require.Len(t, result.Projects, 1)
	assert.Equal(t, "visible", result.Projects[0].Name)
	assert.Equal(t, []string{"Python"}, result.Buckets)
}

func TestScan_ShowHidden(t *testing.T) {
	w, base := newTestWorkspace(t)
	w.config.ShowHidden = true

	mkProject(t, base, "Python", ".venv", time.Now())

	result, err := w.Scan(context.Background())
	require.NoError(t, err)
	require.Len(t, result.Projects, 1)
	assert.Equal(t, ".venv", result.Projects[0].Name)
}

func TestScan_RecentLimit(t *testing.T) {
	w, base := newTestWorkspace(t)
	w.config.RecentLimit = 2
	now := time.Now()

	mkProject(t, base, "Python", "a", now.Add(-3*time.Hour))
	mkProject(t, base, "Python", "b", now.Add(-2*time.Hour))
	mkProject(t, base, "Python", "c", now.Add(-1*time.Hour))

	result, err := w.Scan(context.Background())
	require.NoError(t, err)
	require.Len(t, result.Projects, 2)
	assert.Equal(t, "c", result.Projects[0].Name)
	assert.Equal(t, "b", result.Projects[1].Name)
	assert.Equal(t, 3, result.Total)
}

func TestScan_FollowsSymlinkedProjects(t *testing.T) {
	w, base := newTestWorkspace(t)
	target := filepath.Join(t.TempDir(), "elsewhere")
	require.NoError(t, os.MkdirAll(target, 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(base, "Python"), 0755))
	if err := os.Symlink(target, filepath.Join(base, "Python", "linked")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	result, err := w.Scan(context.Background())
	require.NoError(t, err)
	require.Len(t, result.Projects, 1)
	assert.Equal(t, "linked", result.Projects[0].Name)
}

func TestScan_CancelledContext(t *testing.T) {
	w, base := newTestWorkspace(t)
	mkProject(t, base, "Python", "a", time.Now())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := w.Scan(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCounts(t *testing.T) {
	w, base := newTestWorkspace(t)
	now := time.Now()

	mkProject(t, base, "Python", "a", now)
	mkProject(t, base, "Python", "b", now)
	mkProject(t, base, "C#", "game", now)
	mkProject(t, base, "Haskell", "ignored", now)
	require.NoError(t, os.WriteFile(filepath.Join(base, "C#", "loose.cs"), []byte(""), 0644))

	counts, err := w.Counts(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []LanguageCount{
		{Language: "Python", Folders: 2},
		{Language: "C++", Folders: 0},
		{Language: "C#", Folders: 1},
		{Language: "PHP", Folders: 0},
		{Language: "Node.js", Folders: 0},
		{Language: "Frontend", Folders: 0},
	}, counts)
}

func TestCounts_BucketIsFile(t *testing.T) {
	w, base := newTestWorkspace(t)
	require.NoError(t, os.MkdirAll(base, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(base, "Python"), []byte("x"), 0644))
	mkProject(t, base, "PHP", "shop", time.Now())

	counts, err := w.Counts(context.Background())
	require.NoError(t, err)
	require.Len(t, counts, 6)
	assert.Equal(t, LanguageCount{Language: "Python"}, counts[0])
	assert.Equal(t, LanguageCount{Language: "PHP", Folders: 1}, counts[3])

	result, err := w.Scan(context.Background())
	require.NoError(t, err)
	require.Len(t, result.Projects, 1)
	assert.Equal(t, "shop", result.Projects[0].Name)
}

func TestCounts_ReflectsCreate(t *testing.T) {
	w, _ := newTestWorkspace(t)
	ctx := context.Background()

	_, err := w.Create(ctx, "site", "Frontend")
	require.NoError(t, err)

	counts, err := w.Counts(ctx)
	require.NoError(t, err)
	for _, c := range counts {
		if c.Language == "Frontend" {
			assert.Equal(t, 1, c.Folders)
		} else {
			assert.Zero(t, c.Folders, c.Language)
		}
	}
}

func TestFind(t *testing.T) {
	w, base := newTestWorkspace(t)
	mkProject(t, base, "C++", "engine", time.Now())

	p, err := w.Find("C++", "engine")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "C++", "engine"), p.Path)

	_, err = w.Find("C++", "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpsert(t *testing.T) {
	list := []Project{
		{Name: "a", Language: "Python"},
		{Name: "b", Language: "Python"},
		{Name: "a", Language: "C++"},
	}

	got := Upsert(list, Project{Name: "a", Language: "Python", Path: "new"})
	require.Len(t, got, 3)
	assert.Equal(t, "new", got[0].Path)
	assert.Equal(t, "b", got[1].Name)
	assert.Equal(t, "C++", got[2].Language)

	got = Upsert(got, Project{Name: "z", Language: "PHP"})
	assert.Len(t, got, 4)
	assert.Equal(t, "z", got[0].Name)
}

func TestGroupByLanguage(t *testing.T) {
	projects := []Project{
		{Name: "a", Language: "Python"},
		{Name: "b", Language: "C#"},
		{Name: "c", Language: "Python"},
	}

	languages, groups := GroupByLanguage(projects)
	assert.Equal(t, []string{"Python", "C#"}, languages)
	assert.Len(t, groups["Python"], 2)
	assert.Equal(t, "c", groups["Python"][1].Name)
	assert.Len(t, groups["C#"], 1)
}
