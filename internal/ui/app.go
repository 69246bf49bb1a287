// Package ui implements the TheQuest window: a sidebar, a project creation
// form, the recent projects list and per-language statistics.
package ui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/Akaiko1/thequest/internal/clipboard"
	"github.com/Akaiko1/thequest/internal/config"
	"github.com/Akaiko1/thequest/internal/editor"
	"github.com/Akaiko1/thequest/internal/projects"
	"github.com/Akaiko1/thequest/internal/renderer"
	"github.com/Akaiko1/thequest/internal/templates"
	"github.com/Akaiko1/thequest/internal/watch"
)

const (
	appID    = "io.github.akaiko1.thequest"
	appTitle = "TheQuest"

	scanTimeout  = 30 * time.Second
	ageTickEvery = time.Minute

	// Messages
	msgMissingInput = "Please enter a project name and select a language."
	msgReady        = "Ready"
	msgCopyPath     = "Project path copied to clipboard!"
	msgCopyReport   = "Statistics copied to clipboard!"
)

// Workspace is the filesystem side of the window.
type Workspace interface {
	projects.Lister
	projects.Creator
	Languages() []string
	BasePath() string
	EnsureBase() error
}

// QuestApp represents the main window and its state.
type QuestApp struct {
	// Core components
	app    fyne.App
	window fyne.Window
	config *config.Config
	logger *zap.Logger

	// Services
	workspace Workspace
	opener    editor.Opener
	clipboard clipboard.Writer
	renderer  renderer.Renderer
	watcher   *watch.Watcher

	// UI components
	nameEntry      *widget.Entry
	languageSelect *widget.Select
	createButton   *widget.Button
	recentList     *widget.List
	statsBoxes     []*fyne.Container
	statusLabel    *widget.Label
	main           *fyne.Container
	views          map[string]fyne.CanvasObject
	currentView    string

	// State - UI thread only, no synchronization needed
	recent []projects.Project
	counts []projects.LanguageCount
	now    func() time.Time

	// Context for background work tied to the window lifetime
	ctx        context.Context
	cancelFunc context.CancelFunc
}

// New creates the Fyne app and window and wires the services from cfg.
func New(cfg *config.Config, logger *zap.Logger) (*QuestApp, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	opener, err := editor.NewCommandOpener(cfg.Editor, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to configure editor: %w", err)
	}

	fyneApp := app.NewWithID(appID)
	fyneApp.Settings().SetTheme(newQuestTheme())
	fyneApp.SetIcon(theme.FolderNewIcon())

	workspace := projects.NewWorkspace(cfg, templates.FromConfig(cfg), logger)

	return newQuestApp(fyneApp, cfg, workspace, opener, logger), nil
}

func newQuestApp(fyneApp fyne.App, cfg *config.Config, workspace Workspace, opener editor.Opener, logger *zap.Logger) *QuestApp {
	window := fyneApp.NewWindow(appTitle)
	window.Resize(fyne.NewSize(cfg.Window.Width, cfg.Window.Height))
	window.CenterOnScreen()

	ctx, cancel := context.WithCancel(context.Background())

	return &QuestApp{
		app:         fyneApp,
		window:      window,
		config:      cfg,
		logger:      logger,
		workspace:   workspace,
		opener:      opener,
		clipboard:   clipboard.NewFyneWriter(fyneApp.Clipboard()),
		renderer:    &renderer.TextRenderer{},
		statusLabel: widget.NewLabel(msgReady),
		views:       make(map[string]fyne.CanvasObject),
		now:         time.Now,
		ctx:         ctx,
		cancelFunc:  cancel,
	}
}

// Run builds the window, loads projects and blocks until the window closes.
func (a *QuestApp) Run() {
	if err := a.workspace.EnsureBase(); err != nil {
		a.logger.Error("Base path unavailable", zap.Error(err))
	}

	a.window.SetContent(a.buildContent())
	a.enableDragDrop()
	a.window.SetOnClosed(a.shutdown)

	a.refreshAsync()
	a.startWatcher()
	go a.tickAges()

	a.window.ShowAndRun()
}

// Refresh rescans the disk and updates the recent list and statistics on the
// calling goroutine.
func (a *QuestApp) Refresh(ctx context.Context) error {
	result, counts, err := a.load(ctx)
	if err != nil {
		a.statusLabel.SetText("Scan failed")
		return err
	}
	a.apply(result, counts)
	return nil
}

// load reads the projects and counts from disk. Safe off the UI goroutine.
func (a *QuestApp) load(ctx context.Context) (*projects.ScanResult, []projects.LanguageCount, error) {
	result, err := a.workspace.Scan(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to scan projects: %w", err)
	}
	counts, err := a.workspace.Counts(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to count projects: %w", err)
	}
	return result, counts, nil
}

// apply stores fresh scan results and refreshes the widgets. UI goroutine only.
func (a *QuestApp) apply(result *projects.ScanResult, counts []projects.LanguageCount) {
	a.recent = result.Projects
	a.counts = counts

	if a.recentList != nil {
		a.recentList.Refresh()
	}
	a.renderStats()
	a.statusLabel.SetText(fmt.Sprintf("%d projects in %s", result.Total, result.BasePath))
}

// refreshAsync rescans on a worker goroutine and applies the result on the UI goroutine.
func (a *QuestApp) refreshAsync() {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				a.logger.Error("Panic during scan", zap.Any("panic", r))
				fyne.Do(func() {
					a.statusLabel.SetText("Scan failed due to panic")
				})
			}
		}()

		ctx, cancel := context.WithTimeout(a.ctx, scanTimeout)
		defer cancel()

		result, counts, err := a.load(ctx)

		fyne.Do(func() {
			if err != nil {
				if errors.Is(err, context.Canceled) {
					return
				}
				if errors.Is(err, context.DeadlineExceeded) {
					a.statusLabel.SetText("Scan timed out")
					return
				}
				a.logger.Warn("Refresh failed", zap.Error(err))
				a.statusLabel.SetText("Scan failed")
				return
			}
			a.apply(result, counts)
		})
	}()
}

// handleCreate creates the project named in the form, opens it and updates the lists.
func (a *QuestApp) handleCreate() {
	name := a.nameEntry.Text
	language := a.languageSelect.Selected
	if name == "" || language == "" {
		dialog.ShowInformation("Error", msgMissingInput, a.window)
		return
	}

	project, err := a.workspace.Create(a.ctx, name, language)
	if err != nil {
		if errors.Is(err, projects.ErrEmptyName) || errors.Is(err, projects.ErrEmptyLanguage) {
			dialog.ShowInformation("Error", msgMissingInput, a.window)
			return
		}
		a.logger.Error("Project creation failed", zap.String("name", name), zap.String("language", language), zap.Error(err))
		a.showError("Error creating project", err)
		return
	}

	if a.config.OpenOnCreate {
		a.openProject(*project)
	}

	a.pushRecent(*project)
	a.nameEntry.SetText("")
	a.statusLabel.SetText("Created " + project.Path)

	counts, err := a.workspace.Counts(a.ctx)
	if err != nil {
		a.logger.Warn("Failed to update statistics", zap.Error(err))
		return
	}
	a.counts = counts
	a.renderStats()
}

// pushRecent moves p to the top of the recent list.
func (a *QuestApp) pushRecent(p projects.Project) {
	a.recent = projects.Upsert(a.recent, p)
	if limit := a.config.RecentLimit; limit > 0 && len(a.recent) > limit {
		a.recent = a.recent[:limit]
	}
	if a.recentList != nil {
		a.recentList.Refresh()
	}
}

// openProject launches the editor on a project folder.
func (a *QuestApp) openProject(p projects.Project) {
	if err := a.opener.Open(p.Path); err != nil {
		a.logger.Warn("Failed to open editor", zap.String("path", p.Path), zap.Error(err))
		a.showError("Error opening project", err)
		return
	}
	a.statusLabel.SetText("Opened " + p.Path)
}

// handleCopyPath copies the path of a recent project.
func (a *QuestApp) handleCopyPath(p projects.Project) {
	if err := a.clipboard.SetContent(p.Path); err != nil {
		a.showError("Clipboard Error", err)
		return
	}
	a.statusLabel.SetText(msgCopyPath)
}

// handleCopyReport copies the statistics and grouped project list as text.
func (a *QuestApp) handleCopyReport() {
	report := a.renderer.RenderStats(a.counts) + "\n" + a.renderer.RenderGrouped(a.recent, a.now())
	if err := a.clipboard.SetContent(report); err != nil {
		a.showError("Clipboard Error", err)
		return
	}
	a.statusLabel.SetText(msgCopyReport)
}

// startWatcher refreshes the window whenever the base path changes on disk.
func (a *QuestApp) startWatcher() {
	if !a.config.Watch {
		return
	}

	w, err := watch.New(a.workspace.BasePath(), watch.DefaultDebounce, a.refreshAsync, a.logger)
	if err != nil {
		a.logger.Warn("Disk watching disabled", zap.Error(err))
		return
	}
	w.SetShowHidden(a.config.ShowHidden)
	if err := w.Start(a.ctx); err != nil {
		a.logger.Warn("Disk watching disabled", zap.Error(err))
		w.Stop()
		return
	}
	a.watcher = w
}

// tickAges redraws the recent list so "Xm ago" labels stay current.
func (a *QuestApp) tickAges() {
	ticker := time.NewTicker(ageTickEvery)
	defer ticker.Stop()

	for {
		select {
		case <-a.ctx.Done():
			return
		case <-ticker.C:
			fyne.Do(func() {
				if a.recentList != nil {
					a.recentList.Refresh()
				}
			})
		}
	}
}

func (a *QuestApp) shutdown() {
	a.cancelFunc()
	if a.watcher != nil {
		a.watcher.Stop()
	}
	a.logger.Info("Window closed")
}

// showError shows an error dialog.
func (a *QuestApp) showError(title string, err error) {
	dialog.ShowError(fmt.Errorf("%s: %w", title, err), a.window)
}

// enableDragDrop opens a project folder dropped from a language bucket.
func (a *QuestApp) enableDragDrop() {
	a.window.SetOnDropped(func(position fyne.Position, uris []fyne.URI) {
		if len(uris) == 0 {
			return
		}
		a.handleDrop(uris[0])
	})
}

func (a *QuestApp) handleDrop(uri fyne.URI) {
	if uri.Scheme() != "file" {
		dialog.ShowError(fmt.Errorf("invalid file path"), a.window)
		return
	}

	path := filepath.Clean(uri.Path())
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		dialog.ShowError(fmt.Errorf("please drop a folder, not a file"), a.window)
		return
	}

	language, name, ok := splitProjectPath(a.workspace.BasePath(), path)
	if !ok {
		dialog.ShowError(fmt.Errorf("please drop a project folder from %s", a.workspace.BasePath()), a.window)
		return
	}

	project := projects.Project{Name: name, Language: language, Path: path, LastModified: info.ModTime()}
	a.openProject(project)
	a.pushRecent(project)
}

// splitProjectPath reports whether path is exactly <base>/<language>/<name>.
func splitProjectPath(base, path string) (language, name string, ok bool) {
	rel, err := filepath.Rel(filepath.Clean(base), path)
	if err != nil {
		return "", "", false
	}
	parts := strings.Split(filepath.ToSlash(rel), "/")
	if len(parts) != 2 || parts[0] == ".." || parts[0] == "." {
		return "", "", false
	}
	return parts[0], parts[1], true
}
