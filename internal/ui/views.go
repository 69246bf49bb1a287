package ui

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/Akaiko1/thequest/internal/config"
)

// View names, also used as the sidebar button labels.
const (
	viewProjects   = "Projects"
	viewDashboard  = "Dashboard"
	viewStatistics = "Statistics"
	viewSettings   = "Settings"
)

type navSection struct {
	title string
	items []string
}

var navSections = []navSection{
	{title: "Main", items: []string{viewProjects, viewDashboard}},
	{title: "Tools", items: []string{viewStatistics, viewSettings}},
}

const (
	sidebarWidth   = 300
	titleTextSize  = 48
	headerTextSize = 26
)

// buildContent creates the sidebar and the main area and shows the Projects view.
func (a *QuestApp) buildContent() fyne.CanvasObject {
	a.main = container.NewStack()

	a.views[viewProjects] = a.createProjectsView()
	a.views[viewDashboard] = a.views[viewProjects]
	a.views[viewStatistics] = a.createStatisticsView()
	a.views[viewSettings] = a.createSettingsView()

	a.showView(viewProjects)

	body := container.NewBorder(nil, a.statusLabel, nil, nil, container.NewPadded(a.main))
	return container.NewBorder(nil, nil, a.createSidebar(), nil, body)
}

// showView swaps the main area to the named view.
func (a *QuestApp) showView(name string) {
	view, ok := a.views[name]
	if !ok {
		return
	}
	a.currentView = name
	a.main.Objects = []fyne.CanvasObject{view}
	a.main.Refresh()
}

// createSidebar creates the navigation column with the Exit button at the bottom.
func (a *QuestApp) createSidebar() fyne.CanvasObject {
	title := canvas.NewText(appTitle, colorText)
	title.TextSize = titleTextSize
	title.TextStyle.Bold = true
	title.Alignment = fyne.TextAlignCenter

	items := container.NewVBox(container.NewPadded(title), layout.NewSpacer())
	for _, section := range navSections {
		sectionLabel := canvas.NewText(strings.ToUpper(section.title), colorMuted)
		sectionLabel.TextSize = headerTextSize * 0.75
		items.Add(sectionLabel)

		for _, item := range section.items {
			name := item
			btn := widget.NewButton(name, func() { a.showView(name) })
			btn.Importance = widget.LowImportance
			btn.Alignment = widget.ButtonAlignLeading
			items.Add(btn)
		}
	}

	column := container.NewBorder(items, container.NewPadded(a.newExitButton()), nil, nil)

	background := canvas.NewRectangle(colorPanel)
	background.SetMinSize(fyne.NewSize(sidebarWidth, 0))
	return container.NewStack(background, container.NewPadded(column))
}

// newExitButton quits the app; it sits on the dark red exit panel.
func (a *QuestApp) newExitButton() *fyne.Container {
	exitBtn := widget.NewButtonWithIcon("Exit", theme.LogoutIcon(), a.app.Quit)
	exitBtn.Importance = widget.LowImportance

	background := canvas.NewRectangle(colorExit)
	background.CornerRadius = theme.InputRadiusSize()
	return container.NewStack(background, exitBtn)
}

// createProjectsView creates the form, the recent list and the statistics panel.
func (a *QuestApp) createProjectsView() fyne.CanvasObject {
	a.nameEntry = widget.NewEntry()
	a.nameEntry.SetPlaceHolder("Project name")
	a.nameEntry.OnSubmitted = func(string) { a.handleCreate() }

	languages := a.workspace.Languages()
	a.languageSelect = widget.NewSelect(languages, nil)
	if len(languages) > 0 {
		a.languageSelect.SetSelected(languages[0])
	}

	a.createButton = widget.NewButton("+", a.handleCreate)
	a.createButton.Importance = widget.HighImportance

	form := container.NewBorder(nil, nil, container.NewGridWrap(fyne.NewSize(160, 80), a.createButton), nil,
		container.NewVBox(a.nameEntry, a.languageSelect))

	a.recentList = a.createRecentList()

	top := container.NewVBox(heading("Create New Project"), form, heading("Recent Projects"))
	bottom := container.NewVBox(heading("Language Project Statistics"), a.newStatsBox())

	return container.NewBorder(top, bottom, nil, nil, a.recentList)
}

// createRecentList creates the list of "<name> | <language> | <age>" rows.
func (a *QuestApp) createRecentList() *widget.List {
	list := widget.NewList(
		func() int { return len(a.recent) },
		func() fyne.CanvasObject {
			label := widget.NewLabel("name | language | age")
			copyBtn := widget.NewButtonWithIcon("", theme.ContentCopyIcon(), nil)
			copyBtn.Importance = widget.LowImportance
			return container.NewBorder(nil, nil, nil, copyBtn, label)
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id < 0 || id >= len(a.recent) {
				return
			}
			row, ok := obj.(*fyne.Container)
			if !ok || len(row.Objects) < 2 {
				return
			}
			project := a.recent[id]
			if label, ok := row.Objects[0].(*widget.Label); ok {
				label.SetText(project.Label(a.now()))
			}
			if btn, ok := row.Objects[1].(*widget.Button); ok {
				btn.OnTapped = func() { a.handleCopyPath(project) }
			}
		},
	)
	list.OnSelected = func(id widget.ListItemID) {
		if id >= 0 && id < len(a.recent) {
			a.openProject(a.recent[id])
		}
		list.Unselect(id)
	}
	return list
}

// createStatisticsView shows the statistics panel on its own with a copy action.
func (a *QuestApp) createStatisticsView() fyne.CanvasObject {
	copyBtn := widget.NewButtonWithIcon("Copy report", theme.ContentCopyIcon(), a.handleCopyReport)
	refreshBtn := widget.NewButtonWithIcon("Refresh", theme.ViewRefreshIcon(), a.refreshAsync)

	return container.NewVBox(
		heading("Language Project Statistics"),
		a.newStatsBox(),
		container.NewHBox(copyBtn, refreshBtn),
	)
}

// createSettingsView shows the effective configuration.
func (a *QuestApp) createSettingsView() fyne.CanvasObject {
	limit := "unlimited"
	if a.config.RecentLimit > 0 {
		limit = strconv.Itoa(a.config.RecentLimit)
	}

	form := widget.NewForm(
		widget.NewFormItem("Projects folder", widget.NewLabel(a.workspace.BasePath())),
		widget.NewFormItem("Editor", widget.NewLabel(a.config.Editor)),
		widget.NewFormItem("Open after create", widget.NewLabel(yesNo(a.config.OpenOnCreate))),
		widget.NewFormItem("Show hidden folders", widget.NewLabel(yesNo(a.config.ShowHidden))),
		widget.NewFormItem("Recent projects", widget.NewLabel(limit)),
		widget.NewFormItem("Watch for changes", widget.NewLabel(yesNo(a.config.Watch))),
	)

	note := widget.NewLabel("Edit " + filepath.Join(config.Dir(), "config.yaml") + " to change these settings.")
	note.Importance = widget.LowImportance

	return container.NewVBox(heading("Settings"), form, note)
}

// newStatsBox creates an empty statistics panel that renderStats keeps filled.
func (a *QuestApp) newStatsBox() *fyne.Container {
	box := container.NewVBox()
	a.statsBoxes = append(a.statsBoxes, box)
	return box
}

// renderStats rebuilds every statistics panel from a.counts.
func (a *QuestApp) renderStats() {
	for _, box := range a.statsBoxes {
		rows := make([]fyne.CanvasObject, 0, len(a.counts))
		for _, c := range a.counts {
			rows = append(rows, container.NewGridWithColumns(2,
				widget.NewLabel(c.Language),
				widget.NewLabel(fmt.Sprintf("Folders: %d", c.Folders)),
			))
		}
		box.Objects = rows
		box.Refresh()
	}
}

func heading(text string) fyne.CanvasObject {
	t := canvas.NewText(text, colorText)
	t.TextSize = headerTextSize
	return t
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
