// Package renderer turns project listings and folder counts into plain text
// for the clipboard and for non-styled terminal output.
package renderer

import (
	"fmt"
	"strings"
	"time"

	"github.com/Akaiko1/thequest/internal/projects"
)

const (
	// Tree drawing characters
	treeBranch     = "├──"
	treeLastBranch = "└──"

	msgNoProjects = "No projects yet."
)

// Renderer renders projects and statistics as text.
type Renderer interface {
	RenderRecent(list []projects.Project, now time.Time) string
	RenderGrouped(list []projects.Project, now time.Time) string
	RenderStats(counts []projects.LanguageCount) string
}

// TextRenderer implements Renderer with plain UTF-8 text.
type TextRenderer struct{}

// RenderRecent renders one "<name> | <language> | <age>" line per project.
func (r *TextRenderer) RenderRecent(list []projects.Project, now time.Time) string {
	if len(list) == 0 {
		return msgNoProjects + "\n"
	}

	var builder strings.Builder
	for _, p := range list {
		builder.WriteString(p.Label(now))
		builder.WriteString("\n")
	}
	return builder.String()
}

// RenderGrouped renders projects under their language heading as a tree.
func (r *TextRenderer) RenderGrouped(list []projects.Project, now time.Time) string {
	if len(list) == 0 {
		return msgNoProjects + "\n"
	}

	languages, groups := projects.GroupByLanguage(list)

	var builder strings.Builder
	for i, language := range languages {
		if i > 0 {
			builder.WriteString("\n")
		}
		group := groups[language]
		builder.WriteString(fmt.Sprintf("%s (%d)\n", language, len(group)))

		for j, p := range group {
			connector := treeBranch
			if j == len(group)-1 {
				connector = treeLastBranch
			}
			builder.WriteString(fmt.Sprintf("%s %s  %s\n", connector, p.Name, projects.FormatTimeAgo(now, p.LastModified)))
		}
	}
	return builder.String()
}

// RenderStats renders one line per language with its folder count.
func (r *TextRenderer) RenderStats(counts []projects.LanguageCount) string {
	width := 0
	for _, c := range counts {
		if len(c.Language) > width {
			width = len(c.Language)
		}
	}

	var builder strings.Builder
	builder.WriteString("Language Project Statistics\n")
	builder.WriteString(strings.Repeat("=", 27) + "\n")
	for _, c := range counts {
		builder.WriteString(fmt.Sprintf("%-*s  Folders: %d\n", width, c.Language, c.Folders))
	}
	return builder.String()
}
