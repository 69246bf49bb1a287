package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Akaiko1/thequest/internal/output"
	"github.com/Akaiko1/thequest/internal/projects"
	"github.com/Akaiko1/thequest/internal/renderer"
)

func newNewCmd(opts *options) *cobra.Command {
	var (
		language string
		noOpen   bool
	)

	cmd := &cobra.Command{
		Use:   "new <name>",
		Short: "Create a project folder with starter files",
		Long: `Create <base>/<language>/<name> and write the language's starter files.
The language defaults to Python. An existing folder is reused; files already
present are left as they are.`,
		Example: `  thequest new shop --language PHP
  thequest new scratch --no-open`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := opts.workspace.Registry()
			if !registry.Has(language) {
				return fmt.Errorf("%w %q (known: %s)", projects.ErrUnknownLanguage, language, strings.Join(registry.Languages(), ", "))
			}

			project, err := opts.workspace.Create(cmd.Context(), args[0], language)
			if err != nil {
				return err
			}

			if err := writeString(cmd.OutOrStdout(), output.StyleSuccess.Render("Created "+project.Path)+"\n"); err != nil {
				return err
			}

			if noOpen || !opts.config.OpenOnCreate {
				return nil
			}
			opener, err := opts.opener()
			if err != nil {
				return err
			}
			return opener.Open(project.Path)
		},
	}

	cmd.Flags().StringVarP(&language, "language", "l", "Python", "Language bucket, Python when omitted (see 'thequest languages')")
	cmd.Flags().BoolVar(&noOpen, "no-open", false, "Do not open the editor after creating")
	return cmd
}

func newListCmd(opts *options) *cobra.Command {
	var grouped bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recently modified projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := opts.workspace.Scan(cmd.Context())
			if err != nil {
				return err
			}
			now := time.Now()

			if grouped {
				r := &renderer.TextRenderer{}
				return writeString(cmd.OutOrStdout(), r.RenderGrouped(result.Projects, now))
			}

			if len(result.Projects) == 0 {
				return writeString(cmd.OutOrStdout(), output.StyleMuted.Render("No projects yet in "+result.BasePath)+"\n")
			}

			tbl := output.NewTable("NAME", "LANGUAGE", "MODIFIED", "PATH")
			for _, p := range result.Projects {
				tbl.AddRow(p.Name, p.Language, projects.FormatTimeAgo(now, p.LastModified), p.Path)
			}
			if _, err := tbl.WriteTo(cmd.OutOrStdout()); err != nil {
				return err
			}
			if result.Total > len(result.Projects) {
				more := fmt.Sprintf("… %d more (raise recent_limit to see them)", result.Total-len(result.Projects))
				return writeString(cmd.OutOrStdout(), output.StyleMuted.Render(more)+"\n")
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&grouped, "grouped", "g", false, "Group projects by language")
	return cmd
}

func newStatsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show the number of project folders per language",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			counts, err := opts.workspace.Counts(cmd.Context())
			if err != nil {
				return err
			}

			tbl := output.NewTable("LANGUAGE", "FOLDERS")
			total := 0
			for _, c := range counts {
				tbl.AddRow(c.Language, strconv.Itoa(c.Folders))
				total += c.Folders
			}
			tbl.AddRow("Total", strconv.Itoa(total))
			_, err = tbl.WriteTo(cmd.OutOrStdout())
			return err
		},
	}
}

func newOpenCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "open <language> <name>",
		Short: "Open an existing project in the editor",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			project, err := opts.workspace.Find(args[0], args[1])
			if err != nil {
				return err
			}
			opener, err := opts.opener()
			if err != nil {
				return err
			}
			if err := opener.Open(project.Path); err != nil {
				return err
			}
			return writeString(cmd.OutOrStdout(), "Opened "+project.Path+"\n")
		},
	}
}

func newLanguagesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List languages and the starter files they get",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := opts.workspace.Registry()

			tbl := output.NewTable("LANGUAGE", "FILES")
			for _, language := range registry.Languages() {
				files, _ := registry.Files(language)
				names := make([]string, 0, len(files))
				for _, f := range files {
					names = append(names, f.Name)
				}
				tbl.AddRow(language, strings.Join(names, ", "))
			}
			_, err := tbl.WriteTo(cmd.OutOrStdout())
			return err
		},
	}
}
