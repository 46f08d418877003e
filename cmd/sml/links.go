package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/elsanchez/smart-links/internal/domain"
	tuilinks "github.com/elsanchez/smart-links/internal/tui/links"
	"github.com/elsanchez/smart-links/internal/tui/theme"
	"github.com/elsanchez/smart-links/pkg/client"
)

var (
	flagJSON bool
	flagTUI  bool
)

var linksCmd = &cobra.Command{
	Use:   "links <url>",
	Short: "List the video and audio links of a URL",
	Example: `  sml links https://www.youtube.com/watch?v=xxx
  sml links https://www.youtube.com/watch?v=xxx --json
  sml links https://www.youtube.com/watch?v=xxx --tui`,
	Args: cobra.ExactArgs(1),
	RunE: linksRun,
}

func init() {
	linksCmd.Flags().BoolVarP(&flagJSON, "json", "j", false, "Print the result as JSON")
	linksCmd.Flags().BoolVarP(&flagTUI, "tui", "t", false, "Browse the links interactively")
}

func linksRun(cmd *cobra.Command, args []string) error {
	c := newClient()
	url := args[0]

	if flagTUI {
		if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
			return fmt.Errorf("--tui needs a terminal")
		}
		fetch := func(ctx context.Context) (*domain.ExtractionResult, error) {
			return c.GetLinks(ctx, url)
		}
		_, err := tea.NewProgram(tuilinks.NewModel(url, fetch), tea.WithAltScreen()).Run()
		return err
	}

	result, err := c.GetLinks(cmd.Context(), url)
	if err != nil {
		return describeError(err)
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	printResult(os.Stdout, result)
	return nil
}

func printResult(w io.Writer, result *domain.ExtractionResult) {
	fmt.Fprintln(w, theme.Title.UnsetMarginLeft().Render(result.Title))
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Video (%d):\n", len(result.VideoLinks))
	if len(result.VideoLinks) == 0 {
		fmt.Fprintln(w, "  none")
	}
	for _, link := range result.VideoLinks {
		fmt.Fprintf(w, "  %-12s %s\n", link.Resolution, link.Size)
		fmt.Fprintf(w, "    %s\n", link.URL)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Audio (%d):\n", len(result.AudioLinks))
	if len(result.AudioLinks) == 0 {
		fmt.Fprintln(w, "  none")
	}
	for _, link := range result.AudioLinks {
		fmt.Fprintf(w, "  %-16s %s\n", link.Bitrate, link.Size)
		fmt.Fprintf(w, "    %s\n", link.URL)
	}
}

// describeError agrega el tipo de fallo al mensaje del daemon
func describeError(err error) error {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Kind != "" && apiErr.Kind != "unknown" {
		return fmt.Errorf("%s (%s)", apiErr.Message, apiErr.Kind)
	}
	return err
}
