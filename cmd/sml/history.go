package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/elsanchez/smart-links/internal/domain"
)

var historyCmd = &cobra.Command{
	Use:   "history [limit]",
	Short: "List recent lookups (default: 50)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit := 50
		if len(args) > 0 {
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 1 {
				return fmt.Errorf("invalid limit: %s", args[0])
			}
			limit = n
		}

		lookups, err := newClient().ListLookups(cmd.Context(), limit)
		if err != nil {
			return err
		}

		if len(lookups) == 0 {
			fmt.Println("No lookups found")
			return nil
		}

		rows := make([][]string, 0, len(lookups))
		for _, l := range lookups {
			summary := l.Title
			links := fmt.Sprintf("%d/%d", l.VideoCount, l.AudioCount)
			if l.IsFailed() {
				summary = l.ErrorMessage
				links = "-"
			}
			rows = append(rows, []string{
				strconv.FormatInt(l.ID, 10),
				string(l.Status),
				l.Platform,
				links,
				truncate(summary, 60),
				l.CreatedAt.Local().Format("2006-01-02 15:04"),
			})
		}

		fmt.Printf("Recent lookups (%d):\n", len(lookups))
		fmt.Println(renderTable([]string{"ID", "Status", "Platform", "Video/Audio", "Title / Error", "At"}, rows, 0, 3))
		return nil
	},
}

var lookupCmd = &cobra.Command{
	Use:   "lookup <id>",
	Short: "Show one lookup from the history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid id: %s", args[0])
		}

		l, err := newClient().GetLookup(cmd.Context(), id)
		if err != nil {
			return err
		}

		printLookup(l)
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show lookup statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		stats, err := newClient().GetStats(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Println("Lookup Statistics:")
		fmt.Println()
		fmt.Printf("  Completed:  %d\n", stats.Completed)
		fmt.Printf("  Failed:     %d\n", stats.Failed)
		fmt.Printf("  Total:      %d\n", stats.Total)
		return nil
	},
}

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check that the daemon is running",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := newClient().Ping(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("✓ smart-linksd is running")
		return nil
	},
}

func printLookup(l *domain.Lookup) {
	fmt.Printf("ID: %d\n", l.ID)
	fmt.Printf("  Platform: %s\n", l.Platform)
	fmt.Printf("  URL: %s\n", l.URL)
	fmt.Printf("  Status: %s\n", l.Status)
	if l.Title != "" {
		fmt.Printf("  Title: %s\n", l.Title)
	}
	if l.IsFailed() {
		fmt.Printf("  Error: %s (%s)\n", l.ErrorMessage, l.ErrorKind)
	} else {
		fmt.Printf("  Links: %d video, %d audio\n", l.VideoCount, l.AudioCount)
	}
	fmt.Printf("  At: %s\n", l.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Println()
}
