// Command sml is the command-line client for smart-linksd.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/elsanchez/smart-links/internal/config"
	"github.com/elsanchez/smart-links/pkg/client"
)

const (
	version = "0.1.0"
)

// Global flags
var (
	flagAddr   string
	flagConfig string
)

// cfg holds the loaded configuration; used by the commands that open the database.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "sml",
	Short: "List the downloadable video and audio links of a video URL",
	Long: `sml talks to smart-linksd to list the video+audio and audio-only
stream links of a video, browse the lookup history and manage the cookie
accounts passed to yt-dlp.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagAddr, "addr", "", "Daemon URL (default: $SMART_LINKS_ADDR or "+client.DefaultBaseURL+")")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config file")

	rootCmd.AddCommand(linksCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(lookupCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(pingCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(cookiesCmd)
}

// loadConfig loads the config file, or the defaults when it does not exist
func loadConfig(cmd *cobra.Command, args []string) error {
	var err error
	if flagConfig != "" {
		cfg, err = config.LoadFile(flagConfig)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	return nil
}

// newClient crea el cliente usando --addr si se especificó
func newClient() *client.Client {
	if flagAddr != "" {
		return client.NewClient(flagAddr)
	}
	return client.NewDefaultClient()
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("sml v%s\n", version)
	},
}
