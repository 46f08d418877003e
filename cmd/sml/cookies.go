package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/elsanchez/smart-links/internal/cookies"
	"github.com/elsanchez/smart-links/internal/domain"
	"github.com/elsanchez/smart-links/internal/repository/sqlite"
	tuicookies "github.com/elsanchez/smart-links/internal/tui/cookies"
)

var (
	flagPlatform string
	flagName     string
	flagActivate bool
	flagValidate bool
	flagForce    bool
	flagBrowser  string
	flagDomain   string
)

var cookiesCmd = &cobra.Command{
	Use:   "cookies",
	Short: "Manage the cookie accounts passed to yt-dlp",
	Long: `Cookie accounts are Netscape cookie files. The active account of a
platform is passed to yt-dlp with --cookies when a link from that platform is
looked up. These commands open the daemon's database directly.`,
}

var cookiesImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a Netscape cookie file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDatabase(func(db *sqlite.Database, cookiesDir string) error {
			importer := cookies.NewCookieImporter(db.AccountRepo, cookiesDir)
			account, err := importer.Import(cmd.Context(), cookies.ImportOptions{
				FilePath: args[0],
				Platform: flagPlatform,
				Name:     flagName,
				Activate: flagActivate,
				Validate: flagValidate,
				Force:    flagForce,
			})
			if err != nil {
				return err
			}

			printImported(account)
			return nil
		})
	},
}

var cookiesExtractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Import cookies from an installed browser",
	Example: `  sml cookies extract --browser firefox --domain youtube.com --activate
  sml cookies extract --browser chrome --domain vimeo.com --name work`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagDomain == "" {
			return fmt.Errorf("--domain is required")
		}

		tmp, err := os.CreateTemp("", "sml-cookies-*.txt")
		if err != nil {
			return fmt.Errorf("create temp file: %w", err)
		}
		tmp.Close()
		defer os.Remove(tmp.Name())

		extracted, err := cookies.NewBrowserExtractor().Extract(cmd.Context(), cookies.ExtractOptions{
			Browser:    flagBrowser,
			Domain:     flagDomain,
			OutputPath: tmp.Name(),
		})
		if err != nil {
			return err
		}
		fmt.Printf("✓ Read %d cookies for %s\n", len(extracted), flagDomain)

		return withDatabase(func(db *sqlite.Database, cookiesDir string) error {
			importer := cookies.NewCookieImporter(db.AccountRepo, cookiesDir)
			account, err := importer.Import(cmd.Context(), cookies.ImportOptions{
				FilePath: tmp.Name(),
				Platform: flagPlatform,
				Name:     flagName,
				Activate: flagActivate,
				Validate: true,
				Force:    flagForce,
			})
			if err != nil {
				return err
			}

			printImported(account)
			return nil
		})
	},
}

var cookiesListCmd = &cobra.Command{
	Use:   "list [platform]",
	Short: "List cookie accounts",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDatabase(func(db *sqlite.Database, _ string) error {
			ctx := cmd.Context()

			platforms := args
			if len(platforms) == 0 {
				var err error
				if platforms, err = db.AccountRepo.ListPlatforms(ctx); err != nil {
					return err
				}
			}

			var rows [][]string
			for _, platform := range platforms {
				accounts, err := db.AccountRepo.GetAll(ctx, platform)
				if err != nil {
					return err
				}

				for _, acc := range accounts {
					active := ""
					if acc.IsActive {
						active = "*"
					}
					lastUsed := "never"
					if acc.LastUsed != nil {
						lastUsed = acc.LastUsed.Local().Format("2006-01-02 15:04")
					}
					rows = append(rows, []string{
						strconv.FormatInt(acc.ID, 10),
						acc.Platform,
						acc.Name,
						active,
						acc.ValidationStatus,
						lastUsed,
						acc.CookiePath,
					})
				}
			}

			if len(rows) == 0 {
				fmt.Println("No accounts found")
				return nil
			}

			fmt.Println(renderTable([]string{"ID", "Platform", "Name", "Active", "Status", "Last used", "File"}, rows, 0))
			return nil
		})
	},
}

var cookiesActivateCmd = &cobra.Command{
	Use:   "activate <platform> <name>",
	Short: "Make an account the active one for its platform",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDatabase(func(db *sqlite.Database, _ string) error {
			if err := db.AccountRepo.SetActive(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Printf("✓ %s/%s is now active\n", args[0], args[1])
			return nil
		})
	},
}

var cookiesValidateCmd = &cobra.Command{
	Use:   "validate <id>",
	Short: "Check the expiration of an account's cookies",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid id: %s", args[0])
		}

		return withDatabase(func(db *sqlite.Database, _ string) error {
			ctx := cmd.Context()

			account, err := db.AccountRepo.GetByID(ctx, id)
			if err != nil {
				return err
			}

			result, err := cookies.NewCookieValidator().ValidateAccount(account)
			if err != nil {
				return err
			}

			var validationErr *string
			if !result.IsValid {
				validationErr = &result.Message
			}
			if err := db.AccountRepo.UpdateValidation(ctx, id, result.Status, validationErr); err != nil {
				return err
			}

			fmt.Printf("%s/%s: %s (%s)\n", account.Platform, account.Name, result.Status, result.Message)
			return nil
		})
	},
}

var cookiesTUICmd = &cobra.Command{
	Use:   "tui",
	Short: "Manage cookie accounts interactively",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDatabase(func(db *sqlite.Database, cookiesDir string) error {
			_, err := tea.NewProgram(tuicookies.NewModel(db.AccountRepo, cookiesDir), tea.WithAltScreen()).Run()
			return err
		})
	},
}

func init() {
	for _, c := range []*cobra.Command{cookiesImportCmd, cookiesExtractCmd} {
		c.Flags().StringVarP(&flagPlatform, "platform", "p", "", "Platform (auto-detected from cookie domains if empty)")
		c.Flags().StringVarP(&flagName, "name", "n", "", "Account name (auto-generated if empty)")
		c.Flags().BoolVarP(&flagActivate, "activate", "a", false, "Set as the active account")
		c.Flags().BoolVarP(&flagForce, "force", "f", false, "Overwrite an existing account")
	}
	cookiesImportCmd.Flags().BoolVar(&flagValidate, "validate", true, "Check cookie expiration")
	cookiesExtractCmd.Flags().StringVarP(&flagBrowser, "browser", "b", "", "Browser: "+strings.Join(cookies.SupportedBrowsers, ", ")+" (default: any)")
	cookiesExtractCmd.Flags().StringVarP(&flagDomain, "domain", "d", "", "Cookie domain, e.g. youtube.com")

	cookiesCmd.AddCommand(cookiesImportCmd)
	cookiesCmd.AddCommand(cookiesExtractCmd)
	cookiesCmd.AddCommand(cookiesListCmd)
	cookiesCmd.AddCommand(cookiesActivateCmd)
	cookiesCmd.AddCommand(cookiesValidateCmd)
	cookiesCmd.AddCommand(cookiesTUICmd)
}

// withDatabase abre la base de datos del daemon y la cierra al terminar
func withDatabase(fn func(db *sqlite.Database, cookiesDir string) error) error {
	dataDir, err := cfg.ExpandedDataDir()
	if err != nil {
		return err
	}
	cookiesDir, err := cfg.ExpandedCookiesDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	db, err := sqlite.NewDatabase(dataDir)
	if err != nil {
		return fmt.Errorf("open database %s: %w", filepath.Join(dataDir, sqlite.DBFileName), err)
	}
	defer db.Close()

	return fn(db, cookiesDir)
}

func printImported(account *domain.Account) {
	fmt.Printf("✓ Imported %s/%s\n", account.Platform, account.Name)
	fmt.Printf("  File: %s\n", account.CookiePath)
	fmt.Printf("  Validation: %s\n", account.ValidationStatus)
	if account.ValidationError != nil {
		fmt.Printf("  %s\n", *account.ValidationError)
	}
	if account.IsActive {
		fmt.Println("  Active: yes")
	}
}
