package cookies

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/elsanchez/smart-links/internal/domain"
	"github.com/elsanchez/smart-links/internal/repository"
)

// ImportOptions contains options for importing a cookie file
type ImportOptions struct {
	FilePath string
	Platform string
	Name     string
	Activate bool
	Validate bool
	Force    bool // Overwrite existing account
}

// CookieImporter orchestrates the cookie import workflow
type CookieImporter struct {
	parser      *CookieParser
	validator   *CookieValidator
	accountRepo repository.AccountRepository
	cookiesDir  string
}

// NewCookieImporter creates a new cookie importer that stores files in cookiesDir
func NewCookieImporter(accountRepo repository.AccountRepository, cookiesDir string) *CookieImporter {
	return &CookieImporter{
		parser:      NewCookieParser(),
		validator:   NewCookieValidator(),
		accountRepo: accountRepo,
		cookiesDir:  cookiesDir,
	}
}

// Import copies a cookie file into the cookies dir and registers the account
func (i *CookieImporter) Import(ctx context.Context, opts ImportOptions) (*domain.Account, error) {
	cookies, err := i.parser.ParseFile(opts.FilePath)
	if err != nil {
		return nil, fmt.Errorf("parse cookie file: %w", err)
	}

	platform := opts.Platform
	if platform == "" {
		platform = i.parser.DetectPlatform(cookies)
		if platform == "" {
			return nil, fmt.Errorf("could not auto-detect platform, please specify --platform")
		}
	}

	existing, err := i.accountRepo.GetAll(ctx, platform)
	if err != nil {
		return nil, fmt.Errorf("check existing accounts: %w", err)
	}

	name := opts.Name
	if name == "" {
		name = uniqueName(existing, "account")
	}

	for _, acc := range existing {
		if acc.Name != name {
			continue
		}
		if !opts.Force {
			return nil, fmt.Errorf("account already exists: %s/%s (use --force to overwrite)", platform, name)
		}
		if err := i.accountRepo.Delete(ctx, acc.ID); err != nil {
			return nil, fmt.Errorf("delete existing account: %w", err)
		}
	}

	cookiePath, err := i.store(opts.FilePath, platform, name)
	if err != nil {
		return nil, err
	}

	account := &domain.Account{
		Platform:         platform,
		Name:             name,
		CookiePath:       cookiePath,
		ValidationStatus: domain.ValidationStatusUnknown,
	}

	if opts.Validate {
		result := i.validator.ValidateExpiration(cookies)
		account.ValidationStatus = result.Status
		if !result.IsValid {
			account.ValidationError = &result.Message
		}
	}

	id, err := i.accountRepo.Create(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}
	account.ID = id

	if opts.Activate {
		if err := i.accountRepo.SetActive(ctx, platform, name); err != nil {
			return nil, fmt.Errorf("set active: %w", err)
		}
		account.IsActive = true
	}

	return account, nil
}

// store copies the cookie file to <cookiesDir>/<platform>_<name>.txt
func (i *CookieImporter) store(src, platform, name string) (string, error) {
	if err := os.MkdirAll(i.cookiesDir, 0700); err != nil {
		return "", fmt.Errorf("create cookie directory: %w", err)
	}

	dst := filepath.Join(i.cookiesDir, fmt.Sprintf("%s_%s.txt", platform, name))

	absSrc, _ := filepath.Abs(src)
	absDst, _ := filepath.Abs(dst)
	if absSrc == absDst {
		return dst, nil
	}

	data, err := os.ReadFile(src)
	if err != nil {
		return "", fmt.Errorf("read source cookie file: %w", err)
	}

	if err := os.WriteFile(dst, data, 0600); err != nil {
		return "", fmt.Errorf("write cookie file: %w", err)
	}

	return dst, nil
}

// uniqueName returns base, or base_2, base_3... if already taken
func uniqueName(existing []*domain.Account, base string) string {
	taken := make(map[string]bool, len(existing))
	for _, acc := range existing {
		taken[acc.Name] = true
	}

	name := base
	for n := 2; taken[name]; n++ {
		name = fmt.Sprintf("%s_%d", base, n)
	}

	return name
}
