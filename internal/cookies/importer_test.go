package cookies

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/elsanchez/smart-links/internal/domain"
	"github.com/elsanchez/smart-links/internal/repository/sqlite"
)

func newTestImporter(t *testing.T) (*CookieImporter, *sqlite.Database, string) {
	t.Helper()

	db, err := sqlite.NewDatabase(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	cookiesDir := filepath.Join(t.TempDir(), "cookies")
	return NewCookieImporter(db.AccountRepo, cookiesDir), db, cookiesDir
}

func TestCookieImporter_Import(t *testing.T) {
	importer, db, cookiesDir := newTestImporter(t)
	ctx := context.Background()

	account, err := importer.Import(ctx, ImportOptions{
		FilePath: writeCookieFile(t, sampleCookies),
		Activate: true,
		Validate: true,
	})
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	if account.Platform != domain.PlatformYouTube {
		t.Errorf("expected auto-detected youtube, got %q", account.Platform)
	}
	if account.Name != "account" {
		t.Errorf("expected default name, got %q", account.Name)
	}

	wantPath := filepath.Join(cookiesDir, "youtube_account.txt")
	if account.CookiePath != wantPath {
		t.Errorf("CookiePath = %q, want %q", account.CookiePath, wantPath)
	}
	if _, err := os.Stat(wantPath); err != nil {
		t.Errorf("cookie file was not copied: %v", err)
	}

	active, err := db.AccountRepo.GetActive(ctx, domain.PlatformYouTube)
	if err != nil || active == nil || active.ID != account.ID {
		t.Fatalf("expected imported account to be active, got %v (%v)", active, err)
	}
	if active.ValidationStatus == domain.ValidationStatusUnknown {
		t.Error("expected validation status to be stored")
	}

	// Segundo import sin nombre genera account_2
	second, err := importer.Import(ctx, ImportOptions{FilePath: writeCookieFile(t, sampleCookies)})
	if err != nil {
		t.Fatalf("second Import failed: %v", err)
	}
	if second.Name != "account_2" {
		t.Errorf("expected account_2, got %q", second.Name)
	}
}

func TestCookieImporter_ExistingAccount(t *testing.T) {
	importer, db, _ := newTestImporter(t)
	ctx := context.Background()
	path := writeCookieFile(t, sampleCookies)

	opts := ImportOptions{FilePath: path, Platform: domain.PlatformYouTube, Name: "main"}
	if _, err := importer.Import(ctx, opts); err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	_, err := importer.Import(ctx, opts)
	if err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("expected already exists error, got %v", err)
	}

	opts.Force = true
	if _, err := importer.Import(ctx, opts); err != nil {
		t.Fatalf("forced Import failed: %v", err)
	}

	all, _ := db.AccountRepo.GetAll(ctx, domain.PlatformYouTube)
	if len(all) != 1 {
		t.Errorf("expected 1 account after forced import, got %d", len(all))
	}
}

func TestCookieImporter_UnknownPlatform(t *testing.T) {
	importer, _, _ := newTestImporter(t)

	path := writeCookieFile(t, ".example.com\tTRUE\t/\tFALSE\t0\ta\tb\n")

	_, err := importer.Import(context.Background(), ImportOptions{FilePath: path})
	if err == nil || !strings.Contains(err.Error(), "auto-detect") {
		t.Fatalf("expected auto-detect error, got %v", err)
	}
}

func TestWriteNetscape_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	in := []NetscapeCookie{
		{Domain: ".youtube.com", Flag: "TRUE", Path: "/", Secure: true, Expiration: 1861920000, Name: "SID", Value: "abc"},
	}

	if err := WriteNetscape(path, in); err != nil {
		t.Fatalf("WriteNetscape failed: %v", err)
	}

	out, err := NewCookieParser().ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile failed: %v", err)
	}
	if len(out) != 1 || out[0] != in[0] {
		t.Errorf("round trip mismatch: %+v", out)
	}
}
