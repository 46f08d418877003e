package cookies

import (
	"fmt"
	"time"

	"github.com/elsanchez/smart-links/internal/domain"
)

// ValidationResult contains the result of cookie validation
type ValidationResult struct {
	IsValid   bool
	Status    string // "valid", "expired", "invalid"
	Message   string
	ExpiresAt *time.Time
}

// CookieValidator handles validation of cookies
type CookieValidator struct {
	parser *CookieParser
	now    func() time.Time
}

// NewCookieValidator creates a new cookie validator
func NewCookieValidator() *CookieValidator {
	return &CookieValidator{
		parser: NewCookieParser(),
		now:    time.Now,
	}
}

// ValidateFile validates a cookie file by checking expiration timestamps
func (v *CookieValidator) ValidateFile(path string) (*ValidationResult, error) {
	cookies, err := v.parser.ParseFile(path)
	if err != nil {
		return &ValidationResult{
			IsValid: false,
			Status:  domain.ValidationStatusInvalid,
			Message: fmt.Sprintf("failed to parse cookie file: %v", err),
		}, nil
	}

	return v.ValidateExpiration(cookies), nil
}

// ValidateExpiration checks if cookies are expired.
// Session cookies (expiration 0) never count as expired.
func (v *CookieValidator) ValidateExpiration(cookies []NetscapeCookie) *ValidationResult {
	if len(cookies) == 0 {
		return &ValidationResult{
			IsValid: false,
			Status:  domain.ValidationStatusInvalid,
			Message: "no cookies found",
		}
	}

	now := v.now().Unix()
	expired := 0
	for _, cookie := range cookies {
		if cookie.Expiration != 0 && cookie.Expiration < now {
			expired++
		}
	}

	result := &ValidationResult{}
	if earliest := v.parser.FindEarliestExpiration(cookies); !earliest.IsZero() {
		result.ExpiresAt = &earliest
	}

	switch {
	case expired == len(cookies):
		result.Status = domain.ValidationStatusExpired
		result.Message = fmt.Sprintf("all %d cookies expired", len(cookies))
	case expired > 0:
		result.Status = domain.ValidationStatusExpired
		result.Message = fmt.Sprintf("%d of %d cookies expired", expired, len(cookies))
	default:
		result.IsValid = true
		result.Status = domain.ValidationStatusValid
		result.Message = fmt.Sprintf("all %d cookies valid", len(cookies))
		if result.ExpiresAt != nil {
			result.Message += ", expires " + result.ExpiresAt.Format("2006-01-02")
		}
	}

	return result
}

// ValidateAccount validates an account's cookie file
func (v *CookieValidator) ValidateAccount(account *domain.Account) (*ValidationResult, error) {
	return v.ValidateFile(account.CookiePath)
}
