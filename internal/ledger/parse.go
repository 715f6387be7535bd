package ledger

import (
	"strconv"
	"strings"

	"github.com/Jamlick126/invoice-manager/internal/domain"
)

// ParsePositiveWhole reads a strictly positive whole number typed by the user.
func ParsePositiveWhole(field string, raw string) (int64, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, domain.NewValidationError(field, field+" is required")
	}
	n, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil {
		return 0, domain.NewValidationError(field, field+" must be a whole number")
	}
	if n < 1 {
		return 0, domain.NewValidationError(field, field+" must be greater than zero")
	}
	return n, nil
}
