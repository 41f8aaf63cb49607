package shared

import "errors"

var (
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrClubScopeMissing indicates a request outside any club scope.
	ErrClubScopeMissing = errors.New("club scope missing")
)

// UserSafeMessage returns a message suitable for API consumers. Only
// sentinel errors pass through; anything else is masked.
func UserSafeMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound):
		return "resource not found"
	case errors.Is(err, ErrClubScopeMissing):
		return "club id must be a positive integer"
	}
	return "internal error"
}
