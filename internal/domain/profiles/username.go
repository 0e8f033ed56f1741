package profiles

import (
	"fmt"
	"regexp"
	"strings"

	"linkbio/internal/domain/errs"
)

/*
	Username helpers
	----------------
	- Responsible ONLY for:
	  • normalizing and checking usernames
	  • suggesting one when the creator has none
	  • building public URLs
*/

const (
	minUsername = 3
	maxUsername = 30
)

var (
	nonUsername = regexp.MustCompile(`[^a-z0-9_\-]+`)
	multiDash   = regexp.MustCompile(`-+`)
	validName   = regexp.MustCompile(`^[a-z0-9][a-z0-9_\-]*$`)
)

// route segments and words we never hand out
var reserved = map[string]bool{
	"admin": true, "api": true, "auth": true, "blocks": true, "dashboard": true,
	"health": true, "login": true, "me": true, "profile": true, "register": true,
	"settings": true, "u": true, "analytics": true,
}

// NormalizeUsername lower-cases and trims a requested username, then checks it.
func NormalizeUsername(raw string) (string, error) {
	name := strings.ToLower(strings.TrimSpace(raw))

	switch {
	case len(name) < minUsername:
		return "", errs.Validation("username", fmt.Sprintf("must be at least %d characters", minUsername))
	case len(name) > maxUsername:
		return "", errs.Validation("username", fmt.Sprintf("must be at most %d characters", maxUsername))
	case !validName.MatchString(name):
		return "", errs.Validation("username", "may only contain a-z, 0-9, '-' and '_' and must start with a letter or digit")
	case reserved[name]:
		return "", errs.Validation("username", "is reserved")
	}
	return name, nil
}

// SuggestUsername derives a username from an email's local part and the user id.
// Example: "Jane.Doe@x.io", 32 -> "jane-doe-32"
func SuggestUsername(email string, userID uint) string {
	base := strings.ToLower(strings.TrimSpace(email))
	if i := strings.Index(base, "@"); i >= 0 {
		base = base[:i]
	}
	base = strings.NewReplacer(".", "-", "+", "-", " ", "-").Replace(base)
	base = nonUsername.ReplaceAllString(base, "")
	base = multiDash.ReplaceAllString(base, "-")
	base = strings.Trim(base, "-_")

	if base == "" {
		base = "user"
	}

	suffix := fmt.Sprintf("-%d", userID)
	if len(base)+len(suffix) > maxUsername {
		base = strings.Trim(base[:maxUsername-len(suffix)], "-_")
	}
	return base + suffix
}

// BuildPublicURL joins the public base URL and a username.
// Example: "https://lnk.bio", "jane" -> "https://lnk.bio/jane"
func BuildPublicURL(baseURL, username string) string {
	return strings.TrimRight(baseURL, "/") + "/" + username
}
