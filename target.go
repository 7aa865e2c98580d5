package profilepeek

import "strings"

// DefaultProfileHost is the host profile pages are fetched from.
const DefaultProfileHost = "www.tiktok.com"

// NormalizeUsername canonicalizes a user-supplied username: surrounding
// whitespace is trimmed and a single leading "@" is stripped. The result
// must be non-empty and contain only letters, digits, ".", "_" and "-".
// Returns EINVALID otherwise. Normalization is idempotent.
func NormalizeUsername(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	name = strings.TrimPrefix(name, "@")
	if name == "" {
		return "", Errorf(EINVALID, "username required")
	}
	for _, r := range name {
		if !isUsernameRune(r) {
			return "", Errorf(EINVALID, "username contains invalid character %q", r)
		}
	}
	return name, nil
}

// NormalizeURL canonicalizes a user-supplied URL: surrounding whitespace
// is trimmed and "https://" is prepended when the value lacks an http
// prefix. Any non-empty input normalizes successfully; an empty input
// returns EINVALID. Normalization is idempotent.
func NormalizeURL(raw string) (string, error) {
	u := strings.TrimSpace(raw)
	if u == "" {
		return "", Errorf(EINVALID, "url required")
	}
	if !strings.HasPrefix(u, "http") {
		u = "https://" + u
	}
	return u, nil
}

// ProfileURL returns the profile page URL for a normalized username.
func ProfileURL(username string) string {
	return "https://" + DefaultProfileHost + "/@" + username
}

func isUsernameRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '.', r == '_', r == '-':
		return true
	}
	return false
}
