package obs

import "strings"

// CanonicalPath collapses resource identifiers so metric label cardinality
// stays bounded. Unknown paths pass through unchanged.
func CanonicalPath(path string) string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	if path == "" {
		return "/"
	}
	if rest, ok := strings.CutPrefix(path, "/api/employees/"); ok {
		if rest != "" && rest != "by-email" && !strings.Contains(rest, "/") {
			return "/api/employees/:id"
		}
	}
	return path
}
