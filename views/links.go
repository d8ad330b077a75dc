package views

import (
	"fmt"
	"strings"
)

// PostPath is the site-relative path of a blog post page
func PostPath(slug string) string {
	return "/blog/" + slug
}

// PostURL constructs an absolute blog post URL from base URL and slug.
// It returns "" when either is missing.
func PostURL(baseURL, slug string) string {
	if baseURL == "" || slug == "" {
		return ""
	}
	return fmt.Sprintf("%s%s", strings.TrimSuffix(baseURL, "/"), PostPath(slug))
}
