package models

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gosimple/slug"
)

// ValidationError names the first field of a record that breaks an invariant
type ValidationError struct {
	Field   string
	Reason  string
	Missing bool
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

func missing(field string) *ValidationError {
	return &ValidationError{Field: field, Reason: "is required", Missing: true}
}

func invalid(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// ValidSlug reports whether s is a non-empty, URL-safe slug
func ValidSlug(s string) bool {
	return slug.IsSlug(s) && s == Slugify(s)
}

// Slugify derives a URL-safe slug from a title: lowercase ASCII words
// joined by single hyphens
func Slugify(title string) string {
	return slug.Make(strings.ReplaceAll(title, "_", " "))
}

// ValidURL reports whether s is an absolute http or https URL
func ValidURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// zero timestamps are filled by storage and are not checked
func checkTimestamps(createdAt, updatedAt time.Time) error {
	if createdAt.IsZero() || updatedAt.IsZero() {
		return nil
	}
	if updatedAt.Before(createdAt) {
		return invalid("updated_at", "must not be before created_at")
	}
	return nil
}
