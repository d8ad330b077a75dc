// Package content imports markdown blog posts and the CV data file from disk.
package content

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/rpupo63/portfolio-site/models"
)

// PostFrontmatter is the YAML header of a post file
type PostFrontmatter struct {
	Title     string   `yaml:"title"`
	Slug      string   `yaml:"slug"`
	Summary   string   `yaml:"summary"`
	ImageURL  string   `yaml:"image_url"`
	Tags      []string `yaml:"tags"`
	Published bool     `yaml:"published"`
	Date      string   `yaml:"date"`
	Updated   string   `yaml:"updated"`
	AuthorID  string   `yaml:"author_id"`
}

var dateFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseDate(value string) (time.Time, error) {
	for _, format := range dateFormats {
		if t, err := time.Parse(format, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("could not parse date %q, use YYYY-MM-DD or RFC3339", value)
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// ParsePost builds a blog post from a markdown file's bytes. name is the
// file name, used for the title and slug when the frontmatter has none.
func ParsePost(name string, data []byte) (*models.BlogPost, error) {
	var fm PostFrontmatter
	body, err := frontmatter.Parse(bytes.NewReader(data), &fm)
	if err != nil {
		return nil, fmt.Errorf("failed to parse frontmatter: %w", err)
	}

	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	if fm.Title == "" {
		words := strings.NewReplacer("-", " ", "_", " ").Replace(base)
		fm.Title = cases.Title(language.English).String(words)
	}
	if fm.Slug == "" {
		fm.Slug = models.Slugify(base)
	}

	post := &models.BlogPost{
		Title:     fm.Title,
		Slug:      fm.Slug,
		Content:   strings.TrimSpace(string(body)),
		Summary:   optional(fm.Summary),
		ImageURL:  optional(fm.ImageURL),
		Published: fm.Published,
		AuthorID:  optional(fm.AuthorID),
	}
	if len(fm.Tags) > 0 {
		post.Tags = fm.Tags
	}
	if fm.Date != "" {
		if post.CreatedAt, err = parseDate(fm.Date); err != nil {
			return nil, err
		}
	}
	if fm.Updated != "" {
		if post.UpdatedAt, err = parseDate(fm.Updated); err != nil {
			return nil, err
		}
	}
	// a single date stands for both
	switch {
	case post.CreatedAt.IsZero() && !post.UpdatedAt.IsZero():
		post.CreatedAt = post.UpdatedAt
	case post.UpdatedAt.IsZero() && !post.CreatedAt.IsZero():
		post.UpdatedAt = post.CreatedAt
	}

	if err := post.Validate(); err != nil {
		return nil, err
	}
	return post, nil
}

// LoadPost reads and parses a single markdown file
func LoadPost(path string) (*models.BlogPost, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file '%s': %w", path, err)
	}
	post, err := ParsePost(filepath.Base(path), data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return post, nil
}

// LoadPosts parses every *.md file under dir, sorted by path. Files that fail
// to parse are skipped and reported in the joined error alongside the posts
// that did load.
func LoadPosts(dir string) ([]*models.BlogPost, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(strings.ToLower(d.Name()), ".md") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking content directory '%s': %w", dir, err)
	}
	sort.Strings(paths)

	var (
		posts    []*models.BlogPost
		failures []error
		seen     = make(map[string]string, len(paths))
	)
	for _, path := range paths {
		post, err := LoadPost(path)
		if err != nil {
			failures = append(failures, err)
			continue
		}
		if other, ok := seen[post.Slug]; ok {
			failures = append(failures, fmt.Errorf("%s: slug %q already used by %s", path, post.Slug, other))
			continue
		}
		seen[post.Slug] = path
		posts = append(posts, post)
	}
	return posts, errors.Join(failures...)
}
