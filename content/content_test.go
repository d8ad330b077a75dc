package content

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rpupo63/portfolio-site/models"
	"github.com/rpupo63/portfolio-site/notify"
	"github.com/rpupo63/portfolio-site/toast"
)

const samplePost = `---
title: Building a Portfolio in Go
slug: portfolio-in-go
summary: Why I rewrote my site
image_url: https://example.com/cover.png
tags: [go, web]
published: true
date: 2026-03-01
updated: 2026-03-05T10:00:00Z
---

# Intro

Hello.
`

func writeFile(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestParsePostMapsFrontmatter(t *testing.T) {
	post, err := ParsePost("ignored.md", []byte(samplePost))
	if err != nil {
		t.Fatalf("ParsePost() error = %v", err)
	}

	if post.Title != "Building a Portfolio in Go" || post.Slug != "portfolio-in-go" {
		t.Errorf("title/slug = %q/%q", post.Title, post.Slug)
	}
	if post.Summary == nil || *post.Summary != "Why I rewrote my site" {
		t.Errorf("Summary = %v", post.Summary)
	}
	if post.ImageURL == nil || *post.ImageURL != "https://example.com/cover.png" {
		t.Errorf("ImageURL = %v", post.ImageURL)
	}
	if len(post.Tags) != 2 || post.Tags[0] != "go" || post.Tags[1] != "web" {
		t.Errorf("Tags = %v, want [go web] in order", post.Tags)
	}
	if !post.Published {
		t.Error("Published = false, want true")
	}
	if want := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC); !post.CreatedAt.Equal(want) {
		t.Errorf("CreatedAt = %v, want %v", post.CreatedAt, want)
	}
	if want := time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC); !post.UpdatedAt.Equal(want) {
		t.Errorf("UpdatedAt = %v, want %v", post.UpdatedAt, want)
	}
	if !strings.HasPrefix(post.Content, "# Intro") {
		t.Errorf("Content = %q, want markdown body without frontmatter", post.Content)
	}
	if post.AuthorID != nil {
		t.Errorf("AuthorID = %v, want nil", post.AuthorID)
	}
}

func TestParsePostFallsBackToFileName(t *testing.T) {
	post, err := ParsePost("hello-world_again.md", []byte("Just a body."))
	if err != nil {
		t.Fatalf("ParsePost() error = %v", err)
	}
	if post.Title != "Hello World Again" {
		t.Errorf("Title = %q", post.Title)
	}
	if post.Slug != "hello-world-again" {
		t.Errorf("Slug = %q", post.Slug)
	}
	if post.Published {
		t.Error("posts are drafts unless marked published")
	}
}

func TestParsePostSingleDateFillsBoth(t *testing.T) {
	day := time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		data string
	}{
		{"only updated", "---\ntitle: Hello\nupdated: 2020-01-02\n---\nbody"},
		{"only date", "---\ntitle: Hello\ndate: 2020-01-02\n---\nbody"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			post, err := ParsePost("hello.md", []byte(tt.data))
			if err != nil {
				t.Fatalf("ParsePost() error = %v", err)
			}
			if !post.CreatedAt.Equal(day) || !post.UpdatedAt.Equal(day) {
				t.Errorf("created_at = %v, updated_at = %v, want both %v", post.CreatedAt, post.UpdatedAt, day)
			}
		})
	}
}

func TestParsePostErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"bad date", "---\ndate: March 1st\n---\nbody"},
		{"empty body", "---\ntitle: Empty\n---\n"},
		{"bad slug", "---\nslug: Not A Slug\n---\nbody"},
		{"updated before created", "---\ndate: 2026-03-05\nupdated: 2026-03-01\n---\nbody"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParsePost("post.md", []byte(tt.data)); err == nil {
				t.Error("ParsePost() error = nil, want error")
			}
		})
	}
}

func TestLoadPosts(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.md", samplePost)
	writeFile(t, dir, "nested/b.md", "---\ntitle: Second\n---\nbody")
	writeFile(t, dir, "c.md", "---\nslug: portfolio-in-go\n---\nduplicate")
	writeFile(t, dir, "d.md", "---\ndate: nope\n---\nbody")
	writeFile(t, dir, "notes.txt", "not a post")

	posts, err := LoadPosts(dir)
	if err == nil {
		t.Fatal("LoadPosts() error = nil, want errors for the duplicate and bad date")
	}
	if !strings.Contains(err.Error(), "already used") {
		t.Errorf("error %v should mention the duplicate slug", err)
	}

	var slugs []string
	for _, p := range posts {
		slugs = append(slugs, p.Slug)
	}
	if strings.Join(slugs, ",") != "portfolio-in-go,b" {
		t.Errorf("loaded slugs = %v, want [portfolio-in-go b]", slugs)
	}
}

func TestLoadCV(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "cv.yaml", `
profile:
  name: Ricardo Pupo
  headline: Software Engineer
  links:
    github: https://github.com/rpupo63
experience:
  - company: Acme
    role: Engineer
    start_date: "2023-01"
    bullets: [Built things]
education:
  - institution: State University
    degree: BSc
    start_date: "2018-09"
    end_date: "2022-05"
skills:
  - name: Go
`)

	cv, err := LoadCV(path)
	if err != nil {
		t.Fatalf("LoadCV() error = %v", err)
	}
	if cv.Profile.Name != "Ricardo Pupo" || cv.Profile.Links["github"] == "" {
		t.Errorf("Profile = %+v", cv.Profile)
	}
	if len(cv.Experience) != 1 || cv.Experience[0].EndDate != nil {
		t.Errorf("Experience = %+v", cv.Experience)
	}
	if len(cv.Education) != 1 || cv.Education[0].EndDate == nil || *cv.Education[0].EndDate != "2022-05" {
		t.Errorf("Education = %+v", cv.Education)
	}
}

func TestLoadCVErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name, data string
	}{
		{"unknown key", "profile:\n  name: A\nhobbies: [x]\n"},
		{"missing name", "profile:\n  headline: Engineer\n"},
		{"empty file", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, tt.name+".yaml", tt.data)
			if _, err := LoadCV(path); err == nil {
				t.Error("LoadCV() error = nil, want error")
			}
		})
	}

	if _, err := LoadCV(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("LoadCV() on a missing file should fail")
	}
}

type fakeUpserter struct {
	mu    sync.Mutex
	posts map[string]*models.BlogPost
	fail  map[string]bool
}

func newFakeUpserter() *fakeUpserter {
	return &fakeUpserter{posts: map[string]*models.BlogPost{}, fail: map[string]bool{}}
}

func (f *fakeUpserter) UpsertBySlug(ctx context.Context, post *models.BlogPost) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail[post.Slug] {
		return errors.New("duplicate key value violates unique constraint")
	}
	f.posts[post.Slug] = post
	return nil
}

func (f *fakeUpserter) get(slug string) *models.BlogPost {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.posts[slug]
}

func useTestToasts(t *testing.T) *notify.Store {
	t.Helper()
	store := notify.NewStore(notify.WithLimit(10))
	toast.Use(store)
	t.Cleanup(func() {
		toast.Use(notify.NewStore())
		store.Close()
	})
	return store
}

func TestImporterRun(t *testing.T) {
	store := useTestToasts(t)
	dir := t.TempDir()
	writeFile(t, dir, "a.md", samplePost)
	writeFile(t, dir, "b.md", "---\ntitle: Broken\n---\nbody")
	writeFile(t, dir, "c.md", "---\ndate: nope\n---\nbody")

	upserter := newFakeUpserter()
	upserter.fail["broken"] = true

	report, err := NewImporter(dir, upserter).Run(context.Background())
	if err == nil {
		t.Fatal("Run() error = nil, want joined errors")
	}
	if report.Imported != 1 || report.Failed != 2 {
		t.Errorf("report = %+v, want 1 imported 2 failed", report)
	}
	if upserter.get("portfolio-in-go") == nil {
		t.Error("valid post was not upserted")
	}

	toasts := store.Toasts()
	if len(toasts) != 1 || toasts[0].Variant != notify.VariantDestructive {
		t.Errorf("toasts = %+v, want one destructive toast", toasts)
	}
}

func TestImporterWatchReimportsOnChange(t *testing.T) {
	useTestToasts(t)
	dir := t.TempDir()
	writeFile(t, dir, "a.md", samplePost)

	upserter := newFakeUpserter()
	importer := NewImporter(dir, upserter)
	importer.Debounce = 20 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- importer.Watch(ctx) }()

	waitFor(t, func() bool { return upserter.get("portfolio-in-go") != nil })

	writeFile(t, dir, "fresh.md", "---\ntitle: Fresh\n---\nnew post")
	waitFor(t, func() bool { return upserter.get("fresh") != nil })

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Watch() error = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Watch did not stop after cancel")
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}
