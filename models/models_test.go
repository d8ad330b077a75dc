package models

import (
	"errors"
	"testing"
	"time"
)

func strPtr(s string) *string { return &s }

func validProject() Project {
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	return Project{
		Title:       "Portfolio Site",
		Slug:        "portfolio-site",
		Description: "The site you are looking at",
		GithubURL:   strPtr("https://github.com/rpupo63/portfolio-site"),
		Tags:        []string{"go", "web"},
		TechStack:   []string{"Go", "Postgres"},
		CreatedAt:   created,
		UpdatedAt:   created.Add(time.Hour),
		Featured:    true,
	}
}

func TestProject_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(p *Project)
		wantField string
	}{
		{"valid", func(p *Project) {}, ""},
		{"missing title", func(p *Project) { p.Title = "" }, "title"},
		{"missing description", func(p *Project) { p.Description = "" }, "description"},
		{"uppercase slug", func(p *Project) { p.Slug = "Portfolio" }, "slug"},
		{"double hyphen slug", func(p *Project) { p.Slug = "a--b" }, "slug"},
		{"empty slug", func(p *Project) { p.Slug = "" }, "slug"},
		{"relative project url", func(p *Project) { p.ProjectURL = strPtr("/demo") }, "project_url"},
		{"ftp image url", func(p *Project) { p.ImageURL = strPtr("ftp://host/img.png") }, "image_url"},
		{"updated before created", func(p *Project) { p.UpdatedAt = p.CreatedAt.Add(-time.Second) }, "updated_at"},
		{"equal timestamps", func(p *Project) { p.UpdatedAt = p.CreatedAt }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProject()
			tt.mutate(&p)
			err := p.Validate()

			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}

			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if vErr.Field != tt.wantField {
				t.Errorf("expected field %q, got %q", tt.wantField, vErr.Field)
			}
		})
	}
}

func TestBeforeSave_ClampsUpdatedAt(t *testing.T) {
	created := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	post := &BlogPost{Title: "Hello", CreatedAt: created, UpdatedAt: created.Add(-time.Hour)}
	if err := post.BeforeSave(nil); err != nil {
		t.Fatalf("BeforeSave: %v", err)
	}
	if !post.UpdatedAt.Equal(created) {
		t.Errorf("post updated_at = %v, want %v", post.UpdatedAt, created)
	}
	if post.Slug != "hello" {
		t.Errorf("post slug = %q, want hello", post.Slug)
	}

	project := &Project{Title: "Site", CreatedAt: created, UpdatedAt: created.Add(-time.Hour)}
	if err := project.BeforeSave(nil); err != nil {
		t.Fatalf("BeforeSave: %v", err)
	}
	if !project.UpdatedAt.Equal(created) {
		t.Errorf("project updated_at = %v, want %v", project.UpdatedAt, created)
	}

	fresh := &BlogPost{Title: "Fresh"}
	if err := fresh.BeforeSave(nil); err != nil {
		t.Fatalf("BeforeSave: %v", err)
	}
	if !fresh.CreatedAt.IsZero() || !fresh.UpdatedAt.IsZero() {
		t.Errorf("zero timestamps should be left for storage, got %v / %v", fresh.CreatedAt, fresh.UpdatedAt)
	}
}

func TestProject_TimestampsOrderLexicographically(t *testing.T) {
	p := validProject()
	if err := p.Validate(); err != nil {
		t.Fatalf("expected valid project, got %v", err)
	}

	created := p.CreatedAt.UTC().Format(time.RFC3339)
	updated := p.UpdatedAt.UTC().Format(time.RFC3339)
	if updated < created {
		t.Errorf("expected %s >= %s", updated, created)
	}
}

func TestBlogPost_Validate(t *testing.T) {
	post := BlogPost{
		Title:   "Hello",
		Slug:    "hello",
		Content: "# Hello",
	}
	if err := post.Validate(); err != nil {
		t.Fatalf("expected valid post, got %v", err)
	}

	post.Content = ""
	var vErr *ValidationError
	if err := post.Validate(); !errors.As(err, &vErr) || vErr.Field != "content" {
		t.Errorf("expected content error, got %v", err)
	}
}

func TestBlogPost_IsPublished(t *testing.T) {
	post := BlogPost{Published: false}
	if post.IsPublished() {
		t.Error("expected draft post to be unpublished")
	}
	post.Published = true
	if !post.IsPublished() {
		t.Error("expected post to be published")
	}
}

func TestContactSubmission_Validate(t *testing.T) {
	tests := []struct {
		name      string
		sub       ContactSubmission
		wantField string
	}{
		{"valid", ContactSubmission{Name: "Ada", Email: "ada@example.com", Message: "Hi"}, ""},
		{"valid with subject", ContactSubmission{Name: "Ada", Email: "ada@example.com", Message: "Hi", Subject: strPtr("Work")}, ""},
		{"missing name", ContactSubmission{Email: "ada@example.com", Message: "Hi"}, "name"},
		{"missing email", ContactSubmission{Name: "Ada", Message: "Hi"}, "email"},
		{"bad email", ContactSubmission{Name: "Ada", Email: "not-an-email", Message: "Hi"}, "email"},
		{"display name email", ContactSubmission{Name: "Ada", Email: "Ada <ada@example.com>", Message: "Hi"}, "email"},
		{"blank message", ContactSubmission{Name: "Ada", Email: "ada@example.com", Message: "  "}, "message"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.sub.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}
			var vErr *ValidationError
			if !errors.As(err, &vErr) || vErr.Field != tt.wantField {
				t.Errorf("expected error on %q, got %v", tt.wantField, err)
			}
		})
	}
}

func TestContactSubmission_SubjectOr(t *testing.T) {
	sub := ContactSubmission{}
	if got := sub.SubjectOr("fallback"); got != "fallback" {
		t.Errorf("expected fallback, got %q", got)
	}
	sub.Subject = strPtr("Hello")
	if got := sub.SubjectOr("fallback"); got != "Hello" {
		t.Errorf("expected Hello, got %q", got)
	}
}

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Hello World":       "hello-world",
		"  Go & Postgres  ": "go-and-postgres",
		"Already-a-slug":    "already-a-slug",
		"snake_case_title":  "snake-case-title",
	}
	for in, want := range tests {
		if got := Slugify(in); got != want {
			t.Errorf("Slugify(%q) = %q, want %q", in, got, want)
		}
		if !ValidSlug(Slugify(in)) {
			t.Errorf("Slugify(%q) produced an invalid slug", in)
		}
	}
}

func TestValidSlug(t *testing.T) {
	tests := map[string]bool{
		"hello-world": true,
		"go2":         true,
		"":            false,
		"Hello":       false,
		"a_b":         false,
		"-leading":    false,
		"double--":    false,
		"with space":  false,
	}
	for in, want := range tests {
		if got := ValidSlug(in); got != want {
			t.Errorf("ValidSlug(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestFindColumnMismatches(t *testing.T) {
	got := FindColumnMismatches(
		[]string{"id", "title", "legacy_gif", "Archived"},
		[]string{"id", "title"},
	)
	want := []string{"Archived", "legacy_gif"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("expected %v, got %v", want, got)
		}
	}
}
