package database

import (
	"strings"
	"testing"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/rpupo63/portfolio-site/models"
)

func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  "host=localhost user=test dbname=test sslmode=disable",
		PreferSimpleProtocol: true,
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true})
	if err != nil {
		t.Fatalf("open dry-run db: %v", err)
	}
	return db
}

func TestProjectFilterScope(t *testing.T) {
	db := dryRunDB(t)
	featured := true

	tests := []struct {
		name    string
		filter  ProjectFilter
		want    []string
		notWant []string
	}{
		{
			name:    "empty filter uses default page and ordering",
			filter:  ProjectFilter{},
			want:    []string{`FROM "projects"`, "ORDER BY featured DESC,created_at DESC", "LIMIT 100"},
			notWant: []string{"WHERE", "OFFSET"},
		},
		{
			name:   "all filters",
			filter: ProjectFilter{Featured: &featured, Category: "web", Type: "personal", Tag: "go", Limit: 10, Offset: 20},
			want: []string{
				"featured = true",
				"category = 'web'",
				"type = 'personal'",
				`tags @> '["go"]'::jsonb`,
				"LIMIT 10",
				"OFFSET 20",
			},
		},
		{
			name:   "oversized limit is capped",
			filter: ProjectFilter{Limit: 5000},
			want:   []string{"LIMIT 100"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
				return tx.Scopes(tt.filter.Scope).Find(&[]*models.Project{})
			})
			for _, w := range tt.want {
				if !strings.Contains(sql, w) {
					t.Errorf("sql %q missing %q", sql, w)
				}
			}
			for _, nw := range tt.notWant {
				if strings.Contains(sql, nw) {
					t.Errorf("sql %q should not contain %q", sql, nw)
				}
			}
		})
	}
}

func TestBlogPostFilterScope(t *testing.T) {
	db := dryRunDB(t)

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		filter := BlogPostFilter{PublishedOnly: true, AuthorID: "author-1", Tag: "rust"}
		return tx.Scopes(filter.Scope).Find(&[]*models.BlogPost{})
	})

	for _, w := range []string{
		`FROM "blog_posts"`,
		"published = true",
		"author_id = 'author-1'",
		`tags @> '["rust"]'::jsonb`,
		"ORDER BY created_at DESC",
	} {
		if !strings.Contains(sql, w) {
			t.Errorf("sql %q missing %q", sql, w)
		}
	}

	drafts := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		return tx.Scopes(BlogPostFilter{}.Scope).Find(&[]*models.BlogPost{})
	})
	if strings.Contains(drafts, "published") {
		t.Errorf("unfiltered query should include drafts, got %q", drafts)
	}
}

func TestCountIgnoresPage(t *testing.T) {
	db := dryRunDB(t)

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var n int64
		filter := ProjectFilter{Category: "web", Limit: 10, Offset: 20}
		return tx.Model(&models.Project{}).Scopes(filter.Where).Count(&n)
	})
	for _, w := range []string{"count(*)", `FROM "projects"`, "category = 'web'"} {
		if !strings.Contains(sql, w) {
			t.Errorf("sql %q missing %q", sql, w)
		}
	}
	for _, nw := range []string{"LIMIT", "OFFSET", "ORDER BY"} {
		if strings.Contains(sql, nw) {
			t.Errorf("sql %q should not contain %q", sql, nw)
		}
	}
}

func TestUpsertBySlugKeepsUpdatedAfterCreated(t *testing.T) {
	db := dryRunDB(t)
	post := &models.BlogPost{
		Title:     "Hello",
		Slug:      "hello",
		Content:   "body",
		CreatedAt: time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC),
	}

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		return upsertBySlug(tx, post)
	})
	for _, w := range []string{
		`ON CONFLICT ("slug") DO UPDATE SET`,
		`"title"="excluded"."title"`,
		`"updated_at"=GREATEST(excluded.updated_at, "blog_posts".created_at)`,
	} {
		if !strings.Contains(sql, w) {
			t.Errorf("sql %q missing %q", sql, w)
		}
	}
	if strings.Contains(sql, `"created_at"="excluded"`) || strings.Contains(sql, `"updated_at"="excluded"`) {
		t.Errorf("sql %q overwrites timestamps from the file", sql)
	}
}

func TestCreateNeverStoresUpdatedBeforeCreated(t *testing.T) {
	db := dryRunDB(t)
	created := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	post := &models.BlogPost{
		Title:     "Hello",
		Slug:      "hello",
		Content:   "body",
		CreatedAt: created,
		UpdatedAt: created.Add(-48 * time.Hour),
	}

	if err := db.Create(post).Error; err != nil {
		t.Fatalf("dry-run create: %v", err)
	}
	if post.UpdatedAt.Before(post.CreatedAt) {
		t.Errorf("updated_at %v before created_at %v", post.UpdatedAt, post.CreatedAt)
	}
	if !post.CreatedAt.Equal(created) {
		t.Errorf("created_at = %v, want %v", post.CreatedAt, created)
	}
}
