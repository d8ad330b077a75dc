package content

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-site/models"
	"github.com/rpupo63/portfolio-site/notify"
	"github.com/rpupo63/portfolio-site/toast"
)

// DefaultDebounce is how long Watch waits after the last change before importing
const DefaultDebounce = 500 * time.Millisecond

type PostUpserter interface {
	UpsertBySlug(ctx context.Context, post *models.BlogPost) error
}

// Importer syncs the markdown posts in a directory into storage
type Importer struct {
	dir      string
	posts    PostUpserter
	logger   zerolog.Logger
	Debounce time.Duration
}

func NewImporter(dir string, posts PostUpserter) *Importer {
	return &Importer{
		dir:      dir,
		posts:    posts,
		logger:   log.With().Str("component", "importer").Str("dir", dir).Logger(),
		Debounce: DefaultDebounce,
	}
}

// Report summarises one import run
type Report struct {
	Imported int
	Failed   int
}

// Run upserts every post in the directory by slug. Posts that fail to load
// or save are counted and logged; the returned error joins their causes.
func (i *Importer) Run(ctx context.Context) (Report, error) {
	posts, loadErr := LoadPosts(i.dir)

	var report Report
	failures := []error{}
	if loadErr != nil {
		failures = append(failures, loadErr)
		if joined, ok := loadErr.(interface{ Unwrap() []error }); ok {
			report.Failed += len(joined.Unwrap())
		} else {
			report.Failed++
		}
	}

	for _, post := range posts {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if err := i.posts.UpsertBySlug(ctx, post); err != nil {
			report.Failed++
			failures = append(failures, fmt.Errorf("save %s: %w", post.Slug, err))
			continue
		}
		report.Imported++
	}

	err := errors.Join(failures...)
	if err != nil {
		i.logger.Warn().Err(err).Int("imported", report.Imported).Int("failed", report.Failed).Msg("Import finished with errors")
		toast.Toast(toast.Notification{
			Title:       "Import had errors",
			Description: fmt.Sprintf("%d imported, %d failed", report.Imported, report.Failed),
			Variant:     notify.VariantDestructive,
		})
	} else {
		i.logger.Info().Int("imported", report.Imported).Msg("Import finished")
		toast.Toast(toast.Notification{
			Title:       "Posts imported",
			Description: fmt.Sprintf("%d posts synced", report.Imported),
		})
	}
	return report, err
}

// Watch imports once, then again after every burst of changes in the
// directory, until ctx is done.
func (i *Importer) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	err = filepath.WalkDir(i.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to watch '%s': %w", i.dir, err)
	}

	i.Run(ctx)

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			i.logger.Debug().Str("path", event.Name).Str("op", event.Op.String()).Msg("Change detected")
			if event.Has(fsnotify.Create) && isDir(event.Name) {
				if err := watcher.Add(event.Name); err != nil {
					i.logger.Warn().Err(err).Str("path", event.Name).Msg("Error adding new directory to watcher")
				}
			}
			if timer == nil {
				timer = time.NewTimer(i.Debounce)
			} else {
				timer.Reset(i.Debounce)
			}
			fire = timer.C
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			i.logger.Warn().Err(err).Msg("Watcher error")
		case <-fire:
			fire = nil
			i.Run(ctx)
		}
	}
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
