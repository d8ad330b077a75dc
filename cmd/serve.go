package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/rpupo63/portfolio-site/api"
	"github.com/rpupo63/portfolio-site/config"
	"github.com/rpupo63/portfolio-site/content"
	"github.com/rpupo63/portfolio-site/database"
	"github.com/rpupo63/portfolio-site/models"
	"github.com/rpupo63/portfolio-site/ratelimit"
	"github.com/rpupo63/portfolio-site/services"
	"github.com/rpupo63/portfolio-site/views"
)

const defaultSiteTitle = "Portfolio"

var watchContent bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Runs the HTTP server",
	Long: `The serve command connects to the database, loads the site configuration and
serves the JSON API and the rendered pages until interrupted. With --watch the
markdown posts in CONTENT_DIR are re-imported whenever they change.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&watchContent, "watch", false, "import markdown posts from CONTENT_DIR on change")
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	if err := appConfig.RequireDatabase(); err != nil {
		return err
	}
	if appConfig.IsProduction() && appConfig.AdminToken == "" {
		return errors.New("ADMIN_TOKEN is required when APP_ENV=production")
	}

	site, err := loadSite(ctx, appConfig.SiteConfigPath)
	if err != nil {
		return err
	}

	if dsn := site.SentryDSN(); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: dsn, Environment: appConfig.AppEnv}); err != nil {
			log.Warn().Err(err).Msg("Failed to initialize Sentry, errors will not be reported")
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	db, err := openDatabase(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	limiter, closeLimiter := newLimiter(ctx)
	defer closeLimiter()

	loadCV := func() (*models.CV, error) { return content.LoadCV(appConfig.CVPath) }
	cv, err := loadCV()
	if err != nil {
		log.Warn().Err(err).Str("path", appConfig.CVPath).Msg("CV not loaded, footer links and /cv will be empty")
		cv = nil
	}

	renderer, err := views.New(views.Site{
		Title:        siteTitle(cv),
		BaseURL:      appConfig.BaseURL,
		GATrackingID: site.GATrackingID(),
		Footer:       footerData(appConfig, cv, time.Now()),
	})
	if err != nil {
		return err
	}

	server, err := api.NewServer(appConfig, api.Deps{
		Site:     site,
		Projects: db.ProjectRepo(),
		Posts:    db.BlogPostRepo(),
		Tags:     db.TagRepo(),
		CV:       loadCV,
		Contact:  newDispatcher(appConfig),
		Limiter:  limiter,
		Pages:    renderer,
		Health:   db,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	errChannel := make(chan error, 3)

	if watchContent {
		importer := content.NewImporter(appConfig.ContentDir, db.BlogPostRepo())
		go func() {
			if err := importer.Watch(ctx); err != nil {
				errChannel <- fmt.Errorf("content watcher: %w", err)
			}
		}()
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(ctx, errChannel)

	fatalErr := <-errChannel
	log.Info().Msgf("Closing server: %v", fatalErr)

	cancel()
	server.ShutdownGracefully(appConfig.ShutdownTimeout)
	return nil
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(ctx context.Context, errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(c)

	select {
	case sig := <-c:
		errChannel <- fmt.Errorf("%s", sig)
	case <-ctx.Done():
		errChannel <- ctx.Err()
	}
}

// loadSite reads the site config, resolving ssm: values through AWS only
// when the file uses them.
func loadSite(ctx context.Context, path string) (*config.SiteConfig, error) {
	var secrets config.SecretResolver
	if config.UsesSecrets(path) {
		resolver, err := config.NewSSMResolver(ctx)
		if err != nil {
			return nil, err
		}
		secrets = resolver
	}
	return config.LoadSite(ctx, path, secrets)
}

func openDatabase(ctx context.Context) (database.Database, error) {
	gormDB, err := database.Open(ctx, appConfig.DatabaseURL, appConfig.DatabaseReplicaURLs)
	if err != nil {
		return database.Database{}, err
	}
	return database.New(gormDB), nil
}

// newLimiter uses Redis when REDIS_URL is set and reachable, in-process buckets otherwise
func newLimiter(ctx context.Context) (ratelimit.Limiter, func()) {
	rate, burst := appConfig.ContactRatePerMinute, appConfig.ContactBurst
	if appConfig.RedisURL == "" {
		return ratelimit.NewLocalLimiter(rate, burst), func() {}
	}

	client, err := ratelimit.NewRedisClient(ctx, appConfig.RedisURL)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, rate limiting the contact form in process")
		return ratelimit.NewLocalLimiter(rate, burst), func() {}
	}
	return ratelimit.NewRedisLimiter(client, rate, burst), func() {
		if err := client.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close Redis client")
		}
	}
}

// newDispatcher wires the contact channels whose credentials are present
func newDispatcher(cfg *config.Config) *services.Dispatcher {
	dispatcher := services.NewDispatcher(
		services.NewResendSender(cfg.Resend, cfg.OwnerEmail),
		services.NewTwilioNotifier(cfg.Twilio),
	)
	if len(dispatcher.Channels()) == 0 {
		log.Warn().Msg("No contact channel configured, POST /contact will answer 503")
	} else {
		log.Info().Strs("channels", dispatcher.Channels()).Msg("Contact delivery enabled")
	}
	return dispatcher
}

func siteTitle(cv *models.CV) string {
	if cv == nil || cv.Profile.Name == "" {
		return defaultSiteTitle
	}
	return cv.Profile.Name
}

// footerData builds the footer from the owner's email and the CV profile links
func footerData(cfg *config.Config, cv *models.CV, now time.Time) views.FooterData {
	var data views.FooterData
	if cfg.OwnerEmail != "" {
		data.Contact = append(data.Contact, views.FooterLink{Label: "Email", URL: "mailto:" + cfg.OwnerEmail})
	}

	if cv != nil {
		labels := make([]string, 0, len(cv.Profile.Links))
		for label := range cv.Profile.Links {
			labels = append(labels, label)
		}
		sort.Strings(labels)
		for _, label := range labels {
			data.Elsewhere = append(data.Elsewhere, views.FooterLink{Label: label, URL: cv.Profile.Links[label]})
		}
	}

	data.Site = []views.FooterLink{
		{Label: "Home", URL: "/"},
		{Label: "CV", URL: "/cv"},
	}
	data.Copyright = fmt.Sprintf("© %d %s", now.Year(), siteTitle(cv))
	return data
}
