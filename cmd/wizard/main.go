// Command wizard serves the demo application wizard.
//
// Sessions are kept in memory unless SESSION_STORE selects redis or
// postgres. With DATABASE_URL set, completed steps are queued as jobs and
// expired sessions are cleaned up on a schedule.
package main

import (
	"context"
	"embed"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/formwizard"
	"github.com/dmitrymomot/formwizard/middlewares"
	"github.com/dmitrymomot/formwizard/pkg/cookie"
	"github.com/dmitrymomot/formwizard/pkg/db"
	"github.com/dmitrymomot/formwizard/pkg/i18n"
	"github.com/dmitrymomot/formwizard/pkg/job"
	"github.com/dmitrymomot/formwizard/pkg/logger"
	"github.com/dmitrymomot/formwizard/pkg/redis"
	"github.com/dmitrymomot/formwizard/pkg/session"
	"github.com/dmitrymomot/formwizard/pkg/view"
)

//go:embed apply.yaml
var wizardFS embed.FS

//go:embed locales/*.yaml
var localesFS embed.FS

//go:embed views/*.html
var viewsFS embed.FS

func main() {
	if err := run(context.Background()); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := loadConfig(os.Getenv)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.NewWithSentry(cfg.Log, cfg.Sentry,
		logger.RequestIDExtractor(),
		logger.WizardExtractor(),
		logger.StepExtractor(),
	)

	var (
		pool        *pgxpool.Pool
		redisClient goredis.UniversalClient
	)
	if cfg.DB != nil {
		if pool, err = db.Connect(ctx, *cfg.DB); err != nil {
			return err
		}
	}
	if cfg.Redis != nil {
		if redisClient, err = redis.Open(ctx, *cfg.Redis); err != nil {
			return err
		}
	}

	store, err := sessionStore(ctx, cfg, pool, redisClient, log)
	if err != nil {
		return err
	}

	cookies, err := cookie.NewFromConfig(cfg.Cookie)
	if err != nil {
		return err
	}

	bundle, err := translations(cfg.DefaultLanguage, log)
	if err != nil {
		return err
	}

	views, err := view.New(
		view.WithFS(viewsFS, "views/*.html"),
		view.WithFallback("step"),
	)
	if err != nil {
		return err
	}

	wizardCfg, err := formwizard.LoadWizard(wizardFS, "apply.yaml")
	if err != nil {
		return err
	}
	wizard, err := formwizard.NewWizard(wizardCfg,
		formwizard.WithControllerOptions(formwizard.WithRenderer(views)),
	)
	if err != nil {
		return err
	}

	checks := []formwizard.HealthOption{}
	opts := []formwizard.Option{
		formwizard.WithCustomLogger(log),
		formwizard.WithCookieManager(cookies),
		formwizard.WithSession(store, cfg.Session.Options()...),
		formwizard.WithHTTPMiddleware(middleware.RequestID, middleware.RealIP),
		formwizard.WithMiddleware(
			middlewares.Recover(),
			middlewares.I18n(bundle, middlewares.WithI18nPersist()),
		),
		formwizard.WithHandlers(wizard, restartHandler{wizard: wizard}),
	}

	runOpts := []formwizard.RunOption{
		formwizard.Logger(log),
		formwizard.ShutdownTimeout(cfg.Server.ShutdownTimeout),
	}

	if pool != nil {
		jobs, err := jobManager(ctx, cfg, pool, store, log)
		if err != nil {
			return err
		}
		opts = append(opts, formwizard.WithJobManager(jobs))
		checks = append(checks,
			formwizard.WithReadinessCheck("postgres", db.Healthcheck(pool)),
			formwizard.WithReadinessCheck("jobs", job.Healthcheck(jobs)),
		)
	}
	if redisClient != nil {
		checks = append(checks, formwizard.WithReadinessCheck("redis", redis.Healthcheck(redisClient)))
	}
	opts = append(opts, formwizard.WithHealthChecks(checks...))

	if closer, ok := store.(io.Closer); ok {
		runOpts = append(runOpts, formwizard.ShutdownHook(func(context.Context) error {
			return closer.Close()
		}))
	}
	if redisClient != nil {
		runOpts = append(runOpts, formwizard.ShutdownHook(redis.Shutdown(redisClient)))
	}
	if pool != nil {
		runOpts = append(runOpts, formwizard.ShutdownHook(db.Shutdown(pool)))
	}

	app := formwizard.New(opts...)
	return app.Run(cfg.Server.Address, runOpts...)
}

func sessionStore(ctx context.Context, cfg config, pool *pgxpool.Pool, client goredis.UniversalClient, log *slog.Logger) (session.Store, error) {
	switch cfg.Session.Store {
	case storeMemory:
		return session.NewMemoryStore(), nil
	case storeRedis:
		return session.NewRedisStore(client), nil
	case storePostgres:
		if err := db.Migrate(ctx, pool, session.Migrations(), cfg.DB.MigrationsTable, log); err != nil {
			return nil, err
		}
		return session.NewPostgresStore(pool), nil
	default:
		return nil, fmt.Errorf("unknown session store %q", cfg.Session.Store)
	}
}

func translations(defaultLang string, log *slog.Logger) (*i18n.Bundle, error) {
	locales, err := fs.Sub(localesFS, "locales")
	if err != nil {
		return nil, err
	}
	return i18n.New(
		i18n.WithDefaultLanguage(defaultLang),
		i18n.WithYAMLDir(locales),
		i18n.WithMissingKeyHandler(func(lang, key string) {
			log.Debug("missing translation", "lang", lang, "key", key)
		}),
	)
}

func jobManager(ctx context.Context, cfg config, pool *pgxpool.Pool, store session.Store, log *slog.Logger) (*job.Manager, error) {
	if err := job.Migrate(ctx, pool, log); err != nil {
		return nil, err
	}

	opts := []job.Option{
		job.WithLogger(log),
		job.WithTask[job.Completion](job.NewCompletionTask(func(ctx context.Context, c job.Completion) error {
			log.InfoContext(ctx, "wizard step completed",
				"wizard", c.Wizard,
				"step", c.Step,
				"fields", len(c.Values),
			)
			return nil
		})),
	}
	if cleaner, ok := store.(session.Cleaner); ok {
		opts = append(opts, job.WithScheduledTask(job.NewSessionCleanup(cleaner, cfg.CleanupSchedule, log)))
	}
	return job.NewManager(pool, opts...)
}

// restartHandler forgets the answers and sends the visitor to the first step.
type restartHandler struct {
	wizard *formwizard.Wizard
}

func (h restartHandler) Routes(r formwizard.Router) {
	r.GET("/restart", h.restart)
}

func (h restartHandler) restart(c formwizard.Context) error {
	if err := h.wizard.Store().Reset(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, h.wizard.BaseURL()+"/name")
}
