package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/autoventa/lead-intake/internal/api/router"
	"github.com/autoventa/lead-intake/internal/config"
	"github.com/autoventa/lead-intake/internal/leads"
	"github.com/autoventa/lead-intake/internal/notify"
	"github.com/autoventa/lead-intake/internal/observability/metrics"
	"github.com/autoventa/lead-intake/internal/ratelimit"
	"github.com/autoventa/lead-intake/pkg/logging"
)

// Runtime is the fully wired intake service: an HTTP handler plus the
// resources behind it.
type Runtime struct {
	Handler http.Handler
	Logger  *logging.Logger
	cleanup []func()
}

// Close releases pools, clients and background goroutines.
func (rt *Runtime) Close() {
	for i := len(rt.cleanup) - 1; i >= 0; i-- {
		rt.cleanup[i]()
	}
}

// New assembles the intake pipeline from configuration. Both the API
// server and the Lambda entrypoint build the same runtime.
func New(ctx context.Context, cfg *config.Config, logger *logging.Logger) (*Runtime, error) {
	if logger == nil {
		logger = logging.Default()
	}
	rt := &Runtime{Logger: logger}

	var repo leads.Repository
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("bootstrap: connect postgres: %w", err)
		}
		rt.cleanup = append(rt.cleanup, pool.Close)
		repo = leads.NewPostgresRepository(pool)
	} else {
		logger.Warn("DATABASE_URL not set, using in-memory lead store")
		repo = leads.NewInMemoryRepository()
	}

	var limiter leads.RateLimiter
	switch cfg.RateLimitBackend {
	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		rt.cleanup = append(rt.cleanup, func() { _ = rdb.Close() })
		limiter = ratelimit.NewRedisLimiter(rdb, cfg.RateLimitWindow, cfg.RateLimitMax, logger)
	default:
		sw := ratelimit.NewSlidingWindow(cfg.RateLimitWindow, cfg.RateLimitMax)
		rt.cleanup = append(rt.cleanup, sw.Stop)
		limiter = sw
	}

	sender, err := buildSender(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	mailer := notify.NewLeadMailer(sender, cfg.LeadsToEmail, logger)

	m := metrics.NewIntakeMetrics(prometheus.DefaultRegisterer)
	intake := leads.NewHandler(repo, limiter, mailer, m, logger, cfg.MaxBodyBytes)

	var origins []string
	if cfg.CORSAllowedOrigin != "" {
		origins = strings.Split(cfg.CORSAllowedOrigin, ",")
	}

	rt.Handler = router.New(&router.Config{
		Logger:             logger,
		Intake:             intake,
		MetricsHandler:     promhttp.Handler(),
		CORSAllowedOrigins: origins,
	})
	return rt, nil
}

// buildSender picks the email backend. A nil sender (with nil error)
// means email is not configured; sends then fail soft as emailSent:false.
func buildSender(ctx context.Context, cfg *config.Config, logger *logging.Logger) (notify.EmailSender, error) {
	switch cfg.EmailProvider {
	case "ses":
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
		if err != nil {
			return nil, fmt.Errorf("bootstrap: load AWS config: %w", err)
		}
		return notify.NewSESSender(sesv2.NewFromConfig(awsCfg), cfg.FromAddress(), logger), nil
	case "sendgrid":
		if cfg.SendGridAPIKey == "" {
			logger.Warn("SENDGRID_API_KEY not set, notifications disabled")
			return nil, nil
		}
		return notify.NewSendGridSender(notify.SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.LeadsFromEmail,
			FromName:  cfg.LeadsFromName,
		}, logger), nil
	case "stub":
		return notify.NewStubSender(logger), nil
	default:
		if cfg.ResendAPIKey == "" {
			logger.Warn("RESEND_API_KEY not set, notifications disabled")
			return nil, nil
		}
		return notify.NewResendSender(notify.ResendConfig{
			APIKey: cfg.ResendAPIKey,
			From:   cfg.FromAddress(),
		}, logger), nil
	}
}
