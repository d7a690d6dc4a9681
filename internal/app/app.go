// Package app arma el proceso: abre los recursos compartidos (store, redis,
// uploader, mailer, claves), construye services, controllers y router, y los
// libera en Close después del drenado del server.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	rdb "github.com/redis/go-redis/v9"

	"github.com/dropDatabas3/gymcore/internal/config"
	"github.com/dropDatabas3/gymcore/internal/domain/repository"
	"github.com/dropDatabas3/gymcore/internal/email"
	httpserver "github.com/dropDatabas3/gymcore/internal/http"
	authctl "github.com/dropDatabas3/gymcore/internal/http/controllers/auth"
	gymctl "github.com/dropDatabas3/gymcore/internal/http/controllers/gym"
	healthctl "github.com/dropDatabas3/gymcore/internal/http/controllers/health"
	superctl "github.com/dropDatabas3/gymcore/internal/http/controllers/superadmin"
	mw "github.com/dropDatabas3/gymcore/internal/http/middlewares"
	"github.com/dropDatabas3/gymcore/internal/http/router"
	authsvc "github.com/dropDatabas3/gymcore/internal/http/services/auth"
	gymsvc "github.com/dropDatabas3/gymcore/internal/http/services/gym"
	supersvc "github.com/dropDatabas3/gymcore/internal/http/services/superadmin"
	jwtx "github.com/dropDatabas3/gymcore/internal/jwt"
	"github.com/dropDatabas3/gymcore/internal/metrics"
	"github.com/dropDatabas3/gymcore/internal/objectstore"
	"github.com/dropDatabas3/gymcore/internal/observability/logger"
	"github.com/dropDatabas3/gymcore/internal/rate"
	"github.com/dropDatabas3/gymcore/internal/security/password"
	"github.com/dropDatabas3/gymcore/internal/store"
	"github.com/dropDatabas3/gymcore/internal/store/pg"

	// registra el adapter memory
	_ "github.com/dropDatabas3/gymcore/internal/store/memory"
	migrations "github.com/dropDatabas3/gymcore/migrations/postgres"
)

// App es el proceso armado.
type App struct {
	Handler http.Handler
	Store   repository.Store
	Server  httpserver.ServerConfig

	closers []func()
}

// Options permite reemplazar piezas en tests.
type Options struct {
	Version string
	// Registerer default: prometheus.DefaultRegisterer.
	Registerer prometheus.Registerer
	// Mail reemplaza el sender configurado.
	Mail email.Sender
}

// Build abre los recursos y arma el handler. Ante error libera lo ya abierto.
func Build(ctx context.Context, cfg *config.Config, opts Options) (a *App, err error) {
	a = &App{
		Server: httpserver.ServerConfig{
			Addr:            cfg.Server.Addr,
			ReadTimeout:     config.Duration(cfg.Server.ReadTimeout),
			WriteTimeout:    config.Duration(cfg.Server.WriteTimeout),
			ShutdownTimeout: config.Duration(cfg.Server.ShutdownTimeout),
		},
	}
	defer func() {
		if err != nil {
			a.Close()
			a = nil
		}
	}()
	log := logger.L().With(logger.Component("app"))

	// 1. Recursos
	st, err := OpenStore(ctx, cfg)
	if err != nil {
		return a, err
	}
	a.Store = st
	a.closers = append(a.closers, st.Close)

	reg := opts.Registerer
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if err := metrics.Register(reg); err != nil {
		return a, fmt.Errorf("metrics: %w", err)
	}
	if p, ok := st.(interface{ Pool() *pgxpool.Pool }); ok {
		if err := metrics.RegisterPool(reg, p.Pool()); err != nil {
			return a, fmt.Errorf("metrics: %w", err)
		}
	}

	checks := map[string]healthctl.Check{"store": st.Ping}

	var redis *rdb.Client
	if cfg.Cache.Kind == "redis" {
		redis = rdb.NewClient(&rdb.Options{
			Addr:     cfg.Cache.Redis.Addr,
			DB:       cfg.Cache.Redis.DB,
			Password: cfg.Cache.Redis.Password,
		})
		a.closers = append(a.closers, func() { _ = redis.Close() })
		if err := redis.Ping(ctx).Err(); err != nil {
			return a, fmt.Errorf("redis: ping %s: %w", cfg.Cache.Redis.Addr, err)
		}
		checks["redis"] = func(ctx context.Context) error { return redis.Ping(ctx).Err() }
	}

	var limiter rate.Limiter
	if cfg.Rate.Enabled {
		window := config.Duration(cfg.Rate.Window)
		if redis != nil {
			limiter = rate.NewRedisLimiter(redis, cfg.Cache.Redis.Prefix+"rl:", cfg.Rate.MaxRequests, window)
		} else {
			limiter = rate.NewMemoryLimiter(cfg.Rate.MaxRequests, window)
		}
	}

	uploader, err := objectstore.New(ctx, objectstore.Config{
		Driver:     cfg.Uploads.Driver,
		Dir:        cfg.Uploads.Dir,
		PublicBase: cfg.Uploads.PublicBase,
		S3: objectstore.S3Config{
			Bucket:     cfg.Uploads.S3.Bucket,
			Region:     cfg.Uploads.S3.Region,
			Endpoint:   cfg.Uploads.S3.Endpoint,
			AccessKey:  cfg.Uploads.S3.AccessKey,
			SecretKey:  cfg.Uploads.S3.SecretKey,
			PathStyle:  cfg.Uploads.S3.PathStyle,
			PublicBase: cfg.Uploads.S3.PublicBase,
		},
	})
	if err != nil {
		return a, err
	}

	sender := opts.Mail
	if sender == nil {
		sender = mailSender(cfg)
	}
	mailer, err := email.NewMailer(sender)
	if err != nil {
		return a, err
	}

	keys, err := loadKeys(cfg)
	if err != nil {
		return a, err
	}
	issuer := jwtx.NewIssuer(cfg.JWT.Issuer, keys, config.Duration(cfg.JWT.AccessTTL))

	policy := Policy(cfg)
	tenants := mw.NewTenantResolver(st.Accounts(), config.Duration(cfg.Cache.TenantTTL))

	// 2. Services
	auth := authsvc.New(authsvc.Deps{
		Store:         st,
		Issuer:        issuer,
		Mailer:        mailer,
		RefreshTTL:    config.Duration(cfg.JWT.RefreshTTL),
		ResetTTL:      config.Duration(cfg.Auth.ResetTTL),
		VerifyTTL:     config.Duration(cfg.Auth.VerifyTTL),
		PublicBaseURL: cfg.Auth.PublicBaseURL,
		Policy:        policy,
	})
	accounts := supersvc.NewAccountService(supersvc.Deps{Store: st, Policy: policy, Tenants: tenants})
	gym := gymsvc.New(gymsvc.Deps{Store: st, Uploader: uploader, MaxUpload: cfg.Uploads.MaxBytes})

	// 3. Controllers y rutas
	deps := router.Deps{
		Auth:        authctl.NewController(auth),
		Accounts:    superctl.NewAccountsController(accounts),
		Gym:         gymctl.NewControllers(gym, cfg.Uploads.MaxBytes),
		Health:      healthctl.NewController(opts.Version, checks),
		Issuer:      issuer,
		Users:       st.Users(),
		Tenants:     tenants,
		Limiter:     limiter,
		RateMax:     cfg.Rate.MaxRequests,
		CORSOrigins: cfg.Server.CORSAllowedOrigins,
		Metrics:     metrics.Handler(),
	}
	if l, ok := uploader.(*objectstore.Local); ok {
		deps.Uploads = l.Handler()
	}
	a.Handler = router.New(deps)

	log.Info("app built",
		logger.String("storage", st.Driver()),
		logger.String("cache", cfg.Cache.Kind),
		logger.String("uploads", uploader.Name()),
		logger.Bool("rate_limit", limiter != nil))
	return a, nil
}

// Close libera los recursos en orden inverso. Llamar después de Shutdown.
func (a *App) Close() {
	if a == nil {
		return
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

// OpenStore abre el store configurado y, en postgres con auto_migrate, aplica
// las migraciones pendientes.
func OpenStore(ctx context.Context, cfg *config.Config) (repository.Store, error) {
	st, err := store.Open(ctx, store.Config{
		Driver:          cfg.Storage.Driver,
		DSN:             cfg.Storage.DSN,
		MaxConns:        cfg.Storage.Postgres.MaxConns,
		MinConns:        cfg.Storage.Postgres.MinConns,
		ConnMaxLifetime: config.Duration(cfg.Storage.Postgres.ConnMaxLifetime),
	})
	if err != nil {
		return nil, err
	}
	if cfg.Storage.AutoMigrate {
		if _, err := Migrate(ctx, st, true, 0); err != nil {
			st.Close()
			return nil, err
		}
	}
	return st, nil
}

// Migrate aplica (up) o revierte (down) steps migraciones. Solo postgres.
func Migrate(ctx context.Context, st repository.Store, up bool, steps int) ([]int, error) {
	p, ok := st.(*pg.Store)
	if !ok {
		return nil, errors.New("migrate: storage driver " + st.Driver() + " has no migrations")
	}
	m, err := pg.NewMigrator(p.Pool(), migrations.FS)
	if err != nil {
		return nil, err
	}
	if up {
		return m.Up(ctx, steps)
	}
	return m.Down(ctx, steps)
}

// Policy traduce security.password_policy.
func Policy(cfg *config.Config) password.Policy {
	pp := cfg.Security.PasswordPolicy
	return password.Policy{
		MinLength:     pp.MinLength,
		RequireLetter: true,
		RequireUpper:  pp.RequireUpper,
		RequireLower:  pp.RequireLower,
		RequireDigit:  pp.RequireDigit,
		RequireSymbol: pp.RequireSymbol,
	}
}

func mailSender(cfg *config.Config) email.Sender {
	if strings.TrimSpace(cfg.SMTP.Host) == "" {
		logger.L().Warn("smtp.host not set, emails will only be logged", logger.Component("app"))
		return email.LogSender{}
	}
	return email.NewSMTPSender(email.SMTPConfig{
		Host:               cfg.SMTP.Host,
		Port:               cfg.SMTP.Port,
		From:               cfg.SMTP.From,
		User:               cfg.SMTP.Username,
		Pass:               cfg.SMTP.Password,
		TLSMode:            cfg.SMTP.TLS,
		InsecureSkipVerify: cfg.SMTP.InsecureSkipVerify,
	})
}

func loadKeys(cfg *config.Config) (*jwtx.KeySet, error) {
	if cfg.JWT.KeyFile != "" {
		return jwtx.LoadKeyFile(cfg.JWT.KeyFile)
	}
	logger.L().Warn("jwt.key_file not set, using an ephemeral signing key", logger.Component("app"))
	return jwtx.NewEd25519()
}
