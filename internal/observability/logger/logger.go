// Package logger expone un logger zap de proceso con scoping por request.
//
// Uso típico:
//
//	logger.Init(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, ServiceName: "gymcore"})
//	defer logger.Sync()
//
//	log := logger.From(ctx).With(logger.Layer("service"), logger.Op("Create"))
//	log.Info("member created", logger.MemberID(m.ID))
package logger

import (
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config configura el logger.
type Config struct {
	// Env: "dev" (consola con colores) o "prod" (JSON). Default dev.
	Env string
	// Level: debug, info, warn, error. Default info.
	Level       string
	ServiceName string
	Version     string
}

var (
	mu       sync.RWMutex
	instance *zap.Logger
)

// Init construye el logger del proceso. Llamadas posteriores lo reemplazan,
// lo que permite a los tests instalar un logger propio.
func Init(cfg Config) {
	l := build(cfg)
	mu.Lock()
	instance = l
	mu.Unlock()
}

// Set instala un logger ya construido (ej: zaptest o zap.NewNop en tests).
func Set(l *zap.Logger) {
	if l == nil {
		return
	}
	mu.Lock()
	instance = l
	mu.Unlock()
}

// L retorna el logger del proceso. Sin Init previo arranca en modo dev/info.
func L() *zap.Logger {
	mu.RLock()
	l := instance
	mu.RUnlock()
	if l != nil {
		return l
	}
	Init(Config{Env: "dev", Level: "info"})
	mu.RLock()
	defer mu.RUnlock()
	return instance
}

// Named retorna un logger hijo con nombre de componente.
func Named(name string) *zap.Logger { return L().Named(name) }

// Sync flushea buffers pendientes.
func Sync() error {
	mu.RLock()
	l := instance
	mu.RUnlock()
	if l == nil {
		return nil
	}
	return l.Sync()
}

func build(cfg Config) *zap.Logger {
	level := zap.NewAtomicLevelAt(parseLevel(cfg.Level))

	var zcfg zap.Config
	var opts []zap.Option
	if strings.EqualFold(cfg.Env, "prod") || strings.EqualFold(cfg.Env, "production") {
		zcfg = zap.NewProductionConfig()
		zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		opts = append(opts, zap.AddStacktrace(zapcore.ErrorLevel))
	} else {
		zcfg = zap.NewDevelopmentConfig()
		zcfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zcfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
		zcfg.DisableStacktrace = true
	}
	zcfg.Level = level
	zcfg.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
	opts = append(opts, zap.AddCaller())

	l, err := zcfg.Build(opts...)
	if err != nil {
		l, _ = zap.NewProduction()
	}

	var base []zap.Field
	if cfg.ServiceName != "" {
		base = append(base, zap.String("service", cfg.ServiceName))
	}
	if cfg.Version != "" {
		base = append(base, zap.String("version", cfg.Version))
	}
	if len(base) > 0 {
		l = l.With(base...)
	}
	return l
}

func parseLevel(lvl string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(lvl)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
