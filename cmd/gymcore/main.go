package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dropDatabas3/gymcore/internal/app"
	"github.com/dropDatabas3/gymcore/internal/bootstrap"
	"github.com/dropDatabas3/gymcore/internal/config"
	httpserver "github.com/dropDatabas3/gymcore/internal/http"
	"github.com/dropDatabas3/gymcore/internal/observability/logger"
)

// version se setea con -ldflags "-X main.version=..."
var version = "dev"

const defaultConfig = "configs/gymcore.yaml"

func main() {
	var configPath string

	root := &cobra.Command{
		Use:           "gymcore",
		Short:         "API multi-tenant de gestión de gimnasios",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "ruta al YAML (default "+defaultConfig+" si existe)")

	load := func() (*config.Config, error) {
		path := configPath
		if path == "" && fileExists(defaultConfig) {
			path = defaultConfig
		}
		cfg, err := config.Load(path)
		if err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		logger.Init(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, ServiceName: cfg.App.Name, Version: version})
		return cfg, nil
	}

	root.AddCommand(
		serveCmd(load),
		migrateCmd(load),
		seedCmd(load),
		keysCmd(),
	)

	err := root.ExecuteContext(context.Background())
	_ = logger.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

type loader func() (*config.Config, error)

func serveCmd(load loader) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Levanta la API HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := app.Build(ctx, cfg, app.Options{Version: version})
			if err != nil {
				return err
			}
			defer a.Close()

			if sa := cfg.Bootstrap.SuperAdmin; sa.Email != "" && sa.Password != "" {
				if _, _, err := bootstrap.SeedSuperAdmin(ctx, bootstrap.SuperAdminConfig{
					Users: a.Store.Users(), Email: sa.Email, Password: sa.Password, Name: sa.Name,
					Policy: app.Policy(cfg),
				}); err != nil {
					return err
				}
			}
			return httpserver.Serve(ctx, a.Server, a.Handler)
		},
	}
}

func seedCmd(load loader) *cobra.Command {
	var email, name string
	cmd := &cobra.Command{
		Use:   "seed-superadmin",
		Short: "Crea el super-admin (bootstrap.super_admin o interactivo)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			st, err := app.OpenStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			sa := cfg.Bootstrap.SuperAdmin
			if email != "" {
				sa.Email, sa.Password = email, ""
			}
			if name != "" {
				sa.Name = name
			}
			u, created, err := bootstrap.SeedSuperAdmin(ctx, bootstrap.SuperAdminConfig{
				Users: st.Users(), Email: sa.Email, Password: sa.Password, Name: sa.Name,
				Policy: app.Policy(cfg), Prompt: true,
			})
			if err != nil {
				return err
			}
			if created {
				fmt.Printf("super-admin created: %s (%s)\n", u.Email, u.ID)
			} else {
				fmt.Printf("super-admin already exists: %s (%s)\n", u.Email, u.ID)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email del super-admin (pide la password por terminal)")
	cmd.Flags().StringVar(&name, "name", "", "nombre del super-admin")
	return cmd
}

func fileExists(p string) bool {
	st, err := os.Stat(p)
	return err == nil && !st.IsDir()
}
