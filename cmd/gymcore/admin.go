package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dropDatabas3/gymcore/internal/app"
	jwtx "github.com/dropDatabas3/gymcore/internal/jwt"
)

func migrateCmd(load loader) *cobra.Command {
	var steps int
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migraciones de PostgreSQL",
	}
	run := func(up bool) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			// las migraciones se aplican acá, no al abrir
			cfg.Storage.AutoMigrate = false
			st, err := app.OpenStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			versions, err := app.Migrate(cmd.Context(), st, up, steps)
			if err != nil {
				return err
			}
			verb := "applied"
			if !up {
				verb = "reverted"
			}
			if len(versions) == 0 {
				fmt.Println("nothing to do")
				return nil
			}
			for _, v := range versions {
				fmt.Printf("%s %04d\n", verb, v)
			}
			return nil
		}
	}
	up := &cobra.Command{Use: "up", Short: "Aplica las migraciones pendientes", RunE: run(true)}
	down := &cobra.Command{Use: "down", Short: "Revierte migraciones (default la última)", RunE: run(false)}
	cmd.PersistentFlags().IntVar(&steps, "steps", 0, "cantidad de migraciones (0 = todas en up, una en down)")
	cmd.AddCommand(up, down)
	return cmd
}

func keysCmd() *cobra.Command {
	var out string
	var force bool
	cmd := &cobra.Command{Use: "keys", Short: "Claves de firma de los access tokens"}
	gen := &cobra.Command{
		Use:   "generate",
		Short: "Genera una clave Ed25519 (PEM PKCS#8) para jwt.key_file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(out); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", out)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return err
			}
			ks, err := jwtx.NewEd25519()
			if err != nil {
				return err
			}
			if err := ks.WriteKeyFile(out); err != nil {
				return err
			}
			fmt.Printf("wrote %s (kid=%s)\n", out, ks.KID)
			return nil
		},
	}
	gen.Flags().StringVarP(&out, "out", "o", "data/keys/jwt_ed25519.pem", "archivo de salida")
	gen.Flags().BoolVar(&force, "force", false, "sobrescribir si existe")
	cmd.AddCommand(gen)
	return cmd
}
