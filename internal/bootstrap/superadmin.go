// Package bootstrap crea el super-admin inicial.
package bootstrap

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/dropDatabas3/gymcore/internal/domain/repository"
	"github.com/dropDatabas3/gymcore/internal/observability/logger"
	"github.com/dropDatabas3/gymcore/internal/security/password"
)

// SuperAdminConfig configura el seed. Si falta Email o Password y Prompt está
// activo se piden por terminal (la password sin eco).
type SuperAdminConfig struct {
	Users    repository.UserRepository
	Email    string
	Password string
	Name     string
	Policy   password.Policy
	Hash     password.Params

	Prompt bool
	In     io.Reader
	Out    io.Writer
}

// ErrNotSuperAdmin: el email ya pertenece a un usuario con otro rol.
var ErrNotSuperAdmin = errors.New("bootstrap: email belongs to a non super-admin user")

// SeedSuperAdmin crea el super-admin si no existe. Es idempotente: si el email
// ya es SUPERADMIN retorna ese usuario y created=false.
func SeedSuperAdmin(ctx context.Context, cfg SuperAdminConfig) (u *repository.User, created bool, err error) {
	if cfg.In == nil {
		cfg.In = os.Stdin
	}
	if cfg.Out == nil {
		cfg.Out = os.Stdout
	}
	if cfg.Hash.KeyLen == 0 {
		cfg.Hash = password.Default
	}
	if cfg.Name == "" {
		cfg.Name = "Super Admin"
	}
	log := logger.L().With(logger.Component("bootstrap"))

	if (cfg.Email == "" || cfg.Password == "") && cfg.Prompt {
		if err := prompt(&cfg); err != nil {
			return nil, false, err
		}
	}
	cfg.Email = strings.ToLower(strings.TrimSpace(cfg.Email))
	if cfg.Email == "" || cfg.Password == "" {
		return nil, false, errors.New("bootstrap: super-admin email and password are required")
	}

	existing, err := cfg.Users.GetByEmail(ctx, cfg.Email)
	switch {
	case err == nil:
		if existing.Role != repository.RoleSuperAdmin {
			return nil, false, ErrNotSuperAdmin
		}
		log.Info("super-admin already present", logger.UserID(existing.ID))
		return existing, false, nil
	case !errors.Is(err, repository.ErrNotFound):
		return nil, false, fmt.Errorf("bootstrap: lookup: %w", err)
	}

	if reasons := cfg.Policy.Validate(cfg.Password); len(reasons) > 0 {
		return nil, false, fmt.Errorf("bootstrap: weak password: %s", strings.Join(reasons, ", "))
	}
	hash, err := password.Hash(cfg.Hash, cfg.Password)
	if err != nil {
		return nil, false, fmt.Errorf("bootstrap: hash: %w", err)
	}
	u, err = cfg.Users.Create(ctx, repository.User{
		Name:          cfg.Name,
		Email:         cfg.Email,
		PasswordHash:  hash,
		Role:          repository.RoleSuperAdmin,
		EmailVerified: true,
	})
	if err != nil {
		return nil, false, fmt.Errorf("bootstrap: create: %w", err)
	}
	log.Info("super-admin created", logger.UserID(u.ID), logger.Email(u.Email))
	return u, true, nil
}

func prompt(cfg *SuperAdminConfig) error {
	r := bufio.NewReader(cfg.In)
	if cfg.Email == "" {
		fmt.Fprint(cfg.Out, "Super-admin email: ")
		line, err := r.ReadString('\n')
		if err != nil && line == "" {
			return fmt.Errorf("bootstrap: read email: %w", err)
		}
		cfg.Email = strings.TrimSpace(line)
	}
	if cfg.Password != "" {
		return nil
	}
	fmt.Fprint(cfg.Out, "Super-admin password: ")
	pw, err := readSecret(cfg.In, r)
	if err != nil {
		return err
	}
	fmt.Fprint(cfg.Out, "Confirm password: ")
	confirm, err := readSecret(cfg.In, r)
	if err != nil {
		return err
	}
	if pw != confirm {
		return errors.New("bootstrap: passwords do not match")
	}
	cfg.Password = pw
	return nil
}

// readSecret lee sin eco si in es una terminal; si no, una línea.
func readSecret(in io.Reader, r *bufio.Reader) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Println()
		if err != nil {
			return "", fmt.Errorf("bootstrap: read password: %w", err)
		}
		return string(b), nil
	}
	line, err := r.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("bootstrap: read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
