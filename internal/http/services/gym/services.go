// Package gym implementa las operaciones de las entidades del tenant. Todos
// los métodos reciben el accountID resuelto por el middleware de tenant y
// lo pasan a cada acceso al repositorio.
package gym

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/dropDatabas3/gymcore/internal/domain/repository"
	httperrors "github.com/dropDatabas3/gymcore/internal/http/errors"
	"github.com/dropDatabas3/gymcore/internal/metrics"
	"github.com/dropDatabas3/gymcore/internal/objectstore"
	"github.com/dropDatabas3/gymcore/internal/observability/logger"
)

type Deps struct {
	Store repository.Store
	// Uploader es opcional; sin él los creates/updates con imagen fallan.
	Uploader  objectstore.Uploader
	MaxUpload int64
	Now       func() time.Time
}

// Services agrupa los servicios del dominio gym.
type Services struct {
	Branches      BranchService
	Trainers      TrainerService
	Members       MemberService
	Plans         PlanService
	Categories    CategoryService
	Brands        BrandService
	Products      ProductService
	Subscriptions SubscriptionService
	Assignments   AssignmentService
	HealthReports HealthReportService
}

func New(d Deps) Services {
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.MaxUpload <= 0 {
		d.MaxUpload = objectstore.DefaultMaxBytes
	}
	dp := &d
	return Services{
		Branches:      &branchService{dp},
		Trainers:      &trainerService{dp},
		Members:       &memberService{dp},
		Plans:         &planService{dp},
		Categories:    &categoryService{dp},
		Brands:        &brandService{dp},
		Products:      &productService{dp},
		Subscriptions: &subscriptionService{dp},
		Assignments:   &assignmentService{dp},
		HealthReports: &healthReportService{dp},
	}
}

// Image es el archivo de un create/update multipart.
type Image struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

func (d *Deps) now() time.Time { return d.Now().UTC() }

// upload valida y sube img. Sin imagen retorna "".
func (d *Deps) upload(ctx context.Context, folder string, img *Image) (string, error) {
	if img == nil {
		return "", nil
	}
	if err := objectstore.ValidateImage(img.Filename, img.ContentType, img.Size, d.MaxUpload); err != nil {
		return "", err
	}
	if d.Uploader == nil {
		return "", httperrors.ErrUploadFailed.WithDetail("uploads are not configured")
	}
	url, err := d.Uploader.Upload(ctx, folder, img.Filename, img.ContentType, img.Body)
	if err != nil {
		metrics.UploadsTotal.WithLabelValues(folder, "failed").Inc()
		return "", httperrors.ErrUploadFailed.WithCause(err)
	}
	metrics.UploadsTotal.WithLabelValues(folder, "ok").Inc()
	return url, nil
}

// discard borra un objeto subido cuya escritura en la base falló, o la
// imagen anterior reemplazada por un update.
func (d *Deps) discard(ctx context.Context, folder, url string, rollback bool) {
	if url == "" || d.Uploader == nil {
		return
	}
	// la request pudo haberse cancelado; el borrado no depende de ella
	dctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()
	if err := d.Uploader.Delete(dctx, url); err != nil {
		logger.From(ctx).Warn("uploaded object not deleted",
			logger.Layer("service"), logger.Component("gym.uploads"), logger.String("url", url), logger.Err(err))
	}
	if rollback {
		metrics.UploadsTotal.WithLabelValues(folder, "rolled_back").Inc()
	}
}

// withImage sube img, corre write y compensa el upload si write falla. Si
// write tiene éxito y reemplazó previous, borra la imagen anterior.
func withImage[T any](ctx context.Context, d *Deps, folder string, img *Image, previous string, write func(url string) (T, error)) (T, error) {
	var zero T
	url, err := d.upload(ctx, folder, img)
	if err != nil {
		return zero, err
	}
	out, err := write(url)
	if err != nil {
		d.discard(ctx, folder, url, true)
		return zero, err
	}
	if url != "" && previous != "" && previous != url {
		d.discard(ctx, folder, previous, false)
	}
	return out, nil
}

// notFound traduce ErrNotFound de una referencia a un 404 con detalle.
func notFound(err error, what string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return httperrors.ErrNotFound.WithDetail(what + " not found").WithCause(err)
	}
	return err
}

func taken(field string) error {
	return httperrors.ErrAlreadyExists.WithDetail(field + " already in use")
}

// conflictOn convierte el resultado de un Exists* en Conflict sobre field.
func conflictOn(field string) func(bool, error) error {
	return func(exists bool, err error) error {
		if err != nil {
			return err
		}
		if exists {
			return taken(field)
		}
		return nil
	}
}

func statusOr(s string) repository.Status {
	if s == "" {
		return repository.StatusActive
	}
	return repository.Status(s)
}

func trim(s string) string { return strings.TrimSpace(s) }

func setStr(dst *string, v *string) {
	if v != nil {
		*dst = trim(*v)
	}
}

func svcLog(ctx context.Context, component, op string) *zap.Logger {
	return logger.From(ctx).With(logger.Layer("service"), logger.Component(component), logger.Op(op))
}
