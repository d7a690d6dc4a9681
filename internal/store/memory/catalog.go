package memory

import (
	"context"
	"time"

	"github.com/dropDatabas3/gymcore/internal/domain/repository"
)

// ─── categories ───

type categoryRepo struct{ d *db }

func categoryAccount(c repository.ProductCategory) string { return c.AccountID }
func categoryID(c repository.ProductCategory) string { return c.ID }
func categoryCreated(c repository.ProductCategory) time.Time { return c.CreatedAt }

func (r categoryRepo) nameTaken(accountID, name, exceptID string) bool {
	return exists(r.d.st.categories, accountID, exceptID, categoryAccount, categoryID, func(x repository.ProductCategory) bool {
		return fold(x.ProductName, name)
	})
}

func (r categoryRepo) Create(ctx context.Context, c repository.ProductCategory) (*repository.ProductCategory, error) {
	defer r.d.lock()()
	st := r.d.st
	if r.nameTaken(c.AccountID, c.ProductName, c.ID) {
		return nil, repository.ErrConflict
	}
	st.stamp(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	st.categories[c.ID] = detach(c)
	return &c, nil
}

func (r categoryRepo) GetByID(ctx context.Context, accountID, id string) (*repository.ProductCategory, error) {
	defer r.d.lock()()
	c, ok := get(r.d.st.categories, accountID, id, categoryAccount)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (r categoryRepo) List(ctx context.Context, accountID string) ([]repository.ProductCategory, error) {
	defer r.d.lock()()
	return scoped(r.d.st.categories, accountID, categoryAccount, categoryCreated), nil
}

func (r categoryRepo) Update(ctx context.Context, accountID string, c repository.ProductCategory) (*repository.ProductCategory, error) {
	defer r.d.lock()()
	st := r.d.st
	cur, ok := get(st.categories, accountID, c.ID, categoryAccount)
	if !ok {
		return nil, repository.ErrNotFound
	}
	if r.nameTaken(accountID, c.ProductName, c.ID) {
		return nil, repository.ErrConflict
	}
	c.AccountID, c.UserID, c.CreatedAt = cur.AccountID, cur.UserID, cur.CreatedAt
	c.UpdatedAt = st.now()
	st.categories[c.ID] = detach(c)
	return &c, nil
}

func (r categoryRepo) Delete(ctx context.Context, accountID, id string) error {
	defer r.d.lock()()
	if _, ok := get(r.d.st.categories, accountID, id, categoryAccount); !ok {
		return repository.ErrNotFound
	}
	delete(r.d.st.categories, id)
	return nil
}

func (r categoryRepo) ExistsName(ctx context.Context, accountID, name, exceptID string) (bool, error) {
	defer r.d.lock()()
	return r.nameTaken(accountID, name, exceptID), nil
}

// ─── brands ───

type brandRepo struct{ d *db }

func brandAccount(b repository.Brand) string { return b.AccountID }
func brandID(b repository.Brand) string { return b.ID }
func brandCreated(b repository.Brand) time.Time { return b.CreatedAt }

func (r brandRepo) nameTaken(accountID, name, exceptID string) bool {
	return exists(r.d.st.brands, accountID, exceptID, brandAccount, brandID, func(x repository.Brand) bool {
		return fold(x.BrandName, name)
	})
}

func (r brandRepo) Create(ctx context.Context, b repository.Brand) (*repository.Brand, error) {
	defer r.d.lock()()
	st := r.d.st
	if r.nameTaken(b.AccountID, b.BrandName, b.ID) {
		return nil, repository.ErrConflict
	}
	st.stamp(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	st.brands[b.ID] = detach(b)
	return &b, nil
}

func (r brandRepo) GetByID(ctx context.Context, accountID, id string) (*repository.Brand, error) {
	defer r.d.lock()()
	b, ok := get(r.d.st.brands, accountID, id, brandAccount)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &b, nil
}

func (r brandRepo) List(ctx context.Context, accountID string) ([]repository.Brand, error) {
	defer r.d.lock()()
	return scoped(r.d.st.brands, accountID, brandAccount, brandCreated), nil
}

func (r brandRepo) Update(ctx context.Context, accountID string, b repository.Brand) (*repository.Brand, error) {
	defer r.d.lock()()
	st := r.d.st
	cur, ok := get(st.brands, accountID, b.ID, brandAccount)
	if !ok {
		return nil, repository.ErrNotFound
	}
	if r.nameTaken(accountID, b.BrandName, b.ID) {
		return nil, repository.ErrConflict
	}
	b.AccountID, b.UserID, b.CreatedAt = cur.AccountID, cur.UserID, cur.CreatedAt
	b.UpdatedAt = st.now()
	st.brands[b.ID] = detach(b)
	return &b, nil
}

func (r brandRepo) Delete(ctx context.Context, accountID, id string) error {
	defer r.d.lock()()
	if _, ok := get(r.d.st.brands, accountID, id, brandAccount); !ok {
		return repository.ErrNotFound
	}
	delete(r.d.st.brands, id)
	return nil
}

func (r brandRepo) ExistsName(ctx context.Context, accountID, name, exceptID string) (bool, error) {
	defer r.d.lock()()
	return r.nameTaken(accountID, name, exceptID), nil
}

// ─── products ───

type productRepo struct{ d *db }

func productAccount(p repository.Product) string { return p.AccountID }
func productID(p repository.Product) string { return p.ID }
func productCreated(p repository.Product) time.Time { return p.CreatedAt }

func (r productRepo) taken(accountID, name, slug, exceptID string) bool {
	return exists(r.d.st.products, accountID, exceptID, productAccount, productID, func(x repository.Product) bool {
		return fold(x.ProductName, name) || x.Slug == slug
	})
}

// populate completa Category y Brand desde el mismo tenant.
func (r productRepo) populate(p repository.Product) repository.Product {
	st := r.d.st
	if c, ok := get(st.categories, p.AccountID, p.ProductCategoryID, categoryAccount); ok {
		p.Category = &repository.CategoryRef{ID: c.ID, ProductName: c.ProductName}
	}
	if b, ok := get(st.brands, p.AccountID, p.BrandID, brandAccount); ok {
		p.Brand = &repository.BrandRef{ID: b.ID, BrandName: b.BrandName}
	}
	return p
}

func (r productRepo) Create(ctx context.Context, p repository.Product) (*repository.Product, error) {
	defer r.d.lock()()
	st := r.d.st
	if r.taken(p.AccountID, p.ProductName, p.Slug, p.ID) {
		return nil, repository.ErrConflict
	}
	p.Category, p.Brand = nil, nil
	st.stamp(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	st.products[p.ID] = detach(p)
	out := r.populate(p)
	return &out, nil
}

func (r productRepo) GetByID(ctx context.Context, accountID, id string) (*repository.Product, error) {
	defer r.d.lock()()
	p, ok := get(r.d.st.products, accountID, id, productAccount)
	if !ok {
		return nil, repository.ErrNotFound
	}
	p = r.populate(p)
	return &p, nil
}

func (r productRepo) List(ctx context.Context, accountID string) ([]repository.Product, error) {
	defer r.d.lock()()
	out := scoped(r.d.st.products, accountID, productAccount, productCreated)
	for i := range out {
		out[i] = r.populate(out[i])
	}
	return out, nil
}

func (r productRepo) Update(ctx context.Context, accountID string, p repository.Product) (*repository.Product, error) {
	defer r.d.lock()()
	st := r.d.st
	cur, ok := get(st.products, accountID, p.ID, productAccount)
	if !ok {
		return nil, repository.ErrNotFound
	}
	if r.taken(accountID, p.ProductName, p.Slug, p.ID) {
		return nil, repository.ErrConflict
	}
	p.Category, p.Brand = nil, nil
	p.AccountID, p.UserID, p.CreatedAt = cur.AccountID, cur.UserID, cur.CreatedAt
	p.UpdatedAt = st.now()
	st.products[p.ID] = detach(p)
	out := r.populate(p)
	return &out, nil
}

func (r productRepo) Delete(ctx context.Context, accountID, id string) error {
	defer r.d.lock()()
	if _, ok := get(r.d.st.products, accountID, id, productAccount); !ok {
		return repository.ErrNotFound
	}
	delete(r.d.st.products, id)
	return nil
}

func (r productRepo) ExistsName(ctx context.Context, accountID, name, exceptID string) (bool, error) {
	defer r.d.lock()()
	return exists(r.d.st.products, accountID, exceptID, productAccount, productID, func(x repository.Product) bool {
		return fold(x.ProductName, name)
	}), nil
}

func (r productRepo) ExistsSlug(ctx context.Context, accountID, slug, exceptID string) (bool, error) {
	defer r.d.lock()()
	return exists(r.d.st.products, accountID, exceptID, productAccount, productID, func(x repository.Product) bool {
		return x.Slug == slug
	}), nil
}
