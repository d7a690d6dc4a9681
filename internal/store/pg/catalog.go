package pg

import (
	"context"
	"strings"

	"github.com/dropDatabas3/gymcore/internal/domain/repository"
)

// ─── categories ───

type categoryRepo struct{ q querier }

const categoryCols = `id, account_id, user_id, COALESCE(branch_id::text, ''), product_name, product_img,
	status, created_at, updated_at`

func scanCategory(s scanner) (repository.ProductCategory, error) {
	var c repository.ProductCategory
	err := s.Scan(&c.ID, &c.AccountID, &c.UserID, &c.BranchID, &c.ProductName, &c.ProductImg,
		&c.Status, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func (r categoryRepo) Create(ctx context.Context, c repository.ProductCategory) (*repository.ProductCategory, error) {
	c.ID = newID(c.ID)
	now := nowUTC()
	c.CreatedAt, c.UpdatedAt = now, now
	_, err := r.q.Exec(ctx, `
		INSERT INTO product_categories (id, account_id, user_id, branch_id, product_name, product_img,
			status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		c.ID, c.AccountID, c.UserID, nullIfEmpty(c.BranchID), c.ProductName, c.ProductImg,
		c.Status, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return nil, wrap("create category", err)
	}
	return &c, nil
}

func (r categoryRepo) GetByID(ctx context.Context, accountID, id string) (*repository.ProductCategory, error) {
	if !scopedIDs(accountID, id) {
		return nil, repository.ErrNotFound
	}
	c, err := scanCategory(r.q.QueryRow(ctx,
		`SELECT `+categoryCols+` FROM product_categories WHERE id = $1 AND account_id = $2`, id, accountID))
	if err != nil {
		return nil, wrap("get category", err)
	}
	return &c, nil
}

func (r categoryRepo) List(ctx context.Context, accountID string) ([]repository.ProductCategory, error) {
	if !scopedIDs(accountID) {
		return []repository.ProductCategory{}, nil
	}
	rows, err := r.q.Query(ctx,
		`SELECT `+categoryCols+` FROM product_categories WHERE account_id = $1 ORDER BY created_at DESC`, accountID)
	if err != nil {
		return nil, wrap("list categories", err)
	}
	out, err := collect(rows, scanCategory)
	return out, wrap("list categories", err)
}

func (r categoryRepo) Update(ctx context.Context, accountID string, c repository.ProductCategory) (*repository.ProductCategory, error) {
	if !scopedIDs(accountID, c.ID) {
		return nil, repository.ErrNotFound
	}
	out, err := scanCategory(r.q.QueryRow(ctx, `
		UPDATE product_categories SET branch_id = $3, product_name = $4, product_img = $5,
			status = $6, updated_at = $7
		WHERE id = $1 AND account_id = $2
		RETURNING `+categoryCols,
		c.ID, accountID, nullIfEmpty(c.BranchID), c.ProductName, c.ProductImg, c.Status, nowUTC()))
	if err != nil {
		return nil, wrap("update category", err)
	}
	return &out, nil
}

func (r categoryRepo) Delete(ctx context.Context, accountID, id string) error {
	if !scopedIDs(accountID, id) {
		return repository.ErrNotFound
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM product_categories WHERE id = $1 AND account_id = $2`, id, accountID)
	return affected(tag, err, "delete category")
}

func (r categoryRepo) ExistsName(ctx context.Context, accountID, name, exceptID string) (bool, error) {
	if !scopedIDs(accountID) {
		return false, nil
	}
	return repos{r.q}.exists(ctx, "category name", `
		SELECT 1 FROM product_categories
		WHERE account_id = $1 AND lower(product_name) = lower($2) AND id::text <> $3`,
		accountID, strings.TrimSpace(name), exceptID)
}

// ─── brands ───

type brandRepo struct{ q querier }

const brandCols = `id, account_id, user_id, brand_name, image, status, created_at, updated_at`

func scanBrand(s scanner) (repository.Brand, error) {
	var b repository.Brand
	err := s.Scan(&b.ID, &b.AccountID, &b.UserID, &b.BrandName, &b.Image, &b.Status, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}

func (r brandRepo) Create(ctx context.Context, b repository.Brand) (*repository.Brand, error) {
	b.ID = newID(b.ID)
	now := nowUTC()
	b.CreatedAt, b.UpdatedAt = now, now
	_, err := r.q.Exec(ctx, `
		INSERT INTO brands (`+brandCols+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		b.ID, b.AccountID, b.UserID, b.BrandName, b.Image, b.Status, b.CreatedAt, b.UpdatedAt)
	if err != nil {
		return nil, wrap("create brand", err)
	}
	return &b, nil
}

func (r brandRepo) GetByID(ctx context.Context, accountID, id string) (*repository.Brand, error) {
	if !scopedIDs(accountID, id) {
		return nil, repository.ErrNotFound
	}
	b, err := scanBrand(r.q.QueryRow(ctx,
		`SELECT `+brandCols+` FROM brands WHERE id = $1 AND account_id = $2`, id, accountID))
	if err != nil {
		return nil, wrap("get brand", err)
	}
	return &b, nil
}

func (r brandRepo) List(ctx context.Context, accountID string) ([]repository.Brand, error) {
	if !scopedIDs(accountID) {
		return []repository.Brand{}, nil
	}
	rows, err := r.q.Query(ctx,
		`SELECT `+brandCols+` FROM brands WHERE account_id = $1 ORDER BY created_at DESC`, accountID)
	if err != nil {
		return nil, wrap("list brands", err)
	}
	out, err := collect(rows, scanBrand)
	return out, wrap("list brands", err)
}

func (r brandRepo) Update(ctx context.Context, accountID string, b repository.Brand) (*repository.Brand, error) {
	if !scopedIDs(accountID, b.ID) {
		return nil, repository.ErrNotFound
	}
	out, err := scanBrand(r.q.QueryRow(ctx, `
		UPDATE brands SET brand_name = $3, image = $4, status = $5, updated_at = $6
		WHERE id = $1 AND account_id = $2
		RETURNING `+brandCols,
		b.ID, accountID, b.BrandName, b.Image, b.Status, nowUTC()))
	if err != nil {
		return nil, wrap("update brand", err)
	}
	return &out, nil
}

func (r brandRepo) Delete(ctx context.Context, accountID, id string) error {
	if !scopedIDs(accountID, id) {
		return repository.ErrNotFound
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM brands WHERE id = $1 AND account_id = $2`, id, accountID)
	return affected(tag, err, "delete brand")
}

func (r brandRepo) ExistsName(ctx context.Context, accountID, name, exceptID string) (bool, error) {
	if !scopedIDs(accountID) {
		return false, nil
	}
	return repos{r.q}.exists(ctx, "brand name", `
		SELECT 1 FROM brands
		WHERE account_id = $1 AND lower(brand_name) = lower($2) AND id::text <> $3`,
		accountID, strings.TrimSpace(name), exceptID)
}

// ─── products ───

type productRepo struct{ q querier }

const productCols = `id, account_id, user_id, product_category_id, brand_id, product_name, slug,
	description, price, discount, stock, image, status, created_at, updated_at`

// productJoined agrega categoría y marca con LEFT JOIN: una referencia
// borrada deja el campo vacío.
const productJoined = `
	SELECT p.id, p.account_id, p.user_id, p.product_category_id, p.brand_id, p.product_name, p.slug,
		p.description, p.price, p.discount, p.stock, p.image, p.status, p.created_at, p.updated_at,
		c.id::text, c.product_name, b.id::text, b.brand_name
	FROM products p
	LEFT JOIN product_categories c ON c.id = p.product_category_id AND c.account_id = p.account_id
	LEFT JOIN brands b ON b.id = p.brand_id AND b.account_id = p.account_id`

func productDest(p *repository.Product) []any {
	return []any{&p.ID, &p.AccountID, &p.UserID, &p.ProductCategoryID, &p.BrandID, &p.ProductName, &p.Slug,
		&p.Description, &p.Price, &p.Discount, &p.Stock, &p.Image, &p.Status, &p.CreatedAt, &p.UpdatedAt}
}

func scanProduct(s scanner) (repository.Product, error) {
	var p repository.Product
	err := s.Scan(productDest(&p)...)
	return p, err
}

func scanProductJoined(s scanner) (repository.Product, error) {
	var (
		p                  repository.Product
		catID, catName     *string
		brandID, brandName *string
	)
	err := s.Scan(append(productDest(&p), &catID, &catName, &brandID, &brandName)...)
	if err != nil {
		return p, err
	}
	if catID != nil {
		p.Category = &repository.CategoryRef{ID: *catID, ProductName: deref(catName)}
	}
	if brandID != nil {
		p.Brand = &repository.BrandRef{ID: *brandID, BrandName: deref(brandName)}
	}
	return p, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (r productRepo) Create(ctx context.Context, p repository.Product) (*repository.Product, error) {
	p.ID = newID(p.ID)
	p.Category, p.Brand = nil, nil
	now := nowUTC()
	p.CreatedAt, p.UpdatedAt = now, now
	_, err := r.q.Exec(ctx, `
		INSERT INTO products (`+productCols+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		p.ID, p.AccountID, p.UserID, p.ProductCategoryID, p.BrandID, p.ProductName, p.Slug,
		p.Description, p.Price, p.Discount, p.Stock, p.Image, p.Status, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return nil, wrap("create product", err)
	}
	return &p, nil
}

func (r productRepo) GetByID(ctx context.Context, accountID, id string) (*repository.Product, error) {
	if !scopedIDs(accountID, id) {
		return nil, repository.ErrNotFound
	}
	p, err := scanProductJoined(r.q.QueryRow(ctx, productJoined+` WHERE p.id = $1 AND p.account_id = $2`, id, accountID))
	if err != nil {
		return nil, wrap("get product", err)
	}
	return &p, nil
}

func (r productRepo) List(ctx context.Context, accountID string) ([]repository.Product, error) {
	if !scopedIDs(accountID) {
		return []repository.Product{}, nil
	}
	rows, err := r.q.Query(ctx, productJoined+` WHERE p.account_id = $1 ORDER BY p.created_at DESC`, accountID)
	if err != nil {
		return nil, wrap("list products", err)
	}
	out, err := collect(rows, scanProductJoined)
	return out, wrap("list products", err)
}

func (r productRepo) Update(ctx context.Context, accountID string, p repository.Product) (*repository.Product, error) {
	if !scopedIDs(accountID, p.ID) {
		return nil, repository.ErrNotFound
	}
	out, err := scanProduct(r.q.QueryRow(ctx, `
		UPDATE products SET product_category_id = $3, brand_id = $4, product_name = $5, slug = $6,
			description = $7, price = $8, discount = $9, stock = $10, image = $11, status = $12, updated_at = $13
		WHERE id = $1 AND account_id = $2
		RETURNING `+productCols,
		p.ID, accountID, p.ProductCategoryID, p.BrandID, p.ProductName, p.Slug,
		p.Description, p.Price, p.Discount, p.Stock, p.Image, p.Status, nowUTC()))
	if err != nil {
		return nil, wrap("update product", err)
	}
	return &out, nil
}

func (r productRepo) Delete(ctx context.Context, accountID, id string) error {
	if !scopedIDs(accountID, id) {
		return repository.ErrNotFound
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1 AND account_id = $2`, id, accountID)
	return affected(tag, err, "delete product")
}

func (r productRepo) ExistsName(ctx context.Context, accountID, name, exceptID string) (bool, error) {
	if !scopedIDs(accountID) {
		return false, nil
	}
	return repos{r.q}.exists(ctx, "product name", `
		SELECT 1 FROM products
		WHERE account_id = $1 AND lower(product_name) = lower($2) AND id::text <> $3`,
		accountID, strings.TrimSpace(name), exceptID)
}

func (r productRepo) ExistsSlug(ctx context.Context, accountID, slug, exceptID string) (bool, error) {
	if !scopedIDs(accountID) {
		return false, nil
	}
	return repos{r.q}.exists(ctx, "product slug", `
		SELECT 1 FROM products
		WHERE account_id = $1 AND slug = $2 AND id::text <> $3`,
		accountID, slug, exceptID)
}
