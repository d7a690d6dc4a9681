package repository

import (
	"context"
	"time"
)

type ProductCategory struct {
	ID          string    `json:"id"`
	AccountID   string    `json:"account_id"`
	UserID      string    `json:"user_id"`
	BranchID    string    `json:"branch_id,omitempty"`
	ProductName string    `json:"product_name"`
	ProductImg  string    `json:"product_img,omitempty"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CategoryRepository interface {
	Create(ctx context.Context, c ProductCategory) (*ProductCategory, error)
	GetByID(ctx context.Context, accountID, id string) (*ProductCategory, error)
	List(ctx context.Context, accountID string) ([]ProductCategory, error)
	Update(ctx context.Context, accountID string, c ProductCategory) (*ProductCategory, error)
	Delete(ctx context.Context, accountID, id string) error

	ExistsName(ctx context.Context, accountID, name, exceptID string) (bool, error)
}

type Brand struct {
	ID        string    `json:"id"`
	AccountID string    `json:"account_id"`
	UserID    string    `json:"user_id"`
	BrandName string    `json:"brand_name"`
	Image     string    `json:"image,omitempty"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type BrandRepository interface {
	Create(ctx context.Context, b Brand) (*Brand, error)
	GetByID(ctx context.Context, accountID, id string) (*Brand, error)
	List(ctx context.Context, accountID string) ([]Brand, error)
	Update(ctx context.Context, accountID string, b Brand) (*Brand, error)
	Delete(ctx context.Context, accountID, id string) error

	ExistsName(ctx context.Context, accountID, name, exceptID string) (bool, error)
}

// Product referencia una categoría y una marca del mismo tenant.
// Category y Brand se completan en lecturas pobladas.
type Product struct {
	ID                string    `json:"id"`
	AccountID         string    `json:"account_id"`
	UserID            string    `json:"user_id"`
	ProductCategoryID string    `json:"product_category_id"`
	BrandID           string    `json:"brand_id"`
	ProductName       string    `json:"product_name"`
	Slug              string    `json:"slug"`
	Description       string    `json:"description,omitempty"`
	Price             float64   `json:"price"`
	Discount          float64   `json:"discount"`
	Stock             int       `json:"stock"`
	Image             string    `json:"image,omitempty"`
	Status            Status    `json:"status"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`

	Category *CategoryRef `json:"product_category,omitempty"`
	Brand    *BrandRef    `json:"brand,omitempty"`
}

type ProductRepository interface {
	Create(ctx context.Context, p Product) (*Product, error)
	GetByID(ctx context.Context, accountID, id string) (*Product, error)
	// List retorna los productos con Category y Brand poblados.
	List(ctx context.Context, accountID string) ([]Product, error)
	Update(ctx context.Context, accountID string, p Product) (*Product, error)
	Delete(ctx context.Context, accountID, id string) error

	ExistsName(ctx context.Context, accountID, name, exceptID string) (bool, error)
	// ExistsSlug: dos nombres distintos pueden dar el mismo slug.
	ExistsSlug(ctx context.Context, accountID, slug, exceptID string) (bool, error)
}

type CategoryRef struct {
	ID          string `json:"id"`
	ProductName string `json:"product_name"`
}

type BrandRef struct {
	ID        string `json:"id"`
	BrandName string `json:"brand_name"`
}
