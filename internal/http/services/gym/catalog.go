package gym

import (
	"context"

	"github.com/dropDatabas3/gymcore/internal/domain/derive"
	"github.com/dropDatabas3/gymcore/internal/domain/repository"
	dto "github.com/dropDatabas3/gymcore/internal/http/dto/gym"
	"github.com/dropDatabas3/gymcore/internal/objectstore"
	"github.com/dropDatabas3/gymcore/internal/observability/logger"
)

type PlanService interface {
	Create(ctx context.Context, accountID, userID string, in dto.PlanCreate) (*repository.MembershipPlan, error)
	List(ctx context.Context, accountID string) ([]repository.MembershipPlan, error)
	Get(ctx context.Context, accountID, id string) (*repository.MembershipPlan, error)
	Update(ctx context.Context, accountID, id string, in dto.PlanUpdate) (*repository.MembershipPlan, error)
	Delete(ctx context.Context, accountID, id string) error
}

type planService struct{ d *Deps }

func (s *planService) Create(ctx context.Context, accountID, userID string, in dto.PlanCreate) (*repository.MembershipPlan, error) {
	if _, err := s.d.Store.Branches().GetByID(ctx, accountID, in.BranchID); err != nil {
		return nil, notFound(err, "branch")
	}
	name := trim(in.PlanName)
	if err := conflictOn("plan_name")(s.d.Store.Plans().ExistsName(ctx, accountID, name, "")); err != nil {
		return nil, err
	}
	p, err := s.d.Store.Plans().Create(ctx, repository.MembershipPlan{
		AccountID:    accountID,
		UserID:       userID,
		BranchID:     in.BranchID,
		PlanName:     name,
		PlanType:     trim(in.PlanType),
		Description:  in.Description,
		Duration:     in.Duration,
		Price:        derive.Round2(*in.Price),
		DiscountType: repository.DiscountType(in.DiscountType),
		Discount:     in.Discount,
		Status:       statusOr(in.Status),
	})
	if err != nil {
		return nil, err
	}
	svcLog(ctx, "gym.plans", "Create").Info("plan created", logger.PlanID(p.ID))
	return p, nil
}

func (s *planService) List(ctx context.Context, accountID string) ([]repository.MembershipPlan, error) {
	return s.d.Store.Plans().List(ctx, accountID)
}

func (s *planService) Get(ctx context.Context, accountID, id string) (*repository.MembershipPlan, error) {
	return s.d.Store.Plans().GetByID(ctx, accountID, id)
}

func (s *planService) Update(ctx context.Context, accountID, id string, in dto.PlanUpdate) (*repository.MembershipPlan, error) {
	p, err := s.d.Store.Plans().GetByID(ctx, accountID, id)
	if err != nil {
		return nil, err
	}
	if in.BranchID != nil && *in.BranchID != p.BranchID {
		if _, err := s.d.Store.Branches().GetByID(ctx, accountID, *in.BranchID); err != nil {
			return nil, notFound(err, "branch")
		}
		p.BranchID = *in.BranchID
	}
	if in.PlanName != nil {
		name := trim(*in.PlanName)
		if name != p.PlanName {
			if err := conflictOn("plan_name")(s.d.Store.Plans().ExistsName(ctx, accountID, name, p.ID)); err != nil {
				return nil, err
			}
		}
		p.PlanName = name
	}
	setStr(&p.PlanType, in.PlanType)
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Duration != nil {
		p.Duration = *in.Duration
	}
	if in.Price != nil {
		p.Price = derive.Round2(*in.Price)
	}
	if in.DiscountType != nil {
		p.DiscountType = repository.DiscountType(*in.DiscountType)
	}
	if in.Discount != nil {
		p.Discount = *in.Discount
	}
	if in.Status != nil {
		p.Status = repository.Status(*in.Status)
	}
	return s.d.Store.Plans().Update(ctx, accountID, *p)
}

func (s *planService) Delete(ctx context.Context, accountID, id string) error {
	return s.d.Store.Plans().Delete(ctx, accountID, id)
}

type CategoryService interface {
	Create(ctx context.Context, accountID, userID string, in dto.CategoryCreate, img *Image) (*repository.ProductCategory, error)
	List(ctx context.Context, accountID string) ([]repository.ProductCategory, error)
	Get(ctx context.Context, accountID, id string) (*repository.ProductCategory, error)
	// Update sin imagen conserva la URL actual.
	Update(ctx context.Context, accountID, id string, in dto.CategoryUpdate, img *Image) (*repository.ProductCategory, error)
	Delete(ctx context.Context, accountID, id string) error
}

type categoryService struct{ d *Deps }

func (s *categoryService) Create(ctx context.Context, accountID, userID string, in dto.CategoryCreate, img *Image) (*repository.ProductCategory, error) {
	if in.BranchID != "" {
		if _, err := s.d.Store.Branches().GetByID(ctx, accountID, in.BranchID); err != nil {
			return nil, notFound(err, "branch")
		}
	}
	name := trim(in.ProductName)
	if err := conflictOn("product_name")(s.d.Store.Categories().ExistsName(ctx, accountID, name, "")); err != nil {
		return nil, err
	}
	return withImage(ctx, s.d, objectstore.FolderCategories, img, "", func(url string) (*repository.ProductCategory, error) {
		return s.d.Store.Categories().Create(ctx, repository.ProductCategory{
			AccountID:   accountID,
			UserID:      userID,
			BranchID:    in.BranchID,
			ProductName: name,
			ProductImg:  url,
			Status:      statusOr(in.Status),
		})
	})
}

func (s *categoryService) List(ctx context.Context, accountID string) ([]repository.ProductCategory, error) {
	return s.d.Store.Categories().List(ctx, accountID)
}

func (s *categoryService) Get(ctx context.Context, accountID, id string) (*repository.ProductCategory, error) {
	return s.d.Store.Categories().GetByID(ctx, accountID, id)
}

func (s *categoryService) Update(ctx context.Context, accountID, id string, in dto.CategoryUpdate, img *Image) (*repository.ProductCategory, error) {
	c, err := s.d.Store.Categories().GetByID(ctx, accountID, id)
	if err != nil {
		return nil, err
	}
	if in.BranchID != nil && *in.BranchID != c.BranchID {
		if *in.BranchID != "" {
			if _, err := s.d.Store.Branches().GetByID(ctx, accountID, *in.BranchID); err != nil {
				return nil, notFound(err, "branch")
			}
		}
		c.BranchID = *in.BranchID
	}
	if in.ProductName != nil {
		name := trim(*in.ProductName)
		if name != c.ProductName {
			if err := conflictOn("product_name")(s.d.Store.Categories().ExistsName(ctx, accountID, name, c.ID)); err != nil {
				return nil, err
			}
		}
		c.ProductName = name
	}
	if in.Status != nil {
		c.Status = repository.Status(*in.Status)
	}
	previous := c.ProductImg
	return withImage(ctx, s.d, objectstore.FolderCategories, img, previous, func(url string) (*repository.ProductCategory, error) {
		if url != "" {
			c.ProductImg = url
		}
		return s.d.Store.Categories().Update(ctx, accountID, *c)
	})
}

func (s *categoryService) Delete(ctx context.Context, accountID, id string) error {
	return s.d.Store.Categories().Delete(ctx, accountID, id)
}

type BrandService interface {
	Create(ctx context.Context, accountID, userID string, in dto.BrandCreate, img *Image) (*repository.Brand, error)
	List(ctx context.Context, accountID string) ([]repository.Brand, error)
	Get(ctx context.Context, accountID, id string) (*repository.Brand, error)
	Update(ctx context.Context, accountID, id string, in dto.BrandUpdate, img *Image) (*repository.Brand, error)
	Delete(ctx context.Context, accountID, id string) error
}

type brandService struct{ d *Deps }

func (s *brandService) Create(ctx context.Context, accountID, userID string, in dto.BrandCreate, img *Image) (*repository.Brand, error) {
	name := trim(in.BrandName)
	if err := conflictOn("brand_name")(s.d.Store.Brands().ExistsName(ctx, accountID, name, "")); err != nil {
		return nil, err
	}
	return withImage(ctx, s.d, objectstore.FolderBrands, img, "", func(url string) (*repository.Brand, error) {
		return s.d.Store.Brands().Create(ctx, repository.Brand{
			AccountID: accountID,
			UserID:    userID,
			BrandName: name,
			Image:     url,
			Status:    statusOr(in.Status),
		})
	})
}

func (s *brandService) List(ctx context.Context, accountID string) ([]repository.Brand, error) {
	return s.d.Store.Brands().List(ctx, accountID)
}

func (s *brandService) Get(ctx context.Context, accountID, id string) (*repository.Brand, error) {
	return s.d.Store.Brands().GetByID(ctx, accountID, id)
}

func (s *brandService) Update(ctx context.Context, accountID, id string, in dto.BrandUpdate, img *Image) (*repository.Brand, error) {
	b, err := s.d.Store.Brands().GetByID(ctx, accountID, id)
	if err != nil {
		return nil, err
	}
	if in.BrandName != nil {
		name := trim(*in.BrandName)
		if name != b.BrandName {
			if err := conflictOn("brand_name")(s.d.Store.Brands().ExistsName(ctx, accountID, name, b.ID)); err != nil {
				return nil, err
			}
		}
		b.BrandName = name
	}
	if in.Status != nil {
		b.Status = repository.Status(*in.Status)
	}
	return withImage(ctx, s.d, objectstore.FolderBrands, img, b.Image, func(url string) (*repository.Brand, error) {
		if url != "" {
			b.Image = url
		}
		return s.d.Store.Brands().Update(ctx, accountID, *b)
	})
}

func (s *brandService) Delete(ctx context.Context, accountID, id string) error {
	return s.d.Store.Brands().Delete(ctx, accountID, id)
}

type ProductService interface {
	Create(ctx context.Context, accountID, userID string, in dto.ProductCreate, img *Image) (*repository.Product, error)
	// List retorna category y brand embebidos.
	List(ctx context.Context, accountID string) ([]repository.Product, error)
	Get(ctx context.Context, accountID, id string) (*repository.Product, error)
	Update(ctx context.Context, accountID, id string, in dto.ProductUpdate, img *Image) (*repository.Product, error)
	Delete(ctx context.Context, accountID, id string) error
}

type productService struct{ d *Deps }

// refs comprueba que categoría y marca sean del tenant.
func (s *productService) refs(ctx context.Context, accountID, categoryID, brandID string) error {
	if _, err := s.d.Store.Categories().GetByID(ctx, accountID, categoryID); err != nil {
		return notFound(err, "product category")
	}
	if _, err := s.d.Store.Brands().GetByID(ctx, accountID, brandID); err != nil {
		return notFound(err, "brand")
	}
	return nil
}

// nameFree exige nombre y slug libres: "Whey  Protein" choca con "Whey Protein".
func (s *productService) nameFree(ctx context.Context, accountID, name, exceptID string) error {
	if err := conflictOn("product_name")(s.d.Store.Products().ExistsName(ctx, accountID, name, exceptID)); err != nil {
		return err
	}
	return conflictOn("product_name")(s.d.Store.Products().ExistsSlug(ctx, accountID, derive.Slug(name), exceptID))
}

func (s *productService) Create(ctx context.Context, accountID, userID string, in dto.ProductCreate, img *Image) (*repository.Product, error) {
	if err := s.refs(ctx, accountID, in.ProductCategoryID, in.BrandID); err != nil {
		return nil, err
	}
	name := trim(in.ProductName)
	if err := s.nameFree(ctx, accountID, name, ""); err != nil {
		return nil, err
	}
	return withImage(ctx, s.d, objectstore.FolderProducts, img, "", func(url string) (*repository.Product, error) {
		return s.d.Store.Products().Create(ctx, repository.Product{
			AccountID:         accountID,
			UserID:            userID,
			ProductCategoryID: in.ProductCategoryID,
			BrandID:           in.BrandID,
			ProductName:       name,
			Slug:              derive.Slug(name),
			Description:       in.Description,
			Price:             derive.Round2(*in.Price),
			Discount:          in.Discount,
			Stock:             in.Stock,
			Image:             url,
			Status:            statusOr(in.Status),
		})
	})
}

func (s *productService) List(ctx context.Context, accountID string) ([]repository.Product, error) {
	return s.d.Store.Products().List(ctx, accountID)
}

func (s *productService) Get(ctx context.Context, accountID, id string) (*repository.Product, error) {
	return s.d.Store.Products().GetByID(ctx, accountID, id)
}

func (s *productService) Update(ctx context.Context, accountID, id string, in dto.ProductUpdate, img *Image) (*repository.Product, error) {
	p, err := s.d.Store.Products().GetByID(ctx, accountID, id)
	if err != nil {
		return nil, err
	}
	cat, brand := p.ProductCategoryID, p.BrandID
	if in.ProductCategoryID != nil {
		cat = *in.ProductCategoryID
	}
	if in.BrandID != nil {
		brand = *in.BrandID
	}
	if cat != p.ProductCategoryID || brand != p.BrandID {
		if err := s.refs(ctx, accountID, cat, brand); err != nil {
			return nil, err
		}
		p.ProductCategoryID, p.BrandID = cat, brand
	}
	if in.ProductName != nil {
		name := trim(*in.ProductName)
		if name != p.ProductName {
			if err := s.nameFree(ctx, accountID, name, p.ID); err != nil {
				return nil, err
			}
		}
		p.ProductName = name
		p.Slug = derive.Slug(name)
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Price != nil {
		p.Price = derive.Round2(*in.Price)
	}
	if in.Discount != nil {
		p.Discount = *in.Discount
	}
	if in.Stock != nil {
		p.Stock = *in.Stock
	}
	if in.Status != nil {
		p.Status = repository.Status(*in.Status)
	}
	return withImage(ctx, s.d, objectstore.FolderProducts, img, p.Image, func(url string) (*repository.Product, error) {
		if url != "" {
			p.Image = url
		}
		return s.d.Store.Products().Update(ctx, accountID, *p)
	})
}

func (s *productService) Delete(ctx context.Context, accountID, id string) error {
	return s.d.Store.Products().Delete(ctx, accountID, id)
}
