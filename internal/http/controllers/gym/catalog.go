package gym

import (
	"net/http"

	dto "github.com/dropDatabas3/gymcore/internal/http/dto/gym"
	"github.com/dropDatabas3/gymcore/internal/http/helpers"
)

// ─── Membership plan ───

func (c *Controllers) CreatePlan(w http.ResponseWriter, r *http.Request) {
	var in dto.PlanCreate
	if !helpers.BindJSON(w, r, &in) {
		return
	}
	acc, uid := helpers.Scope(r)
	p, err := c.s.Plans.Create(r.Context(), acc, uid, in)
	if err != nil {
		fail(w, r, "plan.create", err)
		return
	}
	ok(w, http.StatusCreated, "Membership plan created successfully", p)
}

func (c *Controllers) ListPlans(w http.ResponseWriter, r *http.Request) {
	acc, _ := helpers.Scope(r)
	out, err := c.s.Plans.List(r.Context(), acc)
	if err != nil {
		fail(w, r, "plan.list", err)
		return
	}
	ok(w, http.StatusOK, "Membership plans fetched successfully", out)
}

func (c *Controllers) GetPlan(w http.ResponseWriter, r *http.Request) {
	acc, _ := helpers.Scope(r)
	p, err := c.s.Plans.Get(r.Context(), acc, param(r, "planId"))
	if err != nil {
		fail(w, r, "plan.get", err)
		return
	}
	ok(w, http.StatusOK, "Membership plan fetched successfully", p)
}

func (c *Controllers) UpdatePlan(w http.ResponseWriter, r *http.Request) {
	var in dto.PlanUpdate
	if !helpers.BindJSON(w, r, &in) {
		return
	}
	acc, _ := helpers.Scope(r)
	p, err := c.s.Plans.Update(r.Context(), acc, param(r, "planId"), in)
	if err != nil {
		fail(w, r, "plan.update", err)
		return
	}
	ok(w, http.StatusOK, "Membership plan updated successfully", p)
}

func (c *Controllers) DeletePlan(w http.ResponseWriter, r *http.Request) {
	acc, _ := helpers.Scope(r)
	if err := c.s.Plans.Delete(r.Context(), acc, param(r, "planId")); err != nil {
		fail(w, r, "plan.delete", err)
		return
	}
	ok(w, http.StatusOK, "Membership plan deleted successfully", nil)
}

// ─── Product category ───

func (c *Controllers) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var in dto.CategoryCreate
	img, done, okay := c.bindCatalog(w, r, &in)
	defer done()
	if !okay {
		return
	}
	acc, uid := helpers.Scope(r)
	out, err := c.s.Categories.Create(r.Context(), acc, uid, in, img)
	if err != nil {
		fail(w, r, "category.create", err)
		return
	}
	ok(w, http.StatusCreated, "Product category created successfully", out)
}

func (c *Controllers) ListCategories(w http.ResponseWriter, r *http.Request) {
	acc, _ := helpers.Scope(r)
	out, err := c.s.Categories.List(r.Context(), acc)
	if err != nil {
		fail(w, r, "category.list", err)
		return
	}
	ok(w, http.StatusOK, "Product categories fetched successfully", out)
}

func (c *Controllers) GetCategory(w http.ResponseWriter, r *http.Request) {
	acc, _ := helpers.Scope(r)
	out, err := c.s.Categories.Get(r.Context(), acc, param(r, "categoryId"))
	if err != nil {
		fail(w, r, "category.get", err)
		return
	}
	ok(w, http.StatusOK, "Product category fetched successfully", out)
}

func (c *Controllers) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	var in dto.CategoryUpdate
	img, done, okay := c.bindCatalog(w, r, &in)
	defer done()
	if !okay {
		return
	}
	acc, _ := helpers.Scope(r)
	out, err := c.s.Categories.Update(r.Context(), acc, param(r, "categoryId"), in, img)
	if err != nil {
		fail(w, r, "category.update", err)
		return
	}
	ok(w, http.StatusOK, "Product category updated successfully", out)
}

func (c *Controllers) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	acc, _ := helpers.Scope(r)
	if err := c.s.Categories.Delete(r.Context(), acc, param(r, "categoryId")); err != nil {
		fail(w, r, "category.delete", err)
		return
	}
	ok(w, http.StatusOK, "Product category deleted successfully", nil)
}

// ─── Brand ───

func (c *Controllers) CreateBrand(w http.ResponseWriter, r *http.Request) {
	var in dto.BrandCreate
	img, done, okay := c.bindCatalog(w, r, &in)
	defer done()
	if !okay {
		return
	}
	acc, uid := helpers.Scope(r)
	out, err := c.s.Brands.Create(r.Context(), acc, uid, in, img)
	if err != nil {
		fail(w, r, "brand.create", err)
		return
	}
	ok(w, http.StatusCreated, "Brand created successfully", out)
}

func (c *Controllers) ListBrands(w http.ResponseWriter, r *http.Request) {
	acc, _ := helpers.Scope(r)
	out, err := c.s.Brands.List(r.Context(), acc)
	if err != nil {
		fail(w, r, "brand.list", err)
		return
	}
	ok(w, http.StatusOK, "Brands fetched successfully", out)
}

func (c *Controllers) GetBrand(w http.ResponseWriter, r *http.Request) {
	acc, _ := helpers.Scope(r)
	out, err := c.s.Brands.Get(r.Context(), acc, param(r, "brandId"))
	if err != nil {
		fail(w, r, "brand.get", err)
		return
	}
	ok(w, http.StatusOK, "Brand fetched successfully", out)
}

func (c *Controllers) UpdateBrand(w http.ResponseWriter, r *http.Request) {
	var in dto.BrandUpdate
	img, done, okay := c.bindCatalog(w, r, &in)
	defer done()
	if !okay {
		return
	}
	acc, _ := helpers.Scope(r)
	out, err := c.s.Brands.Update(r.Context(), acc, param(r, "brandId"), in, img)
	if err != nil {
		fail(w, r, "brand.update", err)
		return
	}
	ok(w, http.StatusOK, "Brand updated successfully", out)
}

func (c *Controllers) DeleteBrand(w http.ResponseWriter, r *http.Request) {
	acc, _ := helpers.Scope(r)
	if err := c.s.Brands.Delete(r.Context(), acc, param(r, "brandId")); err != nil {
		fail(w, r, "brand.delete", err)
		return
	}
	ok(w, http.StatusOK, "Brand deleted successfully", nil)
}

// ─── Product ───

func (c *Controllers) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var in dto.ProductCreate
	img, done, okay := c.bindCatalog(w, r, &in)
	defer done()
	if !okay {
		return
	}
	acc, uid := helpers.Scope(r)
	out, err := c.s.Products.Create(r.Context(), acc, uid, in, img)
	if err != nil {
		fail(w, r, "product.create", err)
		return
	}
	ok(w, http.StatusCreated, "Product created successfully", out)
}

func (c *Controllers) ListProducts(w http.ResponseWriter, r *http.Request) {
	acc, _ := helpers.Scope(r)
	out, err := c.s.Products.List(r.Context(), acc)
	if err != nil {
		fail(w, r, "product.list", err)
		return
	}
	ok(w, http.StatusOK, "Products fetched successfully", out)
}

func (c *Controllers) GetProduct(w http.ResponseWriter, r *http.Request) {
	acc, _ := helpers.Scope(r)
	out, err := c.s.Products.Get(r.Context(), acc, param(r, "productId"))
	if err != nil {
		fail(w, r, "product.get", err)
		return
	}
	ok(w, http.StatusOK, "Product fetched successfully", out)
}

func (c *Controllers) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var in dto.ProductUpdate
	img, done, okay := c.bindCatalog(w, r, &in)
	defer done()
	if !okay {
		return
	}
	acc, _ := helpers.Scope(r)
	out, err := c.s.Products.Update(r.Context(), acc, param(r, "productId"), in, img)
	if err != nil {
		fail(w, r, "product.update", err)
		return
	}
	ok(w, http.StatusOK, "Product updated successfully", out)
}

func (c *Controllers) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	acc, _ := helpers.Scope(r)
	if err := c.s.Products.Delete(r.Context(), acc, param(r, "productId")); err != nil {
		fail(w, r, "product.delete", err)
		return
	}
	ok(w, http.StatusOK, "Product deleted successfully", nil)
}
