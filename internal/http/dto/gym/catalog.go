package gym

type PlanCreate struct {
	BranchID     string   `json:"branch_id" validate:"required,uuid"`
	PlanName     string   `json:"plan_name" validate:"notblank,max=120"`
	PlanType     string   `json:"plan_type" validate:"notblank,max=40"`
	Description  string   `json:"description" validate:"omitempty,max=1000"`
	Duration     int      `json:"duration" validate:"required,gte=1"`
	Price        *float64 `json:"price" validate:"required,gte=0"`
	DiscountType string   `json:"discount_type" validate:"omitempty,oneof=FLAT PERCENTAGE"`
	Discount     float64  `json:"discount" validate:"gte=0"`
	Status       string   `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE"`
}

type PlanUpdate struct {
	BranchID     *string  `json:"branch_id" validate:"omitempty,uuid"`
	PlanName     *string  `json:"plan_name" validate:"omitempty,notblank,max=120"`
	PlanType     *string  `json:"plan_type" validate:"omitempty,notblank,max=40"`
	Description  *string  `json:"description" validate:"omitempty,max=1000"`
	Duration     *int     `json:"duration" validate:"omitempty,gte=1"`
	Price        *float64 `json:"price" validate:"omitempty,gte=0"`
	DiscountType *string  `json:"discount_type" validate:"omitempty,oneof=FLAT PERCENTAGE"`
	Discount     *float64 `json:"discount" validate:"omitempty,gte=0"`
	Status       *string  `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE"`
}

func (u PlanUpdate) Empty() bool { return emptyPatch(u) }

// Los DTOs de catálogo llegan como JSON o como campos de multipart/form-data.

type CategoryCreate struct {
	BranchID    string `json:"branch_id" form:"branch_id" validate:"omitempty,uuid"`
	ProductName string `json:"product_name" form:"product_name" validate:"notblank,max=120"`
	Status      string `json:"status" form:"status" validate:"omitempty,oneof=ACTIVE INACTIVE"`
}

type CategoryUpdate struct {
	BranchID    *string `json:"branch_id" form:"branch_id" validate:"omitempty,uuid"`
	ProductName *string `json:"product_name" form:"product_name" validate:"omitempty,notblank,max=120"`
	Status      *string `json:"status" form:"status" validate:"omitempty,oneof=ACTIVE INACTIVE"`
}

func (u CategoryUpdate) Empty() bool { return emptyPatch(u) }

type BrandCreate struct {
	BrandName string `json:"brand_name" form:"brand_name" validate:"notblank,max=120"`
	Status    string `json:"status" form:"status" validate:"omitempty,oneof=ACTIVE INACTIVE"`
}

type BrandUpdate struct {
	BrandName *string `json:"brand_name" form:"brand_name" validate:"omitempty,notblank,max=120"`
	Status    *string `json:"status" form:"status" validate:"omitempty,oneof=ACTIVE INACTIVE"`
}

func (u BrandUpdate) Empty() bool { return emptyPatch(u) }

type ProductCreate struct {
	ProductCategoryID string   `json:"product_category_id" form:"product_category_id" validate:"required,uuid"`
	BrandID           string   `json:"brand_id" form:"brand_id" validate:"required,uuid"`
	ProductName       string   `json:"product_name" form:"product_name" validate:"notblank,max=120"`
	Description       string   `json:"description" form:"description" validate:"omitempty,max=2000"`
	Price             *float64 `json:"price" form:"price" validate:"required,gte=0"`
	Discount          float64  `json:"discount" form:"discount" validate:"gte=0"`
	Stock             int      `json:"stock" form:"stock" validate:"gte=0"`
	Status            string   `json:"status" form:"status" validate:"omitempty,oneof=ACTIVE INACTIVE"`
}

type ProductUpdate struct {
	ProductCategoryID *string  `json:"product_category_id" form:"product_category_id" validate:"omitempty,uuid"`
	BrandID           *string  `json:"brand_id" form:"brand_id" validate:"omitempty,uuid"`
	ProductName       *string  `json:"product_name" form:"product_name" validate:"omitempty,notblank,max=120"`
	Description       *string  `json:"description" form:"description" validate:"omitempty,max=2000"`
	Price             *float64 `json:"price" form:"price" validate:"omitempty,gte=0"`
	Discount          *float64 `json:"discount" form:"discount" validate:"omitempty,gte=0"`
	Stock             *int     `json:"stock" form:"stock" validate:"omitempty,gte=0"`
	Status            *string  `json:"status" form:"status" validate:"omitempty,oneof=ACTIVE INACTIVE"`
}

func (u ProductUpdate) Empty() bool { return emptyPatch(u) }
