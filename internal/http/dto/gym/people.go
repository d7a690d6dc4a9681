package gym

type BranchCreate struct {
	Name          string `json:"name" validate:"notblank,max=120"`
	StreetAddress string `json:"street_address" validate:"notblank,max=255"`
	City          string `json:"city" validate:"notblank,max=120"`
	Zipcode       string `json:"zipcode" validate:"notblank,max=20"`
	Area          string `json:"area" validate:"notblank,max=120"`
	SpocName      string `json:"spoc_name" validate:"notblank,max=120"`
	SpocEmail     string `json:"spoc_email" validate:"required,email"`
	SpocContact   string `json:"spoc_contact" validate:"notblank,phone"`
	Status        string `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE"`
}

type BranchUpdate struct {
	Name          *string `json:"name" validate:"omitempty,notblank,max=120"`
	StreetAddress *string `json:"street_address" validate:"omitempty,notblank,max=255"`
	City          *string `json:"city" validate:"omitempty,notblank,max=120"`
	Zipcode       *string `json:"zipcode" validate:"omitempty,notblank,max=20"`
	Area          *string `json:"area" validate:"omitempty,notblank,max=120"`
	SpocName      *string `json:"spoc_name" validate:"omitempty,notblank,max=120"`
	SpocEmail     *string `json:"spoc_email" validate:"omitempty,email"`
	SpocContact   *string `json:"spoc_contact" validate:"omitempty,phone"`
	Status        *string `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE"`
}

func (u BranchUpdate) Empty() bool { return emptyPatch(u) }

type TrainerCreate struct {
	BranchID       string   `json:"branch_id" validate:"required,uuid"`
	Name           string   `json:"name" validate:"notblank,max=120"`
	PhoneNumber    string   `json:"phone_number" validate:"required,phone"`
	Email          string   `json:"email" validate:"required,email"`
	Specialization []string `json:"specialization" validate:"omitempty,dive,notblank"`
	DOB            *Date    `json:"dob"`
	BloodGroup     string   `json:"blood_group" validate:"omitempty,bloodgroup"`
	Gender         string   `json:"gender" validate:"omitempty,oneof=MALE FEMALE OTHER"`
	Height         *float64 `json:"height" validate:"omitempty,gte=50,lte=300"`
	Weight         *float64 `json:"weight" validate:"omitempty,gte=20,lte=300"`
	Status         string   `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE"`
}

type TrainerUpdate struct {
	BranchID       *string   `json:"branch_id" validate:"omitempty,uuid"`
	Name           *string   `json:"name" validate:"omitempty,notblank,max=120"`
	PhoneNumber    *string   `json:"phone_number" validate:"omitempty,phone"`
	Email          *string   `json:"email" validate:"omitempty,email"`
	Specialization *[]string `json:"specialization"`
	DOB            *Date     `json:"dob"`
	BloodGroup     *string   `json:"blood_group" validate:"omitempty,bloodgroup"`
	Gender         *string   `json:"gender" validate:"omitempty,oneof=MALE FEMALE OTHER"`
	Height         *float64  `json:"height" validate:"omitempty,gte=50,lte=300"`
	Weight         *float64  `json:"weight" validate:"omitempty,gte=20,lte=300"`
	Status         *string   `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE"`
}

func (u TrainerUpdate) Empty() bool { return emptyPatch(u) }

type MemberCreate struct {
	BranchID    string   `json:"branch_id" validate:"required,uuid"`
	Name        string   `json:"name" validate:"notblank,max=120"`
	PhoneNumber string   `json:"phone_number" validate:"required,phone"`
	DOB         *Date    `json:"dob" validate:"required"`
	BloodGroup  string   `json:"blood_group" validate:"omitempty,bloodgroup"`
	Gender      string   `json:"gender" validate:"required,oneof=MALE FEMALE OTHER"`
	Address     string   `json:"address" validate:"notblank,max=255"`
	Street      string   `json:"street" validate:"notblank,max=255"`
	Area        string   `json:"area" validate:"notblank,max=120"`
	Zipcode     string   `json:"zipcode" validate:"notblank,max=20"`
	Height      *float64 `json:"height" validate:"omitempty,gte=50,lte=300"`
	Weight      *float64 `json:"weight" validate:"omitempty,gte=20,lte=300"`
	Status      string   `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE"`
}

type MemberUpdate struct {
	BranchID    *string  `json:"branch_id" validate:"omitempty,uuid"`
	Name        *string  `json:"name" validate:"omitempty,notblank,max=120"`
	PhoneNumber *string  `json:"phone_number" validate:"omitempty,phone"`
	DOB         *Date    `json:"dob"`
	BloodGroup  *string  `json:"blood_group" validate:"omitempty,bloodgroup"`
	Gender      *string  `json:"gender" validate:"omitempty,oneof=MALE FEMALE OTHER"`
	Address     *string  `json:"address" validate:"omitempty,max=255"`
	Street      *string  `json:"street" validate:"omitempty,max=255"`
	Area        *string  `json:"area" validate:"omitempty,max=120"`
	Zipcode     *string  `json:"zipcode" validate:"omitempty,max=20"`
	Height      *float64 `json:"height" validate:"omitempty,gte=50,lte=300"`
	Weight      *float64 `json:"weight" validate:"omitempty,gte=20,lte=300"`
	Status      *string  `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE"`
}

func (u MemberUpdate) Empty() bool { return emptyPatch(u) }
