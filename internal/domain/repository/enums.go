package repository

// Role es el rol de un Principal.
type Role string

const (
	RoleSuperAdmin  Role = "SUPERADMIN"
	RoleAccountUser Role = "ACCOUNT_USER"
)

// Status es el estado genérico ACTIVE/INACTIVE de branches, trainers, members,
// planes y catálogo.
type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
)

type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderOther  Gender = "OTHER"
)

// BloodGroups es el conjunto de grupos sanguíneos aceptados.
var BloodGroups = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}

type DiscountType string

const (
	DiscountFlat       DiscountType = "FLAT"
	DiscountPercentage DiscountType = "PERCENTAGE"
)

type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "ACTIVE"
	SubscriptionExpired   SubscriptionStatus = "EXPIRED"
	SubscriptionCancelled SubscriptionStatus = "CANCELLED"
)

type PaymentMode string

const (
	PaymentCard   PaymentMode = "CARD"
	PaymentOnline PaymentMode = "ONLINE"
	PaymentUPI    PaymentMode = "UPI"
)

type PaymentStatus string

const (
	PaymentSuccess PaymentStatus = "SUCCESS"
	PaymentPending PaymentStatus = "PENDING"
	PaymentPaid    PaymentStatus = "PAID"
	PaymentFailed  PaymentStatus = "FAILED"
)

// AssignmentStatus: ACTIVE → INACTIVE (reemplazo o baja manual) | COMPLETED
// (fin de la suscripción del member).
type AssignmentStatus string

const (
	AssignmentActive    AssignmentStatus = "ACTIVE"
	AssignmentInactive  AssignmentStatus = "INACTIVE"
	AssignmentCompleted AssignmentStatus = "COMPLETED"
)

type TokenKind string

const (
	TokenRefresh       TokenKind = "REFRESH"
	TokenResetPassword TokenKind = "RESET_PASSWORD"
	TokenVerifyEmail   TokenKind = "VERIFY_EMAIL"
)
