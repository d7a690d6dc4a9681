package repository

import "context"

// Repositories agrupa los repositorios de un mismo alcance transaccional.
type Repositories interface {
	Users() UserRepository
	Tokens() TokenRepository
	Accounts() AccountRepository
	Branches() BranchRepository
	Trainers() TrainerRepository
	Members() MemberRepository
	Plans() PlanRepository
	Categories() CategoryRepository
	Brands() BrandRepository
	Products() ProductRepository
	Subscriptions() SubscriptionRepository
	Assignments() AssignmentRepository
	HealthReports() HealthReportRepository
}

// Store es el recurso de almacenamiento del proceso. Se abre antes de servir
// y se cierra después de drenar las requests en curso.
type Store interface {
	Repositories

	// InTx ejecuta fn en una transacción. Si fn retorna error se hace rollback
	// y ningún cambio es observable. Dentro de fn solo debe usarse tx.
	InTx(ctx context.Context, fn func(tx Repositories) error) error

	Ping(ctx context.Context) error
	Close()
	Driver() string
}
