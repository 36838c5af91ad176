package ports

import "context"

// UnitOfWorkFactory hands out one UnitOfWork per command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is the transaction boundary of a command. Repositories taken from
// it after Begin share the transaction.
//
// Operations that touch both aggregates lock the order row before the agent row.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	// Commit fails when no transaction is active.
	Commit(ctx context.Context) error
	// Rollback fails when no transaction is active, including after Commit.
	Rollback(ctx context.Context) error

	AgentRepository() AgentRepository
	OrderRepository() OrderRepository
}
