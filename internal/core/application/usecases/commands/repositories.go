// Package commands contains the operations that change orders and delivery agents.
// Every handler validates its command, runs inside one unit of work, and
// notifies only after the commit succeeded.
package commands

import (
	"context"

	"marketplace/internal/core/ports"
)

// Handlers depend on the narrowest unit of work they need. The postgres unit
// of work satisfies all of them.
type (
	// TxManager is the transaction lifecycle of a unit of work.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	AgentRepoFactory interface {
		AgentRepository() ports.AgentRepository
	}

	// OrderUoW serves create, confirm and cancel.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// AgentUoW serves the agent registry commands.
	AgentUoW interface {
		TxManager
		AgentRepoFactory
	}

	AgentUoWFactory interface {
		Create() AgentUoW
	}

	// UoW manages transactions across both order and agent aggregates.
	// Handlers lock the order before the agent.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   o, err := uow.OrderRepository().GetForUpdate(ctx, orderID)
	//   a, err := uow.AgentRepository().GetForUpdate(ctx, agentID)
	//   // ... mutate and Update both
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		AgentRepoFactory
		OrderRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}
)
