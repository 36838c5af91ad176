package queries

import (
	"context"
	"database/sql"
	"errors"

	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetAgentQueryHandler treats deactivated agents as missing.
type GetAgentQueryHandler struct {
	db *gorm.DB
}

func NewGetAgentQueryHandler(db *gorm.DB) GetAgentQueryHandler {
	return GetAgentQueryHandler{db: db}
}

func (h GetAgentQueryHandler) Handle(ctx context.Context, query GetAgentQuery) (AgentView, error) {
	if err := query.Validate(); err != nil {
		return AgentView{}, err
	}

	agentID := query.AgentID()
	row := h.db.WithContext(ctx).Raw(`
		SELECT `+agentColumns+`
		FROM delivery_agents
		WHERE id = ? AND is_active = true
	`, agentID.String()).Row()

	view, err := scanAgentView(row)
	if errors.Is(err, sql.ErrNoRows) {
		return AgentView{}, errs.NewObjectNotFoundError("delivery agent", agentID.String())
	}
	if err != nil {
		return AgentView{}, err
	}
	return view, nil
}
