package commands_test

import (
	"errors"
	"testing"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/agent"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

func expectAgentUoW(t *testing.T) (*MockAgentRepository, *MockUoW, *MockAgentUoWFactory) {
	t.Helper()
	ctx := t.Context()

	agentRepo := new(MockAgentRepository)
	uow := new(MockUoW)
	factory := new(MockAgentUoWFactory)

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("AgentRepository").Return(agentRepo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	return agentRepo, uow, factory
}

func TestNewCreateAgentCommand(t *testing.T) {
	t.Run("valid input", func(t *testing.T) {
		cmd, err := commands.NewCreateAgentCommand("Ravi Kumar", "9876543210", ptr("ravi@example.com"), "bike", "KA01AB1234")

		require.NoError(t, err)
		assert.Equal(t, "Ravi Kumar", cmd.Name())
		assert.Equal(t, "9876543210", cmd.Phone().String())
		require.NotNil(t, cmd.Email())
		assert.Equal(t, "ravi@example.com", cmd.Email().String())
		assert.Equal(t, "bike", cmd.Vehicle().Type())
	})

	t.Run("empty email means none", func(t *testing.T) {
		cmd, err := commands.NewCreateAgentCommand("Ravi Kumar", "9876543210", ptr(""), "", "")

		require.NoError(t, err)
		assert.Nil(t, cmd.Email())
	})

	t.Run("collects every problem", func(t *testing.T) {
		_, err := commands.NewCreateAgentCommand("", "12345", ptr("not-an-email"), "", "")

		require.Error(t, err)
		assert.ErrorIs(t, err, agent.ErrNameIsRequired)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "phone")
	})
}

func TestCreateAgentCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateAgentCommand("Ravi Kumar", "9876543210", nil, "bike", "KA01AB1234")
	require.NoError(t, err)

	agentRepo, uow, factory := expectAgentUoW(t)
	mock.InOrder(
		agentRepo.On("PhoneTaken", ctx, cmd.Phone(), (*kernel.UUID)(nil)).Return(false, nil).Once(),
		agentRepo.On("Add", ctx, mock.AnythingOfType("*agent.Agent")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
	)

	registered, err := commands.NewCreateAgentCommandHandler(factory).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, agent.Offline, registered.Status())
	assert.True(t, registered.IsActive())
	assert.Nil(t, registered.Location())
	agentRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCreateAgentCommandHandler_Handle_PhoneTaken(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateAgentCommand("Ravi Kumar", "9876543210", nil, "", "")
	require.NoError(t, err)

	agentRepo, uow, factory := expectAgentUoW(t)
	agentRepo.On("PhoneTaken", ctx, cmd.Phone(), (*kernel.UUID)(nil)).Return(true, nil).Once()

	_, err = commands.NewCreateAgentCommandHandler(factory).Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Contains(t, err.Error(), agent.ErrPhoneIsTaken.Error())
	agentRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestCreateAgentCommandHandler_Handle_ValidationError(t *testing.T) {
	factory := new(MockAgentUoWFactory)

	_, err := commands.NewCreateAgentCommandHandler(factory).Handle(t.Context(), commands.CreateAgentCommand{})

	require.ErrorIs(t, err, commands.ErrCreateAgentCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestNewUpdateAgentCommand_HalfALocation(t *testing.T) {
	_, err := commands.NewUpdateAgentCommand(kernel.NewUUID(), commands.AgentChanges{Latitude: ptr(12.97)})
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = commands.NewUpdateAgentCommand(kernel.NewUUID(), commands.AgentChanges{Longitude: ptr(77.59)})
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestUpdateAgentCommandHandler_Handle_Profile(t *testing.T) {
	ctx := t.Context()
	a := newAgent(t, agent.Available)
	cmd, err := commands.NewUpdateAgentCommand(a.ID(), commands.AgentChanges{
		Name:        ptr("Ravi K."),
		Phone:       ptr("9123456780"),
		Email:       ptr("ravi@example.com"),
		Latitude:    ptr(12.9716),
		Longitude:   ptr(77.5946),
		VehicleType: ptr("scooter"),
	})
	require.NoError(t, err)

	agentRepo, uow, factory := expectAgentUoW(t)
	id := a.ID()
	agentRepo.On("GetForUpdate", ctx, a.ID()).Return(a, nil).Once()
	agentRepo.On("PhoneTaken", ctx, mock.AnythingOfType("kernel.Phone"), &id).Return(false, nil).Once()
	agentRepo.On("Update", ctx, a).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()

	updated, err := commands.NewUpdateAgentCommandHandler(factory).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, "Ravi K.", updated.Name())
	assert.Equal(t, "9123456780", updated.Phone().String())
	require.NotNil(t, updated.Email())
	assert.Equal(t, "ravi@example.com", updated.Email().String())
	require.NotNil(t, updated.Location())
	assert.InDelta(t, 12.9716, updated.Location().Latitude(), 1e-9)
	assert.NotNil(t, updated.LastLocationUpdate())
	assert.Equal(t, "scooter", updated.Vehicle().Type())
	agentRepo.AssertExpectations(t)
}

func TestUpdateAgentCommandHandler_Handle_SamePhoneSkipsUniquenessCheck(t *testing.T) {
	ctx := t.Context()
	a := newAgent(t, agent.Offline)
	cmd, err := commands.NewUpdateAgentCommand(a.ID(), commands.AgentChanges{
		Phone: ptr(a.Phone().String()),
		Email: ptr(""),
	})
	require.NoError(t, err)

	agentRepo, uow, factory := expectAgentUoW(t)
	agentRepo.On("GetForUpdate", ctx, a.ID()).Return(a, nil).Once()
	agentRepo.On("Update", ctx, a).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()

	updated, err := commands.NewUpdateAgentCommandHandler(factory).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Nil(t, updated.Email())
	agentRepo.AssertNotCalled(t, "PhoneTaken", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateAgentCommandHandler_Handle_PhoneOfAnotherAgent(t *testing.T) {
	ctx := t.Context()
	a := newAgent(t, agent.Offline)
	cmd, err := commands.NewUpdateAgentCommand(a.ID(), commands.AgentChanges{Phone: ptr("9123456780")})
	require.NoError(t, err)

	agentRepo, _, factory := expectAgentUoW(t)
	agentRepo.On("GetForUpdate", ctx, a.ID()).Return(a, nil).Once()
	agentRepo.On("PhoneTaken", ctx, mock.Anything, mock.Anything).Return(true, nil).Once()

	_, err = commands.NewUpdateAgentCommandHandler(factory).Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Equal(t, "9876543210", a.Phone().String())
	agentRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateAgentCommandHandler_Handle_DeactivateBusyAgent(t *testing.T) {
	ctx := t.Context()
	a := newAgent(t, agent.Available)
	require.NoError(t, a.Reserve(testNow))
	cmd, err := commands.NewUpdateAgentCommand(a.ID(), commands.AgentChanges{IsActive: ptr(false)})
	require.NoError(t, err)

	agentRepo, _, factory := expectAgentUoW(t)
	agentRepo.On("GetForUpdate", ctx, a.ID()).Return(a, nil).Once()

	_, err = commands.NewUpdateAgentCommandHandler(factory).Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrInvalidTransition)
	assert.True(t, a.IsActive())
	agentRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateAgentCommandHandler_Handle_ActiveFlag(t *testing.T) {
	tests := []struct {
		name     string
		isActive bool
	}{
		{"keep active", true},
		{"deactivate", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()
			a := newAgent(t, agent.Offline)
			cmd, err := commands.NewUpdateAgentCommand(a.ID(), commands.AgentChanges{IsActive: ptr(tt.isActive)})
			require.NoError(t, err)

			agentRepo, uow, factory := expectAgentUoW(t)
			agentRepo.On("GetForUpdate", ctx, a.ID()).Return(a, nil).Once()
			agentRepo.On("Update", ctx, a).Return(nil).Once()
			uow.On("Commit", ctx).Return(nil).Once()

			updated, err := commands.NewUpdateAgentCommandHandler(factory).Handle(ctx, cmd)

			require.NoError(t, err)
			assert.Equal(t, tt.isActive, updated.IsActive())
		})
	}
}

func TestUpdateAgentCommandHandler_Handle_DeactivatedAgentIsNotFound(t *testing.T) {
	ctx := t.Context()
	agentID := kernel.NewUUID()
	cmd, err := commands.NewUpdateAgentCommand(agentID, commands.AgentChanges{IsActive: ptr(true)})
	require.NoError(t, err)

	agentRepo, _, factory := expectAgentUoW(t)
	agentRepo.On("GetForUpdate", ctx, agentID).
		Return(nil, errs.NewObjectNotFoundError("delivery agent", agentID.String())).Once()

	_, err = commands.NewUpdateAgentCommandHandler(factory).Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	agentRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateAgentLocationCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	a := newAgent(t, agent.Available)
	cmd, err := commands.NewUpdateAgentLocationCommand(a.ID(), 28.6139, 77.2090)
	require.NoError(t, err)

	agentRepo, uow, factory := expectAgentUoW(t)
	agentRepo.On("GetForUpdate", ctx, a.ID()).Return(a, nil).Once()
	agentRepo.On("Update", ctx, a).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()

	moved, err := commands.NewUpdateAgentLocationCommandHandler(factory).Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, moved.Location())
	assert.InDelta(t, 77.2090, moved.Location().Longitude(), 1e-9)
	assert.Equal(t, agent.Available, moved.Status())
	agentRepo.AssertExpectations(t)
}

func TestNewUpdateAgentLocationCommand_OutOfRange(t *testing.T) {
	_, err := commands.NewUpdateAgentLocationCommand(kernel.NewUUID(), 91, 0)
	require.Error(t, err)
}

func TestUpdateAgentStatusCommandHandler_Handle(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(t *testing.T) *agent.Agent
		target  agent.Status
		wantErr error
	}{
		{"go online", func(t *testing.T) *agent.Agent { return newAgent(t, agent.Offline) }, agent.Available, nil},
		{"go offline", func(t *testing.T) *agent.Agent { return newAgent(t, agent.Available) }, agent.Offline, nil},
		{"busy agent", func(t *testing.T) *agent.Agent {
			a := newAgent(t, agent.Available)
			require.NoError(t, a.Reserve(testNow))
			return a
		}, agent.Offline, errs.ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()
			a := tt.prepare(t)
			cmd, err := commands.NewUpdateAgentStatusCommand(a.ID(), tt.target)
			require.NoError(t, err)

			agentRepo, uow, factory := expectAgentUoW(t)
			agentRepo.On("GetForUpdate", ctx, a.ID()).Return(a, nil).Once()
			if tt.wantErr == nil {
				agentRepo.On("Update", ctx, a).Return(nil).Once()
				uow.On("Commit", ctx).Return(nil).Once()
			}

			got, err := commands.NewUpdateAgentStatusCommandHandler(factory).Handle(ctx, cmd)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				agentRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.target, got.Status())
			uow.AssertExpectations(t)
		})
	}
}

func TestNewUpdateAgentStatusCommand_AssignedIsReserved(t *testing.T) {
	_, err := commands.NewUpdateAgentStatusCommand(kernel.NewUUID(), agent.Assigned)
	require.True(t, errors.Is(err, agent.ErrAssignedIsReserved))
}
