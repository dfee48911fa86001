package services

import (
	"context"
	"errors"
	"testing"

	"github.com/lexal/lexal-node/pkg/mocks"
	"github.com/lexal/lexal-node/pkg/models"
	"github.com/lexal/lexal-node/pkg/nodes/lexal"
	"github.com/lexal/lexal-node/pkg/persistence"
	"github.com/lexal/lexal-node/pkg/persistence/file"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type failingErrorSaver struct {
	persistence.RunRepository
}

func (f *failingErrorSaver) SaveError(context.Context, string, string) error {
	return errors.New("unavailable")
}

func setupMockRun(t *testing.T, opts ...RunOption) (*Run, *mocks.MockRunRepository) {
	t.Helper()

	repo := &mocks.MockRunRepository{}
	p := &mocks.MockPersistence{}
	p.On("RunRepository").Return(repo)

	opts = append([]RunOption{WithLogger(discardLogger())}, opts...)

	return NewRun(setupRegistry(t), p, opts...), repo
}

func TestRun_Execute_InitialSaveFails(t *testing.T) {
	service, repo := setupMockRun(t)

	repo.On("Save", mock.Anything, mock.Anything).Return(errors.New("disk full")).Once()

	_, err := service.Execute(context.Background(), lexal.NodeTypeID, map[string]any{"str_field": "1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")

	repo.AssertNotCalled(t, "SaveResult", mock.Anything, mock.Anything, mock.Anything)
}

func TestRun_Execute_ResultSaveFallsBackToError(t *testing.T) {
	service, repo := setupMockRun(t)

	repo.On("Save", mock.Anything, mock.Anything).Return(nil)
	repo.On("SaveResult", mock.Anything, mock.Anything, map[string]any{"result": int64(2)}).
		Return(errors.New("connection reset"))
	repo.On("SaveError", mock.Anything, mock.Anything, mock.AnythingOfType("string")).Return(nil)

	run, err := service.Execute(context.Background(), lexal.NodeTypeID, map[string]any{"str_field": "1", "int_field": 1})
	require.NoError(t, err)

	assert.Equal(t, models.RunStateError, run.State)
	assert.Contains(t, run.Error, "connection reset")
	repo.AssertNumberOfCalls(t, "Save", 2)
}

func TestRun_Execute_ErrorSaveFails(t *testing.T) {
	service, repo := setupMockRun(t)

	repo.On("Save", mock.Anything, mock.Anything).Return(nil)
	repo.On("SaveError", mock.Anything, mock.Anything, lexal.DigitsRequiredMessage).Return(errors.New("unavailable"))

	_, err := service.Execute(context.Background(), lexal.NodeTypeID, map[string]any{"str_field": "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unavailable")

	repo.AssertNumberOfCalls(t, "Save", 2)
	repo.AssertCalled(t, "Save", mock.Anything, mock.MatchedBy(func(run *models.RunContext) bool {
		return run.State == models.RunStateError && run.Error == lexal.DigitsRequiredMessage
	}))
}

func TestRun_Execute_ErrorSaveFailsKeepsFinalState(t *testing.T) {
	ctx := context.Background()
	p := file.NewPersistence(t.TempDir())
	failing := &failingErrorSaver{RunRepository: p.RunRepository()}

	host := &mocks.MockPersistence{}
	host.On("RunRepository").Return(failing)

	service := NewRun(setupRegistry(t), host, WithLogger(discardLogger()))

	_, err := service.Execute(ctx, lexal.NodeTypeID, map[string]any{"str_field": "x"})
	require.Error(t, err)

	runs, err := p.RunRepository().GetByNodeType(ctx, lexal.NodeTypeID)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, models.RunStateError, runs[0].State)
}

func TestRun_Execute_PublishFailureIsNotFatal(t *testing.T) {
	bus := &mocks.MockEventBus{}
	bus.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("broker down"))

	service, repo := setupMockRun(t, WithPublisher(bus))

	repo.On("Save", mock.Anything, mock.Anything).Return(nil)
	repo.On("SaveResult", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	run, err := service.Execute(context.Background(), lexal.NodeTypeID, map[string]any{"str_field": "5"})
	require.NoError(t, err)

	assert.Equal(t, models.RunStateComplete, run.State)
	bus.AssertCalled(t, "Publish", mock.Anything, run.ID, mock.Anything)
}
