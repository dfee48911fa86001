package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/lexal/lexal-node/pkg/models"
	"github.com/lexal/lexal-node/pkg/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunRepositoryContract exercises the behaviour every persistence.RunRepository must share.
func RunRepositoryContract(t *testing.T, repo persistence.RunRepository) {
	t.Helper()

	ctx := context.Background()

	t.Run("save and get", func(t *testing.T) {
		run := CreateTestRun(WithNodeType("contract-save"))

		require.NoError(t, repo.Save(ctx, run))

		stored, err := repo.GetByID(ctx, run.ID)
		require.NoError(t, err)

		assert.Equal(t, run.ID, stored.ID)
		assert.Equal(t, run.NodeTypeID, stored.NodeTypeID)
		assert.Equal(t, models.RunStatePending, stored.State)
		assert.Equal(t, "3", stored.Properties["str_field"])
		assert.InDelta(t, 4, stored.Properties["int_field"], 0)
		assert.Equal(t, false, stored.Properties["change_field"])
		assert.True(t, run.CreatedAt.Equal(stored.CreatedAt))
	})

	t.Run("get missing run", func(t *testing.T) {
		_, err := repo.GetByID(ctx, "missing-run")
		require.Error(t, err)
		assert.True(t, persistence.IsRunNotFound(err))
	})

	t.Run("save overwrites", func(t *testing.T) {
		run := CreateTestRun(WithNodeType("contract-overwrite"))
		require.NoError(t, repo.Save(ctx, run))

		run.State = models.RunStateComplete
		run.Result = map[string]any{"result": "7"}
		require.NoError(t, repo.Save(ctx, run))

		stored, err := repo.GetByID(ctx, run.ID)
		require.NoError(t, err)
		assert.Equal(t, models.RunStateComplete, stored.State)
		assert.Equal(t, map[string]any{"result": "7"}, stored.Result)
	})

	t.Run("save result", func(t *testing.T) {
		run := CreateTestRun(WithNodeType("contract-result"))
		require.NoError(t, repo.Save(ctx, run))

		require.NoError(t, repo.SaveResult(ctx, run.ID, map[string]any{"result": 7}))

		stored, err := repo.GetByID(ctx, run.ID)
		require.NoError(t, err)
		assert.InDelta(t, 7, stored.Result["result"], 0)
		assert.Empty(t, stored.Error)
	})

	t.Run("save error drops result", func(t *testing.T) {
		run := CreateTestRun(WithNodeType("contract-error"))
		run.Result = map[string]any{"result": 1}
		require.NoError(t, repo.Save(ctx, run))

		require.NoError(t, repo.SaveError(ctx, run.ID, "bad input"))

		stored, err := repo.GetByID(ctx, run.ID)
		require.NoError(t, err)
		assert.Equal(t, "bad input", stored.Error)
		assert.Empty(t, stored.Result)
	})

	t.Run("save outcome of missing run", func(t *testing.T) {
		err := repo.SaveResult(ctx, "missing-run", map[string]any{"result": 1})
		assert.True(t, persistence.IsRunNotFound(err))

		err = repo.SaveError(ctx, "missing-run", "boom")
		assert.True(t, persistence.IsRunNotFound(err))
	})

	t.Run("get by node type", func(t *testing.T) {
		base := time.Now().UTC().Truncate(time.Millisecond)
		first := CreateTestRun(WithNodeType("contract-list"), WithCreatedAt(base))
		second := CreateTestRun(WithNodeType("contract-list"), WithCreatedAt(base.Add(time.Second)))
		other := CreateTestRun(WithNodeType("contract-other"))

		require.NoError(t, repo.Save(ctx, second))
		require.NoError(t, repo.Save(ctx, first))
		require.NoError(t, repo.Save(ctx, other))

		runs, err := repo.GetByNodeType(ctx, "contract-list")
		require.NoError(t, err)
		require.Len(t, runs, 2)
		assert.Equal(t, second.ID, runs[0].ID)
		assert.Equal(t, first.ID, runs[1].ID)

		runs, err = repo.GetByNodeType(ctx, "contract-none")
		require.NoError(t, err)
		assert.Empty(t, runs)
	})
}
