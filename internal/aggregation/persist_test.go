package aggregation

import (
	"context"
	"errors"
	"testing"

	coreagg "github.com/aevon-lab/costroll/internal/core/aggregation"
	"github.com/aevon-lab/costroll/internal/core/costkey"
	"github.com/aevon-lab/costroll/internal/core/storage"
	aggregationmocks "github.com/aevon-lab/costroll/internal/mocks/aggregation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func fullTable() *coreagg.Table {
	table := coreagg.NewTable()
	table.Add(triple(costkey.Env, "e-1", "5.0"))
	table.Add(triple(costkey.Env, "e-1", "2.25"))
	table.Add(triple(costkey.Farm, "f-2", "1"))
	table.Add(triple(costkey.FarmRole, "fr-7", "10.5"))
	table.Add(triple(costkey.Server, "srv-3", "10.5"))
	table.Add(triple(costkey.Server, "srv-1", "0.5"))
	return table
}

func TestPersister_WritesEachTypeInOrdinalOrder(t *testing.T) {
	store := aggregationmocks.NewResultWriter(t)
	store.EXPECT().Ping(mock.Anything).Return(nil).Once()

	var order []costkey.ObjectType
	written := make(map[costkey.ObjectType][]coreagg.Entry)
	store.EXPECT().
		WriteTotals(mock.Anything, mock.Anything, mock.Anything).
		Run(func(_ context.Context, ot costkey.ObjectType, entries []coreagg.Entry) {
			order = append(order, ot)
			written[ot] = entries
		}).
		Return(nil).
		Times(4)

	result := NewPersister(store, nil).Persist(context.Background(), fullTable())

	require.NoError(t, result.Err)
	assert.Equal(t, costkey.ObjectTypes(), order)
	assert.Equal(t, int64(5), result.RowsWritten)
	require.Len(t, result.Outcomes, 4)
	for _, outcome := range result.Outcomes {
		assert.NoError(t, outcome.Err, outcome.Type.String())
	}

	require.Len(t, written[costkey.Env], 1)
	assert.Equal(t, "7.25", written[costkey.Env][0].Cost.String())
	require.Len(t, written[costkey.Server], 2)
	assert.Equal(t, "srv-1", written[costkey.Server][0].ID)
	assert.Equal(t, "srv-3", written[costkey.Server][1].ID)
}

func TestPersister_SkipsEmptyTypes(t *testing.T) {
	table := coreagg.NewTable()
	table.Add(triple(costkey.Server, "srv-1", "2"))

	store := aggregationmocks.NewResultWriter(t)
	store.EXPECT().Ping(mock.Anything).Return(nil).Once()
	store.EXPECT().WriteTotals(mock.Anything, costkey.Server, mock.Anything).Return(nil).Once()

	result := NewPersister(store, nil).Persist(context.Background(), table)

	require.NoError(t, result.Err)
	require.Len(t, result.Outcomes, 1)
	assert.Equal(t, costkey.Server, result.Outcomes[0].Type)
}

func TestPersister_TransactionFailureIsolatedToOneType(t *testing.T) {
	txErr := &storage.TransactionError{ObjectType: costkey.Farm, Err: errors.New("deadlock detected")}

	store := aggregationmocks.NewResultWriter(t)
	store.EXPECT().Ping(mock.Anything).Return(nil).Once()
	store.EXPECT().WriteTotals(mock.Anything, costkey.Env, mock.Anything).Return(nil).Once()
	store.EXPECT().WriteTotals(mock.Anything, costkey.Farm, mock.Anything).Return(txErr).Once()
	store.EXPECT().WriteTotals(mock.Anything, costkey.FarmRole, mock.Anything).Return(nil).Once()
	store.EXPECT().WriteTotals(mock.Anything, costkey.Server, mock.Anything).Return(nil).Once()

	result := NewPersister(store, nil).Persist(context.Background(), fullTable())

	require.NoError(t, result.Err)
	assert.Equal(t, int64(4), result.RowsWritten)
	require.Len(t, result.Outcomes, 4)
	assert.ErrorIs(t, result.Outcomes[1].Err, txErr)
	assert.NoError(t, result.Outcomes[0].Err)
	assert.NoError(t, result.Outcomes[2].Err)
	assert.NoError(t, result.Outcomes[3].Err)
}

func TestPersister_PingFailureIsFatal(t *testing.T) {
	store := aggregationmocks.NewResultWriter(t)
	store.EXPECT().Ping(mock.Anything).Return(errors.New("connection refused")).Once()

	result := NewPersister(store, nil).Persist(context.Background(), fullTable())

	require.Error(t, result.Err)
	assert.True(t, storage.IsStoreUnavailable(result.Err))
	assert.Empty(t, result.Outcomes)
	assert.Zero(t, result.RowsWritten)
}

func TestPersister_CancelledPingIsNotStoreUnavailable(t *testing.T) {
	store := aggregationmocks.NewResultWriter(t)
	store.EXPECT().Ping(mock.Anything).Return(context.Canceled).Once()

	result := NewPersister(store, nil).Persist(context.Background(), fullTable())

	require.ErrorIs(t, result.Err, context.Canceled)
	assert.False(t, storage.IsStoreUnavailable(result.Err))
	assert.Empty(t, result.Outcomes)
	assert.Zero(t, result.RowsWritten)
}

func TestPersister_StoreLostMidWriteAbortsRemainingTypes(t *testing.T) {
	lost := &storage.StoreUnavailableError{Op: "commit", Err: errors.New("bad connection")}

	store := aggregationmocks.NewResultWriter(t)
	store.EXPECT().Ping(mock.Anything).Return(nil).Once()
	store.EXPECT().WriteTotals(mock.Anything, costkey.Env, mock.Anything).Return(nil).Once()
	store.EXPECT().WriteTotals(mock.Anything, costkey.Farm, mock.Anything).Return(lost).Once()

	result := NewPersister(store, nil).Persist(context.Background(), fullTable())

	require.ErrorIs(t, result.Err, lost)
	assert.Equal(t, int64(1), result.RowsWritten)
	require.Len(t, result.Outcomes, 4)
	assert.NoError(t, result.Outcomes[0].Err)
	assert.ErrorIs(t, result.Outcomes[1].Err, lost)
	assert.ErrorIs(t, result.Outcomes[2].Err, errAborted)
	assert.ErrorIs(t, result.Outcomes[3].Err, errAborted)
}
