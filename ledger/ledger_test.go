package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordRejectsDuplicateIDs(t *testing.T) {
	l := New()

	entry := Entry{ID: 1, Client: 7, Kind: KindDeposit, Amount: decimal.NewFromInt(10), Status: StatusNormal}
	require.NoError(t, l.Record(entry))

	err := l.Record(Entry{ID: 1, Client: 8, Kind: KindWithdrawal, Amount: decimal.NewFromInt(2), Status: StatusNormal})
	require.ErrorIs(t, err, ErrDuplicateTx)

	// The original entry is untouched by the rejected insert.
	got, ok := l.Get(1)
	require.True(t, ok)
	assert.Equal(t, entry, got)
}

func TestGetReturnsCopies(t *testing.T) {
	l := New()

	require.NoError(t, l.Record(Entry{ID: 1, Client: 1, Kind: KindDeposit, Amount: decimal.NewFromInt(5), Status: StatusNormal}))

	got, ok := l.Get(1)
	require.True(t, ok)

	got.Status = StatusChargedBack
	got.Client = 99

	stored, ok := l.Get(1)
	require.True(t, ok)
	assert.Equal(t, StatusNormal, stored.Status)
	assert.Equal(t, uint16(1), stored.Client)
}

func TestGetUnknownID(t *testing.T) {
	l := New()

	_, ok := l.Get(42)
	assert.False(t, ok)
}

func TestMarkUpdatesOnlyStatus(t *testing.T) {
	l := New()

	entry := Entry{ID: 3, Client: 2, Kind: KindDeposit, Amount: decimal.NewFromInt(4), Status: StatusNormal}
	require.NoError(t, l.Record(entry))

	require.NoError(t, l.Mark(3, StatusDisputed))

	got, ok := l.Get(3)
	require.True(t, ok)
	assert.Equal(t, StatusDisputed, got.Status)
	assert.Equal(t, entry.Client, got.Client)
	assert.Equal(t, entry.Kind, got.Kind)
	assert.True(t, got.Amount.Equal(entry.Amount))
}

func TestMarkUnknownID(t *testing.T) {
	l := New()

	assert.ErrorIs(t, l.Mark(42, StatusDisputed), ErrTxNotFound)
}
