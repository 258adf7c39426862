package csvio

import (
	"io"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TaoVonQi/tx-engine/account"
	"github.com/TaoVonQi/tx-engine/engine"
)

func drain(t *testing.T, r *Reader) []engine.Record {
	t.Helper()

	var recs []engine.Record

	for {
		rec, err := r.Next()
		if err == io.EOF {
			return recs
		}

		require.NoError(t, err)
		recs = append(recs, rec)
	}
}

func TestReaderDecodesRecordStream(t *testing.T) {
	input := strings.Join([]string{
		"type,client,tx,amount",
		"deposit,1,1,1.0",
		"deposit, 2, 2, 2.0",
		"withdrawal,1,3,0.5",
		"dispute,1,1,",
		"resolve,1,1,",
		"chargeback,1,1,",
	}, "\n")

	r, err := NewReader(strings.NewReader(input))
	require.NoError(t, err)

	recs := drain(t, r)
	require.Len(t, recs, 6)

	assert.Equal(t, engine.KindDeposit, recs[0].Kind)
	assert.Equal(t, uint16(1), recs[0].Client)
	assert.Equal(t, uint32(1), recs[0].Tx)
	require.NotNil(t, recs[0].Amount)
	assert.True(t, recs[0].Amount.Equal(decimal.RequireFromString("1.0")))

	// Leading whitespace in fields is tolerated.
	assert.Equal(t, uint16(2), recs[1].Client)
	require.NotNil(t, recs[1].Amount)
	assert.True(t, recs[1].Amount.Equal(decimal.RequireFromString("2.0")))

	assert.Equal(t, engine.KindWithdrawal, recs[2].Kind)

	for i, kind := range []engine.Kind{engine.KindDispute, engine.KindResolve, engine.KindChargeback} {
		rec := recs[3+i]
		assert.Equal(t, kind, rec.Kind)
		assert.Nil(t, rec.Amount)
		assert.Equal(t, uint32(1), rec.Tx)
	}
}

func TestReaderEmptyStream(t *testing.T) {
	r, err := NewReader(strings.NewReader(""))
	require.NoError(t, err)

	_, err = r.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestReaderHeaderOnly(t *testing.T) {
	r, err := NewReader(strings.NewReader("type,client,tx,amount\n"))
	require.NoError(t, err)

	_, err = r.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestReaderSchemaViolationsAreFatal(t *testing.T) {
	tests := []struct {
		name string
		row  string
	}{
		{name: "unknown kind", row: "refund,1,1,1.0"},
		{name: "deposit missing amount", row: "deposit,1,1,"},
		{name: "negative amount", row: "deposit,1,1,-2.0"},
		{name: "unparsable amount", row: "deposit,1,1,ten"},
		{name: "non-numeric client", row: "deposit,abc,1,1.0"},
		{name: "client out of range", row: "deposit,70000,1,1.0"},
		{name: "missing field", row: "dispute,1,1"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r, err := NewReader(strings.NewReader("type,client,tx,amount\n" + tt.row + "\n"))
			require.NoError(t, err)

			_, err = r.Next()
			require.Error(t, err)
			assert.NotErrorIs(t, err, io.EOF)
		})
	}
}

func TestWriteReport(t *testing.T) {
	accounts := []account.Account{
		{
			Client:    1,
			Available: decimal.RequireFromString("1.5"),
			Held:      decimal.Zero,
		},
		{
			Client:    2,
			Available: decimal.RequireFromString("-8"),
			Held:      decimal.Zero,
			Locked:    true,
		},
	}

	var sb strings.Builder
	require.NoError(t, WriteReport(&sb, accounts))

	expected := strings.Join([]string{
		"client,available,held,total,locked",
		"1,1.5000,0.0000,1.5000,false",
		"2,-8.0000,0.0000,-8.0000,true",
		"",
	}, "\n")
	assert.Equal(t, expected, sb.String())
}

func TestWriteReportEmptySnapshotStillWritesHeader(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, WriteReport(&sb, nil))

	assert.Equal(t, "client,available,held,total,locked\n", sb.String())
}
