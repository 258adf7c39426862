// Package csvio reads transaction record streams and writes account reports
// in CSV form.
package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jszwec/csvutil"

	"github.com/TaoVonQi/tx-engine/engine"
	"github.com/TaoVonQi/tx-engine/money"
)

// row mirrors the input schema: type,client,tx,amount. The amount column is
// empty for dispute, resolve, and chargeback rows.
type row struct {
	Type   string `csv:"type"`
	Client uint16 `csv:"client"`
	Tx     uint32 `csv:"tx"`
	Amount string `csv:"amount,omitempty"`
}

// Reader decodes CSV rows into typed records. Any row that cannot
// materialize the schema is a fatal error for the whole run; the engine
// treats a Reader error as grounds to abort without a report.
type Reader struct {
	dec *csvutil.Decoder
}

// NewReader wraps r, consuming the header line. An empty stream yields a
// reader that reports io.EOF immediately.
func NewReader(r io.Reader) (*Reader, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	dec, err := csvutil.NewDecoder(cr)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return &Reader{}, nil
		}

		return nil, fmt.Errorf("read header: %w", err)
	}

	return &Reader{dec: dec}, nil
}

// Next returns the next record, io.EOF at end of stream, or a fatal schema
// error.
func (r *Reader) Next() (engine.Record, error) {
	if r.dec == nil {
		return engine.Record{}, io.EOF
	}

	var raw row
	if err := r.dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return engine.Record{}, io.EOF
		}

		return engine.Record{}, fmt.Errorf("decode record: %w", err)
	}

	return toRecord(raw)
}

func toRecord(raw row) (engine.Record, error) {
	rec := engine.Record{Client: raw.Client, Tx: raw.Tx}

	switch kind := engine.Kind(strings.TrimSpace(raw.Type)); kind {
	case engine.KindDeposit, engine.KindWithdrawal:
		amount, err := money.Parse(raw.Amount)
		if err != nil {
			return engine.Record{}, fmt.Errorf("%s tx %d: %w", kind, raw.Tx, err)
		}

		rec.Kind = kind
		rec.Amount = &amount
	case engine.KindDispute, engine.KindResolve, engine.KindChargeback:
		// The amount column is ignored for the dispute family; the
		// referenced transaction carries the amount.
		rec.Kind = kind
	default:
		return engine.Record{}, fmt.Errorf("unknown transaction type %q", raw.Type)
	}

	return rec, nil
}
