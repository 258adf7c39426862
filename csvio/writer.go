package csvio

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/jszwec/csvutil"

	"github.com/TaoVonQi/tx-engine/account"
	"github.com/TaoVonQi/tx-engine/money"
)

// reportRow is the output schema: client,available,held,total,locked.
type reportRow struct {
	Client    uint16 `csv:"client"`
	Available string `csv:"available"`
	Held      string `csv:"held"`
	Total     string `csv:"total"`
	Locked    bool   `csv:"locked"`
}

// WriteReport renders the final account states to w, one row per client in
// snapshot order, decimals at a fixed four-digit fractional scale.
func WriteReport(w io.Writer, accounts []account.Account) error {
	cw := csv.NewWriter(w)
	enc := csvutil.NewEncoder(cw)

	if err := enc.EncodeHeader(reportRow{}); err != nil {
		return fmt.Errorf("write report header: %w", err)
	}

	for _, a := range accounts {
		r := reportRow{
			Client:    a.Client,
			Available: money.Format(a.Available),
			Held:      money.Format(a.Held),
			Total:     money.Format(a.Total()),
			Locked:    a.Locked,
		}
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("write report row for client %d: %w", a.Client, err)
		}
	}

	cw.Flush()

	return cw.Error()
}
