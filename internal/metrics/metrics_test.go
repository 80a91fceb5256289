package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorders(t *testing.T) {
	t.Run("transactions by kind and category", func(t *testing.T) {
		before := testutil.ToFloat64(transactionsRecorded.WithLabelValues("expense", "Food"))
		RecordTransaction("expense", "Food")
		RecordTransaction("expense", "Food")
		assert.Equal(t, before+2, testutil.ToFloat64(transactionsRecorded.WithLabelValues("expense", "Food")))
	})

	t.Run("empty category is labelled none", func(t *testing.T) {
		before := testutil.ToFloat64(transactionsRecorded.WithLabelValues("transfer", "none"))
		RecordTransaction("transfer", "")
		assert.Equal(t, before+1, testutil.ToFloat64(transactionsRecorded.WithLabelValues("transfer", "none")))
	})

	t.Run("asset purchases split by card", func(t *testing.T) {
		before := testutil.ToFloat64(assetPurchases.WithLabelValues("Gold", "merged"))
		RecordAssetPurchase("Gold", true)
		assert.Equal(t, before+1, testutil.ToFloat64(assetPurchases.WithLabelValues("Gold", "merged")))
	})

	t.Run("sheet calls by outcome", func(t *testing.T) {
		before := testutil.ToFloat64(sheetCalls.WithLabelValues("append", "false"))
		RecordSheetCall("append", 0, false)
		assert.Equal(t, before+1, testutil.ToFloat64(sheetCalls.WithLabelValues("append", "false")))
	})
}

func TestHandler(t *testing.T) {
	RecordCorrection()
	RecordRPC("/ourfinance.v1.LedgerService/ListAccounts", "ok", 20*time.Millisecond)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "ourfinance_ledger_balance_corrections_total")
	assert.Contains(t, string(body), `ourfinance_rpc_requests_total{code="ok",procedure="/ourfinance.v1.LedgerService/ListAccounts"}`)
}
