package clientapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tellor-io/layerprof/pkg/spec"
)

func newTestClient(t *testing.T, handler http.Handler) *APIClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewAPIClient(
		context.Background(),
		server.URL,
		WithRESTEndpoint(server.URL),
		WithQueryTimeout(5*time.Second),
	)
	require.NoError(t, err)
	return client
}

func writeJSON(t *testing.T, w http.ResponseWriter, body string) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	_, err := w.Write([]byte(body))
	require.NoError(t, err)
}

func statusBody(height int64) string {
	return fmt.Sprintf(`{"result": {
		"node_info": {"network": "layertest-4"},
		"sync_info": {"latest_block_height": "%d"}}}`, height)
}

func blockBody(height int64, ts string, txs string) string {
	return fmt.Sprintf(`{"result": {"block": {
		"header": {"height": "%d", "time": "%s"},
		"data": {"txs": [%s]}}}}`, height, ts, txs)
}

func TestNewAPIClient(t *testing.T) {
	_, err := NewAPIClient(context.Background(), "")
	assert.Error(t, err)

	_, err = NewAPIClient(context.Background(), "http://localhost:26657", WithQueryTimeout(0))
	assert.Error(t, err)

	client, err := NewAPIClient(context.Background(), "http://localhost:26657/")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:26657", client.rpcEndpoint)

	_, err = client.restURL("/cosmos/staking/v1beta1/validators")
	assert.Error(t, err, "rest queries need an explicit rest endpoint")
}

func TestChainID(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, statusBody(100))
	})

	client := newTestClient(t, mux)
	chainID, err := client.ChainID()
	require.NoError(t, err)
	assert.Equal(t, "layertest-4", chainID)
}

func TestBlockHeightAndTime(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, statusBody(42))
	})
	mux.HandleFunc("/block", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "42", r.URL.Query().Get("height"))
		writeJSON(t, w, blockBody(42, "2026-08-24T12:00:00Z", ""))
	})

	client := newTestClient(t, mux)
	height, blockTime, err := client.BlockHeightAndTime()
	require.NoError(t, err)
	assert.Equal(t, int64(42), height)
	assert.Equal(t, time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC), blockTime)
}

func TestGetJSONErrorStatus(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "node is catching up", http.StatusServiceUnavailable)
	})

	client := newTestClient(t, mux)
	_, err := client.ChainID()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestValidators(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/cosmos/staking/v1beta1/validators", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, `{"validators": [
			{"tokens": "3000000", "jailed": false, "status": "BOND_STATUS_BONDED"},
			{"tokens": "1000000", "jailed": false, "status": "BOND_STATUS_BONDED"},
			{"tokens": "500000", "jailed": true, "status": "BOND_STATUS_BONDED"},
			{"tokens": "200000", "jailed": false, "status": "BOND_STATUS_UNBONDING"},
			{"tokens": "100000", "jailed": false, "status": "BOND_STATUS_UNBONDED"}
		]}`)
	})

	client := newTestClient(t, mux)
	summary, err := client.Validators()
	require.NoError(t, err)

	assert.Equal(t, float64(4_000_000), summary.TotalActiveTokens)
	assert.Equal(t, 2, summary.ActiveCount)
	assert.Equal(t, []float64{3_000_000, 1_000_000}, summary.ActiveStakes)
	assert.Equal(t, float64(500_000), summary.TotalJailedTokens)
	assert.Equal(t, 1, summary.JailedCount)
	assert.Equal(t, float64(200_000), summary.TotalUnbondingTokens)
	assert.Equal(t, 1, summary.UnbondingCount)
	assert.Equal(t, float64(100_000), summary.TotalUnbondedTokens)
	assert.Equal(t, 1, summary.UnbondedCount)
}

func TestReporters(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/tellor-io/layer/reporter/reporters", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, `{"reporters": [
			{"address": "tellor1active", "power": "150",
			 "metadata": {"moniker": "alpha", "commission_rate": "250000000000000000", "jailed": false}},
			{"address": "tellor1idle", "power": "0",
			 "metadata": {"moniker": "beta", "commission_rate": "0.1", "jailed": false}},
			{"address": "tellor1jailed", "power": "20",
			 "metadata": {"moniker": "gamma", "commission_rate": "", "jailed": true}},
			{"address": "tellor1nopower",
			 "metadata": {"moniker": "delta", "commission_rate": "0.05", "jailed": false}}
		]}`)
	})

	client := newTestClient(t, mux)
	set, err := client.Reporters()
	require.NoError(t, err)

	require.Len(t, set.Active, 1)
	assert.Equal(t, int64(150*spec.LoyaPerTRB), set.Active[0].Power)
	assert.InDelta(t, 0.25, set.Active[0].CommissionRate, 1e-12)

	require.Len(t, set.Inactive, 2)
	assert.InDelta(t, 0.1, set.Inactive[0].CommissionRate, 1e-12)
	assert.Equal(t, int64(0), set.Inactive[1].Power, "missing power field counts as inactive")

	require.Len(t, set.Jailed, 1)
	assert.Equal(t, "tellor1jailed", set.Jailed[0].Address)
}

func TestParseCommissionRate(t *testing.T) {
	tests := []struct {
		name string
		rate string
		want float64
	}{
		{name: "empty", rate: "", want: 0},
		{name: "plain decimal", rate: "0.25", want: 0.25},
		{name: "fixed point", rate: "250000000000000000", want: 0.25},
		{name: "fixed point full", rate: "1000000000000000000", want: 1.0},
		{name: "garbage", rate: "abc", want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, parseCommissionRate(tt.rate), 1e-12)
		})
	}
}

func TestMinimumGasPrice(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/cosmos/globalfee/v1beta1/minimum_gas_prices", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, `{"minimum_gas_prices": [
			{"denom": "uatom", "amount": "0.5"},
			{"denom": "loya", "amount": "0.000025"}
		]}`)
	})

	client := newTestClient(t, mux)
	price, err := client.MinimumGasPrice()
	require.NoError(t, err)
	assert.InDelta(t, 0.000025, price, 1e-12)
}

func TestMintedRewardsAtHeight(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/block_results", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, `{"result": {
			"txs_results": [],
			"finalize_block_events": [
				{"type": "inflationary_rewards_distributed",
				 "attributes": [{"key": "total_amount", "value": "3401loya"}]},
				{"type": "extra_rewards_distributed",
				 "attributes": [{"key": "total_amount", "value": "99loya"}]},
				{"type": "commission", "attributes": [{"key": "amount", "value": "12loya"}]}
			]}}`)
	})

	client := newTestClient(t, mux)
	minted, err := client.MintedRewardsAtHeight(1000)
	require.NoError(t, err)
	assert.Equal(t, float64(3401), minted.Inflationary)
	assert.Equal(t, float64(99), minted.Extra)
	assert.Equal(t, float64(3500), minted.Total())
}

func TestSampleMintedRewards(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/block_results", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, `{"result": {
			"txs_results": [],
			"finalize_block_events": [
				{"type": "inflationary_rewards_distributed",
				 "attributes": [{"key": "total_amount", "value": "3400loya"}]}
			]}}`)
	})

	client := newTestClient(t, mux)
	sample, err := client.SampleMintedRewards(100, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), sample.BlocksSampled)
	assert.Equal(t, float64(17000), sample.TotalLoya)
	assert.Equal(t, float64(17000), sample.InflationaryLoya)
	assert.Equal(t, float64(0), sample.ExtraLoya)
	assert.InDelta(t, 3400, sample.AvgPerBlock(), 1e-9)
}

func TestSampleRecentFees(t *testing.T) {
	// tx payload that carries a bech32 address in its raw bytes
	rawTx := "c2VuZGVyOiB0ZWxsb3IxcW1hNG43cW15ZGZqNW1xNnhzNDBzbTY2bXJnNG04djJoNXQ3YzcgbWVtbw=="

	mux := http.NewServeMux()
	mux.HandleFunc("/block", func(w http.ResponseWriter, r *http.Request) {
		height := r.URL.Query().Get("height")
		if height == "100" {
			writeJSON(t, w, blockBody(100, "2026-08-24T12:00:00Z", fmt.Sprintf("%q", rawTx)))
			return
		}
		writeJSON(t, w, blockBody(99, "2026-08-24T11:59:58Z", ""))
	})
	mux.HandleFunc("/block_results", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, `{"result": {
			"txs_results": [
				{"gas_wanted": "200000", "gas_used": "150000",
				 "events": [{"type": "tx", "attributes": [{"key": "fee", "value": "5000loya"}]}]}
			],
			"finalize_block_events": []}}`)
	})

	client := newTestClient(t, mux)
	sample, err := client.SampleRecentFees(100, 20, 0.000025)
	require.NoError(t, err)

	require.Len(t, sample.Txs, 1)
	tx := sample.Txs[0]
	assert.Equal(t, int64(100), tx.Height)
	assert.Equal(t, "tellor1qma4n7qmydfj5mq6xs40sm66mrg4m8v2h5t7c7", tx.Sender)
	assert.Equal(t, int64(200000), tx.GasWanted)
	assert.Equal(t, int64(150000), tx.GasUsed)
	assert.Equal(t, float64(5000), tx.FeeLoya)

	assert.Equal(t, float64(200000), sample.AvgGasWanted)
	assert.Equal(t, float64(150000), sample.AvgGasUsed)
	assert.Equal(t, float64(5000), sample.AvgFeeLoya)
	assert.InDelta(t, 150000*0.000025, sample.AvgMinCost, 1e-9)
}

func TestSampleBlockTime(t *testing.T) {
	heights := []int64{100, 110}
	times := []string{"2026-08-24T12:00:00Z", "2026-08-24T12:00:20Z"}
	call := 0

	mux := http.NewServeMux()
	mux.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, statusBody(heights[call]))
	})
	mux.HandleFunc("/block", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, blockBody(heights[call], times[call], ""))
		call++
	})

	client := newTestClient(t, mux)
	sample, err := client.SampleBlockTime(10 * time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, int64(10), sample.BlockDiff)
	assert.InDelta(t, 2.0, sample.AvgBlockTime, 1e-9)
	assert.InDelta(t, 20.0, sample.ElapsedSeconds, 1e-9)
}

func TestSampleBlockTimeNoProgress(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, statusBody(100))
	})
	mux.HandleFunc("/block", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, blockBody(100, "2026-08-24T12:00:00Z", ""))
	})

	client := newTestClient(t, mux)
	_, err := client.SampleBlockTime(10 * time.Millisecond)
	assert.Error(t, err)
}
