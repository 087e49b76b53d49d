package performance

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nickthelegend/molfi-sub001/internal/api/models"
	"github.com/nickthelegend/molfi-sub001/internal/api/tests/testutils"
)

// BenchmarkOrderSubmissionThroughput measures orders per second
func BenchmarkOrderSubmissionThroughput(b *testing.B) {
	ts := testutils.NewTestServer(b)
	defer ts.Close()

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		price := fmt.Sprintf("%d.%02d", 100+i%100, i%100)
		order := testutils.NewLimitBuyOrder("user", testutils.PairBTC, price, "10")
		resp := ts.Post("/api/v1/orders", order)
		require.Equal(b, 200, resp.StatusCode)
		resp.Body.Close()
	}

	ordersPerSec := float64(b.N) / b.Elapsed().Seconds()
	b.ReportMetric(ordersPerSec, "orders/sec")
}

// BenchmarkMarketOrderExecution measures market order matching speed
func BenchmarkMarketOrderExecution(b *testing.B) {
	ts := testutils.NewTestServer(b)
	defer ts.Close()

	// Pre-populate orderbook with liquidity
	for i := 0; i < 100; i++ {
		price := fmt.Sprintf("%d", 100+i)
		resp := ts.Post("/api/v1/orders", testutils.NewLimitSellOrder("alice", testutils.PairBTC, price, "1000000"))
		resp.Body.Close()
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		resp := ts.Post("/api/v1/orders", testutils.NewMarketBuyOrder("bob", testutils.PairBTC, "5"))
		require.Equal(b, 200, resp.StatusCode)
		resp.Body.Close()
	}

	executionsPerSec := float64(b.N) / b.Elapsed().Seconds()
	b.ReportMetric(executionsPerSec, "executions/sec")
}

// BenchmarkOrderBookSnapshot measures orderbook retrieval speed
func BenchmarkOrderBookSnapshot(b *testing.B) {
	ts := testutils.NewTestServer(b)
	defer ts.Close()

	// Populate orderbook with 50 levels each side
	for i := 0; i < 50; i++ {
		bidPrice := fmt.Sprintf("%d", 99-i)
		askPrice := fmt.Sprintf("%d", 101+i)
		ts.Post("/api/v1/orders", testutils.NewLimitBuyOrder("alice", testutils.PairBTC, bidPrice, "10")).Body.Close()
		ts.Post("/api/v1/orders", testutils.NewLimitSellOrder("bob", testutils.PairBTC, askPrice, "10")).Body.Close()
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		resp := ts.Get("/api/v1/orderbook?pair=" + testutils.PairBTC + "&depth=10")
		require.Equal(b, 200, resp.StatusCode)
		resp.Body.Close()
	}

	snapshotsPerSec := float64(b.N) / b.Elapsed().Seconds()
	b.ReportMetric(snapshotsPerSec, "snapshots/sec")
}

// BenchmarkBatchOrderSubmission measures batch order throughput
func BenchmarkBatchOrderSubmission(b *testing.B) {
	ts := testutils.NewTestServer(b)
	defer ts.Close()

	// Create batch of 10 resting orders
	orders := make([]models.SubmitOrderRequest, 10)
	for i := 0; i < 10; i++ {
		orders[i] = testutils.NewLimitBuyOrder(fmt.Sprintf("user%d", i), testutils.PairBTC, "100", "10")
	}
	batch := testutils.NewBatchRequest(orders...)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		resp := ts.Post("/api/v1/orders/batch", batch)
		require.Equal(b, 200, resp.StatusCode)
		resp.Body.Close()
	}

	batchesPerSec := float64(b.N) / b.Elapsed().Seconds()
	b.ReportMetric(batchesPerSec, "batches/sec")
}

// BenchmarkConcurrentSubmissions measures throughput under parallel load
// split across two pairs
func BenchmarkConcurrentSubmissions(b *testing.B) {
	ts := testutils.NewTestServer(b)
	defer ts.Close()

	var counter atomic.Uint64
	var wg sync.WaitGroup

	b.ResetTimer()
	b.ReportAllocs()

	workers := 8
	perWorker := b.N / workers
	if perWorker == 0 {
		perWorker = 1
	}

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			pair := testutils.PairBTC
			if w%2 == 0 {
				pair = testutils.PairETH
			}
			for i := 0; i < perWorker; i++ {
				n := counter.Add(1)
				price := fmt.Sprintf("%d", 100+n%100)
				resp := ts.Post("/api/v1/orders", testutils.NewLimitBuyOrder("user", pair, price, "1"))
				resp.Body.Close()
			}
		}(w)
	}
	wg.Wait()

	ordersPerSec := float64(counter.Load()) / b.Elapsed().Seconds()
	b.ReportMetric(ordersPerSec, "orders/sec")
}
