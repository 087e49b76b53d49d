package matching

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nickthelegend/molfi-sub001/internal/storage"
	"github.com/nickthelegend/molfi-sub001/internal/types"
)

// DefaultTapeCapacity is how many executed trades each pair retains
const DefaultTapeCapacity = 100

// RemainderPolicy decides what happens to the unfilled remainder of a market
// order once the opposite side runs out of liquidity.
type RemainderPolicy int

const (
	// DropRemainder executes whatever liquidity is available and silently
	// drops the rest; market orders never rest.
	DropRemainder RemainderPolicy = iota
	// RejectUnfilled refuses the whole submission up front unless the
	// opposite side can fully fill it. Nothing is mutated on rejection.
	RejectUnfilled
)

// ParseRemainderPolicy maps a config string to a RemainderPolicy
func ParseRemainderPolicy(s string) (RemainderPolicy, error) {
	switch s {
	case "drop":
		return DropRemainder, nil
	case "reject":
		return RejectUnfilled, nil
	default:
		return DropRemainder, fmt.Errorf("unknown market remainder policy: %q", s)
	}
}

// Config carries everything the engine needs at construction time. The pair
// set is fixed for the life of the engine.
type Config struct {
	Pairs           []string
	TapeCapacity    int
	RemainderPolicy RemainderPolicy
	Clock           func() time.Time
}

// SubmitRequest is one order submission as handed to the engine
type SubmitRequest struct {
	Trader    string
	Agent     string
	Pair      string
	OrderType types.OrderType
	Side      types.SideType
	Price     decimal.Decimal
	Size      decimal.Decimal
}

// DepthSnapshot is a point-in-time aggregated view of one pair's book.
// LastTradePrice is nil until the pair's first trade.
type DepthSnapshot struct {
	Pair           string           `json:"pair"`
	Bids           []PriceLevel     `json:"bids"`
	Asks           []PriceLevel     `json:"asks"`
	LastTradePrice *decimal.Decimal `json:"last_trade_price"`
	Timestamp      time.Time        `json:"timestamp"`
}

// pairBook bundles one pair's book, tape, and last trade price behind a
// single lock: mutations take the write lock, snapshots the read lock.
type pairBook struct {
	mu        sync.RWMutex
	book      *Book
	tape      *TradeTape
	lastPrice decimal.Decimal
	hasTraded bool
}

// Engine is the matching façade: it owns one book per supported pair, hands
// out order and trade IDs, and serializes all mutations per pair. Different
// pairs share no mutable state and proceed fully in parallel.
type Engine struct {
	books map[string]*pairBook
	pairs []string

	ordersMu sync.RWMutex
	orders   map[uint64]*types.Order

	orderSeq Sequence
	tradeSeq Sequence

	clock           func() time.Time
	remainderPolicy RemainderPolicy

	orderStore storage.OrderStore
	tradeStore storage.TradeStore
}

// NewEngine constructs an engine for a fixed pair set
func NewEngine(cfg Config) *Engine {
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}
	tapeCap := cfg.TapeCapacity
	if tapeCap <= 0 {
		tapeCap = DefaultTapeCapacity
	}

	e := &Engine{
		books:           make(map[string]*pairBook, len(cfg.Pairs)),
		orders:          make(map[uint64]*types.Order),
		clock:           clock,
		remainderPolicy: cfg.RemainderPolicy,
	}

	for _, pair := range cfg.Pairs {
		if _, dup := e.books[pair]; dup {
			continue
		}
		e.books[pair] = &pairBook{
			book: NewBook(pair, &e.tradeSeq, clock),
			tape: NewTradeTape(tapeCap),
		}
		e.pairs = append(e.pairs, pair)
	}
	sort.Strings(e.pairs)

	return e
}

// NewEngineWithStores constructs an engine that mirrors order updates and
// executed trades into the given stores (write-behind; the in-memory book
// stays authoritative). Either store may be nil.
func NewEngineWithStores(cfg Config, orderStore storage.OrderStore, tradeStore storage.TradeStore) *Engine {
	e := NewEngine(cfg)
	e.orderStore = orderStore
	e.tradeStore = tradeStore
	return e
}

// Pairs returns the configured pair set, sorted
func (e *Engine) Pairs() []string {
	return e.pairs
}

// Submit validates and executes one order. On success it returns a snapshot
// of the fully updated order plus any trades the submission produced. On a
// validation failure nothing is mutated.
func (e *Engine) Submit(req SubmitRequest) (*types.Order, []*types.Trade, error) {
	pb, err := e.validate(req)
	if err != nil {
		return nil, nil, err
	}

	pb.mu.Lock()
	defer pb.mu.Unlock()

	if req.OrderType == types.MarketOrder && e.remainderPolicy == RejectUnfilled {
		if pb.book.Liquidity(req.Side.Opposite()).LessThan(req.Size) {
			return nil, nil, newValidationError("size", "insufficient resting liquidity to fully fill market order")
		}
	}

	price := req.Price
	if req.OrderType == types.MarketOrder {
		price = decimal.Zero // market orders carry no price of their own
	}

	order := types.NewOrder(e.orderSeq.Next(), req.Trader, req.Agent, req.Pair,
		req.OrderType, req.Side, price, req.Size, e.clock())

	var trades []*types.Trade
	switch req.OrderType {
	case types.MarketOrder:
		trades = pb.book.ExecuteMarket(order)
	case types.LimitOrder:
		trades = pb.book.ExecuteLimit(order)
	}

	e.ordersMu.Lock()
	e.orders[order.ID] = order
	e.ordersMu.Unlock()

	for _, trade := range trades {
		pb.tape.Append(trade)
		pb.lastPrice = trade.Price
		pb.hasTraded = true
	}

	e.persistSubmission(order, trades)

	result := *order
	return &result, trades, nil
}

// validate applies the submission contract: supported pair, valid side and
// kind, positive size, and a positive price for limit orders.
func (e *Engine) validate(req SubmitRequest) (*pairBook, error) {
	pb, ok := e.books[req.Pair]
	if !ok {
		return nil, newValidationError("pair", fmt.Sprintf("unsupported trading pair %q", req.Pair))
	}
	if req.Side != types.Buy && req.Side != types.Sell {
		return nil, newValidationError("side", "must be buy or sell")
	}
	if req.OrderType != types.MarketOrder && req.OrderType != types.LimitOrder {
		return nil, newValidationError("order_type", "must be market or limit")
	}
	if !req.Size.IsPositive() {
		return nil, newValidationError("size", "must be positive")
	}
	if req.OrderType == types.LimitOrder && !req.Price.IsPositive() {
		return nil, newValidationError("price", "limit orders require a positive price")
	}
	return pb, nil
}

// Cancel moves a pending or partial order to cancelled and removes it from
// its book. Returns false for unknown IDs and for orders already terminal,
// with no side effect; a second cancel of the same ID therefore fails.
func (e *Engine) Cancel(orderID uint64) bool {
	e.ordersMu.RLock()
	order := e.orders[orderID]
	e.ordersMu.RUnlock()

	if order == nil {
		return false
	}

	pb := e.books[order.Pair]
	pb.mu.Lock()
	defer pb.mu.Unlock()

	if order.IsTerminal() {
		return false
	}

	// Dropped market remainders were never booked, so Remove can miss
	pb.book.Remove(order)
	order.Status = types.StatusCancelled

	e.persistOrder(order)
	return true
}

// GetOrder returns a read-only snapshot of an order, or nil if unknown
func (e *Engine) GetOrder(orderID uint64) *types.Order {
	e.ordersMu.RLock()
	order := e.orders[orderID]
	e.ordersMu.RUnlock()

	if order == nil {
		return nil
	}
	return e.snapshotOrder(order)
}

// GetOrdersForAgent returns snapshots of every order the agent has submitted,
// oldest first. An empty pair matches all pairs.
func (e *Engine) GetOrdersForAgent(agentID, pair string) []*types.Order {
	return e.collectOrders(func(o *types.Order) bool {
		return o.AgentID == agentID && (pair == "" || o.Pair == pair)
	})
}

// GetOrdersByTrader returns snapshots of every order a trader has submitted
func (e *Engine) GetOrdersByTrader(traderID string) []*types.Order {
	return e.collectOrders(func(o *types.Order) bool {
		return o.TraderID == traderID
	})
}

// GetOrdersBySide returns snapshots of all tracked orders on one side
func (e *Engine) GetOrdersBySide(side types.SideType) []*types.Order {
	return e.collectOrders(func(o *types.Order) bool {
		return o.Side == side
	})
}

// GetAllOrders returns snapshots of every order the engine has tracked
func (e *Engine) GetAllOrders() []*types.Order {
	return e.collectOrders(func(*types.Order) bool { return true })
}

func (e *Engine) collectOrders(keep func(*types.Order) bool) []*types.Order {
	e.ordersMu.RLock()
	matched := make([]*types.Order, 0, len(e.orders))
	for _, order := range e.orders {
		if keep(order) {
			matched = append(matched, order)
		}
	}
	e.ordersMu.RUnlock()

	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	result := make([]*types.Order, len(matched))
	for i, order := range matched {
		result[i] = e.snapshotOrder(order)
	}
	return result
}

// snapshotOrder copies an order under its pair's read lock so callers never
// observe a book mid-mutation.
func (e *Engine) snapshotOrder(order *types.Order) *types.Order {
	pb := e.books[order.Pair]
	pb.mu.RLock()
	snapshot := *order
	pb.mu.RUnlock()
	return &snapshot
}

// GetDepth aggregates a pair's resting orders into price levels, bids
// descending and asks ascending. maxDepth <= 0 returns all levels.
func (e *Engine) GetDepth(pair string, maxDepth int) (*DepthSnapshot, error) {
	pb, ok := e.books[pair]
	if !ok {
		return nil, &UnknownPairError{Pair: pair}
	}

	pb.mu.RLock()
	defer pb.mu.RUnlock()

	bids, asks := pb.book.Depth(maxDepth)
	snapshot := &DepthSnapshot{
		Pair:      pair,
		Bids:      bids,
		Asks:      asks,
		Timestamp: e.clock(),
	}
	if pb.hasTraded {
		last := pb.lastPrice
		snapshot.LastTradePrice = &last
	}
	return snapshot, nil
}

// TopOfBook returns the best bid and ask levels for a pair; either may be
// nil when that side is empty.
func (e *Engine) TopOfBook(pair string) (bestBid, bestAsk *PriceLevel, err error) {
	pb, ok := e.books[pair]
	if !ok {
		return nil, nil, &UnknownPairError{Pair: pair}
	}

	pb.mu.RLock()
	defer pb.mu.RUnlock()
	return pb.book.BestBid(), pb.book.BestAsk(), nil
}

// GetRecentTrades returns up to limit trades for a pair, newest first
func (e *Engine) GetRecentTrades(pair string, limit int) ([]*types.Trade, error) {
	pb, ok := e.books[pair]
	if !ok {
		return nil, &UnknownPairError{Pair: pair}
	}

	pb.mu.RLock()
	defer pb.mu.RUnlock()
	return pb.tape.Recent(limit), nil
}

// Close releases the engine's storage mirrors, if any
func (e *Engine) Close() error {
	var errs []error
	if e.orderStore != nil {
		errs = append(errs, e.orderStore.Close())
	}
	if e.tradeStore != nil {
		errs = append(errs, e.tradeStore.Close())
	}
	return errors.Join(errs...)
}

// persistSubmission mirrors the submitted order, the makers it touched, and
// the executed trades into the configured stores. Write-behind and best
// effort: store failures never fail the submission.
func (e *Engine) persistSubmission(order *types.Order, trades []*types.Trade) {
	e.persistOrder(order)

	if e.orderStore != nil {
		for _, trade := range trades {
			e.ordersMu.RLock()
			maker := e.orders[trade.MakerOrderID]
			e.ordersMu.RUnlock()
			if maker != nil {
				_ = e.orderStore.Save(maker)
			}
		}
	}

	if e.tradeStore != nil && len(trades) > 0 {
		_ = e.tradeStore.SaveBatch(trades)
	}
}

func (e *Engine) persistOrder(order *types.Order) {
	if e.orderStore != nil {
		_ = e.orderStore.Save(order)
	}
}
