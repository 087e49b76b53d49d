package matching

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/nickthelegend/molfi-sub001/internal/types"
)

/*
Per-pair book layout.

Each side is a price-sorted slice of levels (bids descending, asks ascending)
and each level holds its resting orders FIFO. Best price is therefore always
levels[0], insertion is a linear walk, and time priority inside a level falls
out of append order. Linear scans are fine at the volumes this engine sees;
swap the slices for a price-keyed tree if that ever changes.
*/

// priceLevel groups the resting orders at one exact price, FIFO by arrival
type priceLevel struct {
	price  decimal.Decimal
	orders []*types.Order
}

func (pl *priceLevel) totalSize() decimal.Decimal {
	total := decimal.Zero
	for _, o := range pl.orders {
		total = total.Add(o.Remaining())
	}
	return total
}

// PriceLevel is the read-side depth view: aggregate remaining size and order
// count at one exact price. Recomputed on demand, never stored.
type PriceLevel struct {
	Price      decimal.Decimal `json:"price"`
	Size       decimal.Decimal `json:"size"`
	OrderCount int             `json:"order_count"`
}

// Book owns one pair's resting bid and ask orders plus the matching logic
// against them. It is not safe for concurrent use; the engine serializes
// access per pair.
type Book struct {
	pair     string
	bids     []*priceLevel // descending price
	asks     []*priceLevel // ascending price
	tradeSeq *Sequence
	clock    func() time.Time
}

// NewBook creates an empty book for a pair. Trade IDs come from seq so the
// engine can share one ID space across all pairs.
func NewBook(pair string, seq *Sequence, clock func() time.Time) *Book {
	return &Book{
		pair:     pair,
		tradeSeq: seq,
		clock:    clock,
	}
}

// ExecuteMarket matches a market order against the opposite side, walking
// levels best-first. Market orders never rest: any remainder once the
// opposite side is exhausted is left unbooked for the engine's remainder
// policy to account for.
func (b *Book) ExecuteMarket(taker *types.Order) []*types.Trade {
	var trades []*types.Trade

	for taker.Remaining().IsPositive() {
		level := b.bestOpposite(taker.Side)
		if level == nil {
			break
		}
		trades = append(trades, b.fillAtLevel(taker, level))
	}

	return trades
}

// ExecuteLimit matches a limit order as far as its price allows, then rests
// any remainder on its own side. Matching consumes every crossing
// counter-order before the remainder is booked, so the book never rests
// crossed.
func (b *Book) ExecuteLimit(taker *types.Order) []*types.Trade {
	var trades []*types.Trade

	for taker.Remaining().IsPositive() {
		level := b.bestOpposite(taker.Side)
		if level == nil || !crosses(taker.Side, taker.Price, level.price) {
			break
		}
		trades = append(trades, b.fillAtLevel(taker, level))
	}

	if taker.Remaining().IsPositive() {
		b.add(taker)
	}

	return trades
}

// crosses reports whether a limit price reaches the best opposite price
func crosses(side types.SideType, limitPrice, bestPrice decimal.Decimal) bool {
	if side == types.Buy {
		return limitPrice.GreaterThanOrEqual(bestPrice)
	}
	return limitPrice.LessThanOrEqual(bestPrice)
}

// fillAtLevel executes the taker against the level's oldest order, pruning
// the maker (and an emptied level) once fully filled. Execution is always at
// the maker's price.
func (b *Book) fillAtLevel(taker *types.Order, level *priceLevel) *types.Trade {
	maker := level.orders[0]

	fillSize := taker.Remaining()
	if maker.Remaining().LessThan(fillSize) {
		fillSize = maker.Remaining()
	}

	taker.ApplyFill(fillSize)
	maker.ApplyFill(fillSize)

	if maker.Status == types.StatusFilled {
		level.orders = level.orders[1:]
		if len(level.orders) == 0 {
			b.removeLevel(maker.Side, level.price)
		}
	}

	return &types.Trade{
		TradeID:      b.tradeSeq.Next(),
		Pair:         b.pair,
		Price:        maker.Price,
		Size:         fillSize,
		Side:         maker.Side,
		TakerOrderID: taker.ID,
		MakerOrderID: maker.ID,
		Timestamp:    b.clock(),
	}
}

// add inserts a resting order at its price level, creating the level in
// sorted position if needed. Appending within a level preserves time priority.
func (b *Book) add(order *types.Order) {
	side := b.sideOf(order.Side)

	for i, level := range *side {
		if level.price.Equal(order.Price) {
			level.orders = append(level.orders, order)
			return
		}
		if betterPrice(order.Side, order.Price, level.price) {
			newLevel := &priceLevel{price: order.Price, orders: []*types.Order{order}}
			*side = append(*side, nil)
			copy((*side)[i+1:], (*side)[i:])
			(*side)[i] = newLevel
			return
		}
	}

	*side = append(*side, &priceLevel{price: order.Price, orders: []*types.Order{order}})
}

// betterPrice reports whether price a sorts strictly ahead of b on the given side
func betterPrice(side types.SideType, a, b decimal.Decimal) bool {
	if side == types.Buy {
		return a.GreaterThan(b)
	}
	return a.LessThan(b)
}

// Remove deletes a resting order from its side, cleaning up an emptied level.
// Returns false if the order is not resting there.
func (b *Book) Remove(order *types.Order) bool {
	side := b.sideOf(order.Side)

	for i, level := range *side {
		if !level.price.Equal(order.Price) {
			continue
		}
		for j, resting := range level.orders {
			if resting.ID == order.ID {
				level.orders = append(level.orders[:j], level.orders[j+1:]...)
				if len(level.orders) == 0 {
					*side = append((*side)[:i], (*side)[i+1:]...)
				}
				return true
			}
		}
		return false
	}

	return false
}

// BestBid returns the highest bid level, or nil if the side is empty
func (b *Book) BestBid() *PriceLevel {
	return topOfSide(b.bids)
}

// BestAsk returns the lowest ask level, or nil if the side is empty
func (b *Book) BestAsk() *PriceLevel {
	return topOfSide(b.asks)
}

func topOfSide(side []*priceLevel) *PriceLevel {
	if len(side) == 0 {
		return nil
	}
	level := side[0]
	return &PriceLevel{
		Price:      level.price,
		Size:       level.totalSize(),
		OrderCount: len(level.orders),
	}
}

// Depth aggregates both sides into displayable levels, bids descending and
// asks ascending. maxDepth <= 0 returns all levels.
func (b *Book) Depth(maxDepth int) (bids, asks []PriceLevel) {
	return viewSide(b.bids, maxDepth), viewSide(b.asks, maxDepth)
}

func viewSide(side []*priceLevel, maxDepth int) []PriceLevel {
	n := len(side)
	if maxDepth > 0 && maxDepth < n {
		n = maxDepth
	}

	levels := make([]PriceLevel, 0, n)
	for _, level := range side[:n] {
		levels = append(levels, PriceLevel{
			Price:      level.price,
			Size:       level.totalSize(),
			OrderCount: len(level.orders),
		})
	}
	return levels
}

// Liquidity sums the remaining size resting on one side of the book
func (b *Book) Liquidity(side types.SideType) decimal.Decimal {
	total := decimal.Zero
	for _, level := range *b.sideOf(side) {
		total = total.Add(level.totalSize())
	}
	return total
}

func (b *Book) bestOpposite(takerSide types.SideType) *priceLevel {
	opposite := b.sideOf(takerSide.Opposite())
	if len(*opposite) == 0 {
		return nil
	}
	return (*opposite)[0]
}

func (b *Book) sideOf(side types.SideType) *[]*priceLevel {
	if side == types.Buy {
		return &b.bids
	}
	return &b.asks
}

func (b *Book) removeLevel(side types.SideType, price decimal.Decimal) {
	levels := b.sideOf(side)
	for i, level := range *levels {
		if level.price.Equal(price) {
			*levels = append((*levels)[:i], (*levels)[i+1:]...)
			return
		}
	}
}
