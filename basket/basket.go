package basket

import (
	"container/list"
	"fmt"

	"github.com/shopspring/decimal"
	"go-commodity-market/domain"
)

// Basket an ordered collection of commodity stores, at most one per commodity name.
// Entries leave in the order they were first added.
//
// A Basket is not safe for concurrent use; give each transaction its own.
type Basket struct {
	// order holds *domain.CommodityStore in insertion order
	order *list.List

	// index maps a commodity name to its element in order
	index map[string]*list.Element
}

// New returns an empty basket.
func New() *Basket {
	return &Basket{
		order: list.New(),
		index: map[string]*list.Element{},
	}
}

// Add puts quantity units of commodity in the basket. If the commodity is
// already there its quantity grows in place and its position is unchanged.
// The sign and size of quantity are not checked.
func (b *Basket) Add(commodity domain.Commodity, quantity decimal.Decimal) error {
	if commodity.Name == "" {
		return fmt.Errorf("%w: commodity must have a name", domain.ErrInvalidInput)
	}

	if e, ok := b.index[commodity.Name]; ok {
		store := e.Value.(*domain.CommodityStore)
		store.Quantity = store.Quantity.Add(quantity)
		return nil
	}

	b.index[commodity.Name] = b.order.PushBack(&domain.CommodityStore{
		Commodity: commodity,
		Quantity:  quantity,
	})
	return nil
}

// AddOne adds a single unit of commodity.
func (b *Basket) AddOne(commodity domain.Commodity) error {
	return b.Add(commodity, decimal.NewFromInt(1))
}

// Peek returns a copy of the oldest store in the basket without removing it.
func (b *Basket) Peek() (domain.CommodityStore, error) {
	front := b.order.Front()
	if front == nil {
		return domain.CommodityStore{}, domain.ErrEmptyBasket
	}
	return *front.Value.(*domain.CommodityStore), nil
}

// Take removes and returns the oldest store in the basket.
func (b *Basket) Take() (domain.CommodityStore, error) {
	front := b.order.Front()
	if front == nil {
		return domain.CommodityStore{}, domain.ErrEmptyBasket
	}

	store := b.order.Remove(front).(*domain.CommodityStore)
	delete(b.index, store.Commodity.Name)
	return *store, nil
}

// FetchCommodity returns a copy of the store for name without removing it.
func (b *Basket) FetchCommodity(name string) (domain.CommodityStore, error) {
	e, ok := b.index[name]
	if !ok {
		return domain.CommodityStore{}, domain.ErrCommodityNotFound
	}
	return *e.Value.(*domain.CommodityStore), nil
}

// DumpStats returns one record per store, in insertion order.
func (b *Basket) DumpStats() []domain.Stat {
	stats := make([]domain.Stat, 0, b.order.Len())
	for e := b.order.Front(); e != nil; e = e.Next() {
		stats = append(stats, e.Value.(*domain.CommodityStore).Stat())
	}
	return stats
}

// TotalValuation sums the worth of every store. An empty basket is worth zero.
func (b *Basket) TotalValuation() decimal.Decimal {
	total := decimal.Zero
	for e := b.order.Front(); e != nil; e = e.Next() {
		total = total.Add(e.Value.(*domain.CommodityStore).CalculateWorth())
	}
	return total
}

// Len number of distinct commodities in the basket
func (b *Basket) Len() int {
	return b.order.Len()
}

// Names commodity names in insertion order
func (b *Basket) Names() []string {
	names := make([]string, 0, b.order.Len())
	for e := b.order.Front(); e != nil; e = e.Next() {
		names = append(names, e.Value.(*domain.CommodityStore).Commodity.Name)
	}
	return names
}
