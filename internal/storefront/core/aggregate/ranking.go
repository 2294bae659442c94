package aggregate

import (
	"cmp"
	"math"
	"slices"

	"github.com/vino121095/valenmart-storefront/internal/storefront/core/domain/entity"
)

const (
	UnknownProductName = "Unknown Product"
	DefaultUnit        = "units"
	// PlaceholderImage is served in place of a product image the snapshot lacks.
	PlaceholderImage = "/images/placeholder-product.png"
)

// ProductAggregate is one row of the top-product ranking.
type ProductAggregate struct {
	ProductID     string
	Name          string
	ImageRef      string
	Unit          string
	TotalQuantity int
	OrderCount    int
}

// TopProducts ranks products across all line items of orders.
func TopProducts(orders []entity.Order, n int) []ProductAggregate {
	var items []entity.OrderLineItem
	for _, o := range orders {
		items = append(items, o.Items...)
	}
	return RankProducts(items, n)
}

// RankProducts groups items by product id, keeps products with a positive
// total quantity and returns at most n of them ordered by total quantity,
// largest first. Equal totals keep first-seen order. Display fields come
// from the first line item seen for each product.
func RankProducts(items []entity.OrderLineItem, n int) []ProductAggregate {
	if n <= 0 {
		return []ProductAggregate{}
	}

	index := make(map[string]int)
	var aggs []ProductAggregate
	for _, it := range items {
		if it.ProductID == "" {
			continue
		}
		i, ok := index[it.ProductID]
		if !ok {
			i = len(aggs)
			index[it.ProductID] = i
			aggs = append(aggs, newAggregate(it))
		}
		aggs[i].TotalQuantity = addQuantity(aggs[i].TotalQuantity, it.Quantity)
		aggs[i].OrderCount++
	}

	ranked := make([]ProductAggregate, 0, len(aggs))
	for _, a := range aggs {
		if a.TotalQuantity > 0 {
			ranked = append(ranked, a)
		}
	}

	slices.SortStableFunc(ranked, func(a, b ProductAggregate) int {
		return cmp.Compare(b.TotalQuantity, a.TotalQuantity)
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// addQuantity adds a line quantity to a running total, ignoring negatives and
// saturating at math.MaxInt.
func addQuantity(total, q int) int {
	if q <= 0 {
		return total
	}
	if total > math.MaxInt-q {
		return math.MaxInt
	}
	return total + q
}

func newAggregate(it entity.OrderLineItem) ProductAggregate {
	a := ProductAggregate{
		ProductID: it.ProductID,
		Name:      it.Product.Name,
		ImageRef:  it.Product.ImageRef,
		Unit:      it.Product.Unit,
	}
	if a.Name == "" {
		a.Name = UnknownProductName
	}
	if a.ImageRef == "" {
		a.ImageRef = PlaceholderImage
	}
	if a.Unit == "" {
		a.Unit = DefaultUnit
	}
	return a
}
