package model

import "github.com/shopspring/decimal"

// Cart maps item id -> size label -> quantity. Stored quantities are always
// positive; an item with no sizes left is removed.
type Cart map[string]map[string]int

func (c *Cart) init() {
	if *c == nil {
		*c = Cart{}
	}
}

// Add increments the quantity of (itemID, size) by one.
func (c *Cart) Add(itemID, size string) {
	c.init()
	sizes, ok := (*c)[itemID]
	if !ok {
		sizes = map[string]int{}
		(*c)[itemID] = sizes
	}
	sizes[size]++
}

// Set overwrites the quantity of (itemID, size). A quantity of zero or less
// removes the entry.
func (c *Cart) Set(itemID, size string, quantity int) {
	c.init()
	if quantity > 0 {
		sizes, ok := (*c)[itemID]
		if !ok {
			sizes = map[string]int{}
			(*c)[itemID] = sizes
		}
		sizes[size] = quantity
		return
	}

	sizes, ok := (*c)[itemID]
	if !ok {
		return
	}
	delete(sizes, size)
	if len(sizes) == 0 {
		delete(*c, itemID)
	}
}

// ItemIDs returns the ids of every item in the cart.
func (c Cart) ItemIDs() []string {
	ids := make([]string, 0, len(c))
	for id := range c {
		ids = append(ids, id)
	}
	return ids
}

// Amount sums price x quantity. Items missing from prices are skipped.
func (c Cart) Amount(prices map[string]float64) decimal.Decimal {
	total := decimal.Zero
	for itemID, sizes := range c {
		price, ok := prices[itemID]
		if !ok {
			continue
		}
		for _, qty := range sizes {
			if qty <= 0 {
				continue
			}
			total = total.Add(decimal.NewFromFloat(price).Mul(decimal.NewFromInt(int64(qty))))
		}
	}
	return total
}
