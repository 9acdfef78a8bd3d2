package takeoff

import "math"

// round2 rounds a dollar amount to cents.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// aggregate folds priced items into category totals and the grand roll-up.
// Category order is the encounter order of the item list, so identical items
// always aggregate identically. Contingency, general conditions, and
// overhead/profit are each computed from the subtotal, never compounded on
// each other.
func aggregate(items []PricedItem, opts Options) ([]CategoryTotal, GrandTotals) {
	index := make(map[string]int)
	var cats []CategoryTotal

	for _, it := range items {
		i, ok := index[it.Category]
		if !ok {
			i = len(cats)
			index[it.Category] = i
			cats = append(cats, CategoryTotal{Category: it.Category})
		}
		cats[i].Items = append(cats[i].Items, it)
		cats[i].Subtotal = round2(cats[i].Subtotal + it.TotalPrice)
	}

	var totals GrandTotals
	for _, c := range cats {
		totals.Subtotal = round2(totals.Subtotal + c.Subtotal)
		switch c.Category {
		case "Labor":
			totals.Labor = round2(totals.Labor + c.Subtotal)
		case "Equipment":
			totals.Equipment = round2(totals.Equipment + c.Subtotal)
		default:
			totals.Materials = round2(totals.Materials + c.Subtotal)
		}
	}

	totals.Contingency = round2(totals.Subtotal * opts.ContingencyRate)
	totals.GeneralConditions = round2(totals.Subtotal * opts.GeneralConditionsRate)
	totals.OverheadProfit = round2(totals.Subtotal * opts.OverheadProfitRate)
	totals.Total = round2(totals.Subtotal + totals.Contingency + totals.GeneralConditions + totals.OverheadProfit)
	return cats, totals
}
