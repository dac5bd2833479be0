package salesreport

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"appsalescli/pkg/contracts/domain"
)

// buildSummary runs the three aggregation passes and bundles the result.
// The passes only read the already-decoded transaction list, so they are
// executed concurrently; each writes its own field of the summary.
func buildSummary(ctx context.Context, transactions []domain.Transaction) (domain.ReportSummary, error) {
	var summary domain.ReportSummary

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		summary.ByCountry = aggregateByCountry(transactions)
		return nil
	})
	g.Go(func() error {
		summary.ByProduct = aggregateByProduct(transactions)
		return nil
	})
	g.Go(func() error {
		summary.ByCurrency = aggregateByCurrency(transactions)
		return nil
	})
	if err := g.Wait(); err != nil {
		return domain.ReportSummary{}, err
	}

	summary.TotalTransactions = len(transactions)
	return summary, nil
}

// aggregateByCountry groups by the (country, currency) composite and sums
// quantity and extended partner share. Entries for the same country but
// different currencies stay separate. The result is ordered by country
// name using English collation, with the currency code as tie-breaker.
func aggregateByCountry(transactions []domain.Transaction) []domain.CountryBreakdown {
	index := make(map[string]int)
	out := make([]domain.CountryBreakdown, 0)

	for _, tx := range transactions {
		key := tx.CountryOfSale + "\x00" + tx.PartnerShareCurrency
		i, ok := index[key]
		if !ok {
			out = append(out, domain.CountryBreakdown{
				CountryOfSale: tx.CountryOfSale,
				Currency:      tx.PartnerShareCurrency,
			})
			i = len(out) - 1
			index[key] = i
		}
		out[i].Quantity += tx.Quantity
		out[i].Proceeds += tx.ExtendedPartnerShare
	}

	collator := collate.New(language.English)
	sort.SliceStable(out, func(i, j int) bool {
		if c := collator.CompareString(out[i].CountryOfSale, out[j].CountryOfSale); c != 0 {
			return c < 0
		}
		return out[i].Currency < out[j].Currency
	})

	return out
}

// aggregateByProduct groups by SKU, summing quantity across all currencies
// and accumulating per-currency proceeds in first-seen order. The title is
// taken from the first row encountered for the SKU. The result is ordered
// by title.
func aggregateByProduct(transactions []domain.Transaction) []domain.ProductBreakdown {
	index := make(map[string]int)
	out := make([]domain.ProductBreakdown, 0)

	for _, tx := range transactions {
		i, ok := index[tx.SKU]
		if !ok {
			out = append(out, domain.ProductBreakdown{
				SKU:   tx.SKU,
				Title: tx.Title,
			})
			i = len(out) - 1
			index[tx.SKU] = i
		}
		out[i].Quantity += tx.Quantity

		found := false
		for j := range out[i].Proceeds {
			if out[i].Proceeds[j].Currency == tx.PartnerShareCurrency {
				out[i].Proceeds[j].Amount += tx.ExtendedPartnerShare
				found = true
				break
			}
		}
		if !found {
			out[i].Proceeds = append(out[i].Proceeds, domain.CurrencyProceeds{
				Currency: tx.PartnerShareCurrency,
				Amount:   tx.ExtendedPartnerShare,
			})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Title != out[j].Title {
			return out[i].Title < out[j].Title
		}
		return out[i].SKU < out[j].SKU
	})

	return out
}

// aggregateByCurrency groups by partner share currency and sums total
// quantity and proceeds across every country and product. The result is
// ordered by currency code.
func aggregateByCurrency(transactions []domain.Transaction) []domain.CurrencySummary {
	index := make(map[string]int)
	out := make([]domain.CurrencySummary, 0)

	for _, tx := range transactions {
		i, ok := index[tx.PartnerShareCurrency]
		if !ok {
			out = append(out, domain.CurrencySummary{Currency: tx.PartnerShareCurrency})
			i = len(out) - 1
			index[tx.PartnerShareCurrency] = i
		}
		out[i].TotalQuantity += tx.Quantity
		out[i].TotalProceeds += tx.ExtendedPartnerShare
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Currency < out[j].Currency
	})

	return out
}
