package salesreport

import (
	"strconv"
	"strings"

	"appsalescli/pkg/contracts/domain"
)

// fieldID tags the logical transaction field a column position maps to.
type fieldID int

const (
	fieldUnknown fieldID = iota
	fieldTransactionDate
	fieldSettlementDate
	fieldAppleIdentifier
	fieldSKU
	fieldTitle
	fieldDeveloperName
	fieldProductType
	fieldCountryOfSale
	fieldRegionOfSale
	fieldSaleOrReturn
	fieldOrderType
	fieldPromoCode
	fieldQuantity
	fieldPartnerShare
	fieldExtendedPartnerShare
	fieldPartnerShareCurrency
	fieldCustomerPrice
	fieldCustomerCurrency
)

// columnFields maps exact header text to logical transaction fields.
// Headers not listed here map to fieldUnknown and are skipped during
// decoding, which keeps the decoder forward compatible with extra columns
// Apple may add to the export.
var columnFields = map[string]fieldID{
	"Transaction Date":        fieldTransactionDate,
	"Settlement Date":         fieldSettlementDate,
	"Apple Identifier":        fieldAppleIdentifier,
	"SKU":                     fieldSKU,
	"Title":                   fieldTitle,
	"Developer Name":          fieldDeveloperName,
	"Developer":               fieldDeveloperName,
	"Product Type Identifier": fieldProductType,
	"Country of Sale":         fieldCountryOfSale,
	"Country Of Sale":         fieldCountryOfSale,
	"Region of Sale":          fieldRegionOfSale,
	"Region":                  fieldRegionOfSale,
	"Sale or Return":          fieldSaleOrReturn,
	"Sales or Return":         fieldSaleOrReturn,
	"Order Type":              fieldOrderType,
	"Promo Code":              fieldPromoCode,
	"Quantity":                fieldQuantity,
	"Partner Share":           fieldPartnerShare,
	"Extended Partner Share":  fieldExtendedPartnerShare,
	"Partner Share Currency":  fieldPartnerShareCurrency,
	"Customer Price":          fieldCustomerPrice,
	"Customer Currency":       fieldCustomerCurrency,
}

// rowDecoder maps split data rows to transactions using the column order
// captured from the transaction header line.
type rowDecoder struct {
	columns []fieldID

	// fallbacks counts numeric values that failed to parse and were
	// coerced to zero. The silent zero can mask genuine corruption, so the
	// count is surfaced through ParseStats.
	fallbacks int
}

// newRowDecoder captures the positional field mapping from the header row.
func newRowDecoder(header []string) *rowDecoder {
	columns := make([]fieldID, len(header))
	for i, name := range header {
		columns[i] = columnFields[strings.TrimSpace(name)]
	}
	return &rowDecoder{columns: columns}
}

// Decode maps one split data-region row into a transaction. It returns
// false when the row is missing the country of sale or partner share
// currency: those two fields are load-bearing for every aggregation and a
// row without either is unusable. Dropping such rows is deliberate and
// silent - a data-quality problem in one row never fails the batch.
func (d *rowDecoder) Decode(fields []string) (domain.Transaction, bool) {
	var tx domain.Transaction

	for i, id := range d.columns {
		if i >= len(fields) {
			break
		}
		value := strings.TrimSpace(fields[i])

		switch id {
		case fieldTransactionDate:
			tx.TransactionDate = value
		case fieldSettlementDate:
			tx.SettlementDate = value
		case fieldAppleIdentifier:
			tx.AppleIdentifier = value
		case fieldSKU:
			tx.SKU = value
		case fieldTitle:
			tx.Title = value
		case fieldDeveloperName:
			tx.DeveloperName = value
		case fieldProductType:
			tx.ProductTypeIdentifier = value
		case fieldCountryOfSale:
			tx.CountryOfSale = value
		case fieldRegionOfSale:
			tx.RegionOfSale = value
		case fieldSaleOrReturn:
			tx.SaleOrReturn = value
		case fieldOrderType:
			tx.OrderType = value
		case fieldPromoCode:
			tx.PromoCode = value
		case fieldQuantity:
			tx.Quantity = d.parseQuantity(value)
		case fieldPartnerShare:
			tx.PartnerShare = d.parseAmount(value)
		case fieldExtendedPartnerShare:
			tx.ExtendedPartnerShare = d.parseAmount(value)
		case fieldPartnerShareCurrency:
			tx.PartnerShareCurrency = value
		case fieldCustomerPrice:
			tx.CustomerPrice = d.parseAmount(value)
		case fieldCustomerCurrency:
			tx.CustomerCurrency = value
		}
	}

	if tx.CountryOfSale == "" || tx.PartnerShareCurrency == "" {
		return domain.Transaction{}, false
	}

	return tx, true
}

// parseQuantity parses an integer field, coercing missing or malformed
// values to zero. Only non-empty failures count as fallbacks.
func (d *rowDecoder) parseQuantity(value string) int64 {
	if value == "" {
		return 0
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		d.fallbacks++
		return 0
	}
	return n
}

// parseAmount parses a monetary field with the same zero-on-failure rule.
func (d *rowDecoder) parseAmount(value string) float64 {
	if value == "" {
		return 0
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		d.fallbacks++
		return 0
	}
	return f
}
