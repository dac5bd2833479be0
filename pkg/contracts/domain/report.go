package domain

// ReportMetadata holds the vendor and reporting-period information extracted
// from the preamble of a sales report. Dates are kept verbatim in the source
// format (MM/DD/YYYY); display formatting is a renderer concern.
type ReportMetadata struct {
	VendorName string `json:"vendor_name"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
}

// Transaction represents one decoded row from the data region of a sales
// report. Only rows flagged as sales are retained; returns are decoded and
// then discarded before aggregation.
type Transaction struct {
	TransactionDate       string  `json:"transaction_date"`
	SettlementDate        string  `json:"settlement_date"`
	AppleIdentifier       string  `json:"apple_identifier"`
	SKU                   string  `json:"sku"`
	Title                 string  `json:"title"`
	DeveloperName         string  `json:"developer_name"`
	ProductTypeIdentifier string  `json:"product_type_identifier"`
	CountryOfSale         string  `json:"country_of_sale"`
	RegionOfSale          string  `json:"region_of_sale"`
	SaleOrReturn          string  `json:"sale_or_return"`
	OrderType             string  `json:"order_type"`
	PromoCode             string  `json:"promo_code"`
	Quantity              int64   `json:"quantity"`
	PartnerShare          float64 `json:"partner_share"`
	ExtendedPartnerShare  float64 `json:"extended_partner_share"`
	PartnerShareCurrency  string  `json:"partner_share_currency"`
	CustomerPrice         float64 `json:"customer_price"`
	CustomerCurrency      string  `json:"customer_currency"`
}

// SaleIndicator is the Sale or Return code that marks a completed sale.
const SaleIndicator = "S"

// IsSale reports whether the row is a completed sale rather than a return.
func (t Transaction) IsSale() bool {
	return t.SaleOrReturn == SaleIndicator
}

// CountryBreakdown aggregates quantity and proceeds for one
// (country, currency) pair. Entries are never merged across currencies for
// the same country; proceeds use the extended partner share figure.
type CountryBreakdown struct {
	CountryOfSale string  `json:"country_of_sale"`
	Currency      string  `json:"currency"`
	Quantity      int64   `json:"quantity"`
	Proceeds      float64 `json:"proceeds"`
}

// CurrencyProceeds is one (currency, amount) pair inside a product
// breakdown. An ordered slice is used instead of a map so that the
// first-seen currency order per product stays deterministic.
type CurrencyProceeds struct {
	Currency string  `json:"currency"`
	Amount   float64 `json:"amount"`
}

// ProductBreakdown aggregates one SKU across all rows: total quantity plus
// per-currency proceeds in first-seen order. The title comes from whichever
// row for the SKU was encountered first.
type ProductBreakdown struct {
	SKU      string             `json:"sku"`
	Title    string             `json:"title"`
	Quantity int64              `json:"quantity"`
	Proceeds []CurrencyProceeds `json:"proceeds"`
}

// CurrencySummary aggregates total quantity and proceeds for one partner
// share currency across every country and product.
type CurrencySummary struct {
	Currency      string  `json:"currency"`
	TotalQuantity int64   `json:"total_quantity"`
	TotalProceeds float64 `json:"total_proceeds"`
}

// ReportSummary bundles the three aggregated views plus the retained
// transaction count.
type ReportSummary struct {
	ByCountry         []CountryBreakdown `json:"by_country"`
	ByProduct         []ProductBreakdown `json:"by_product"`
	ByCurrency        []CurrencySummary  `json:"by_currency"`
	TotalTransactions int                `json:"total_transactions"`
}

// ParsedReport is the complete output model handed to renderers and
// exporters. It is built once per input file and treated as immutable by
// every consumer.
type ParsedReport struct {
	Metadata     ReportMetadata `json:"metadata"`
	Transactions []Transaction  `json:"transactions"`
	Summary      ReportSummary  `json:"summary"`
}
