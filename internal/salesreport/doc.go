// Package salesreport parses App Store sales report exports into a
// normalized model plus three aggregated views.
//
// # Architecture
//
// The package is organized around one linear pipeline:
//
// 1. Delimiter detection: a majority vote over the first lines of raw text
// 2. Metadata extraction: vendor name and reporting period from the preamble
// 3. Region location: the transaction header and trailing summary boundaries
// 4. Row decoding: header-driven field mapping with lenient coercion
// 5. Aggregation: by country, by product, and by currency
//
// # Usage
//
//	parser := salesreport.NewParser(logger)
//	report, stats, err := parser.Parse(ctx, string(raw))
//	if err != nil {
//	    return err
//	}
//
// # Error Handling
//
// Only structural failures abort a parse: an input shorter than five
// non-blank lines, or a missing transaction header. Per-row problems
// degrade gracefully instead - unparseable numbers coerce to zero and rows
// missing the country or currency are dropped - so a user always gets a
// report even from a slightly malformed export. ParseStats counts every
// such degradation for diagnostics.
//
// # Testing
//
// The package includes table-driven tests for every pipeline step plus
// inline report fixtures covering boundary-scan edge cases.
package salesreport
