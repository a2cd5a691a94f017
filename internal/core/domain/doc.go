// Package domain defines the core business entities for Docket.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Opinion: One court opinion as returned by the record source
//   - ResolvedText: The text body selected for analysis
//   - Classification: The normalized output of the classification step
//   - Row: One persisted dataset record
//   - RunReport: The summary of one pipeline run
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
