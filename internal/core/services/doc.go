// Package services implements the driving port interfaces.
// The tracker service orchestrates one ingestion run end to end; the
// ledger and text resolver carry the deduplication and text-selection
// rules it applies per opinion.
//
// Services are pure Go and depend only on domain and the driven ports.
package services
