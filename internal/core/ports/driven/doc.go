// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the pipeline to function:
//
//   - OpinionSource: Lists and fetches opinion records from the legal-data API
//   - Classifier: Classifies one opinion's text via the language model
//   - DatasetStore: Appends rows to, and scans ids from, the CSV dataset
//   - TokenProvider: Supplies API credentials to the source client
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or connector package
package driven
