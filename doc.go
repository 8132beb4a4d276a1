// Package cardvault implements a personal trading-card collection manager.
//
// A registry is a folder of flat CSV files: the vault (owned cards), the
// archive (disposed cards), the activity ledger (inbound/outbound movement
// events) and a timeline of the collection's size and value. The package
// holds the domain model and the pure bookkeeping engines; the interactive
// drivers live in the cmd package, and the external collaborators (the card
// catalog and the currency-rate service) in their own packages.
package cardvault
