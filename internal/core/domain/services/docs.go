// Package services provides domain services that span more than one aggregate.
//
// The package includes:
//   - PricingCalculator: turns requested order lines and catalog entries into
//     an item snapshot and a price breakdown
//   - AssignmentMatcher: pairs an order with a caller-chosen delivery agent
//     after checking both sides
package services
