// Package kernel provides the shared value objects of the marketplace domain.
//
// The package includes:
//   - UUID: identifier of orders, order items and delivery agents
//   - GeoLocation: a validated latitude/longitude pair
//   - Money: a non-negative currency amount with two fractional digits
//   - Phone and Email: contact details validated on construction
//
// All values are immutable. Their zero values are invalid and fail Validate,
// so they must be created through the constructors.
package kernel
