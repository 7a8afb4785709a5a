// Package services provides domain services that work across the standing order
// model without belonging to a single aggregate.
//
// The package includes:
//   - SchedulePlanner: computes the delivery dates due for an order inside a horizon
package services
