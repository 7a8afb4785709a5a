// Package kernel provides the value objects shared by every aggregate of the
// standing order model.
//
// The package includes:
//   - UUID: identifier of aggregates and entities, zero value is invalid
//   - Date: a calendar day without clock or zone, used for delivery dates
//
// Both types are immutable and safe for concurrent use.
package kernel
