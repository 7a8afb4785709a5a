// Package standingorder provides the StandingOrder aggregate: a weekly delivery
// pattern attached to a customer account.
//
// The package includes:
//   - StandingOrder: the aggregate root holding the pattern, items and lifecycle
//   - WeekdaySet: the set of working days (Monday to Friday) a delivery is due
//   - Item: a product line delivered on every scheduled day
//   - Status: the Active/Paused/Ended state machine
//
// Key business rules:
//   - an order always delivers on at least one weekday and carries at least one item
//   - Ended is terminal; an ended order has an end date and can no longer change
//   - the end date, when present, is never before the start date
package standingorder
