// Package order implements the Order aggregate and its lifecycle.
//
// An order is placed in Pending with a priced snapshot of its items and
// moves through the transition table encoded by Status:
//
//	Pending ──┬──> Confirmed ──┬──> Dispatched ──> Delivered
//	          │                │        │
//	          └────────────────┼────────┘ (assignment)
//	          │                │        └──> Confirmed (abort delivery)
//	          └──> Cancelled <─┘
//
// Delivered and Cancelled are terminal. Dispatch always carries the id of
// the delivery agent picked by the assignment matcher, and the agent link is
// present exactly while the order is Dispatched or Delivered.
package order
