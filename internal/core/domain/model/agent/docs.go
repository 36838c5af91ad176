// Package agent implements the DeliveryAgent aggregate.
//
// An agent toggles between Available and Offline on its own and becomes
// Assigned only through the assignment matcher. It goes back to Available
// when its order is delivered or the delivery is aborted. Deactivated agents
// stay in storage for historical orders but are never eligible for work.
package agent
