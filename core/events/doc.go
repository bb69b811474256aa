// Package events defines the roster events emitted on the event bus.
//
// Available event types:
//   - AssignmentEvent: assignment created, removed or voided
//   - ConflictEvent: conflicts found by a detector pass
//   - StatusEvent: pilot or drone status change
//   - SyncEvent: roster snapshot loaded from an external origin
package events
