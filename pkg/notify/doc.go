// Package notify delivers store change events to interested listeners.
//
// The registry hands every batch of events produced by an operation to a
// Notifier before the operation returns. Bus fans them out to subscribed
// Listeners in order. Delivery happens while the registry lock is held, so
// listeners must not call back into the registry.
package notify
