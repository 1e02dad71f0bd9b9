// Package event carries the gateway payloads the cache knows how to
// project. Every payload keeps the shape Discord delivers it in; the
// entity package owns the stored form.
package event

// Event is a single gateway dispatch. The set of implementations is
// closed: the cache switches over the concrete types and treats
// anything else as a no-op.
type Event interface {
	// Kind reports the gateway dispatch name, e.g. "CHANNEL_CREATE".
	Kind() string

	isEvent()
}
