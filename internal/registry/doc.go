// Package registry provides the ordered observer registry behind a
// controller's Subscribe/Unsubscribe surface.
//
// The registry is generic over the notification payload so it carries no
// knowledge of signal states; the root package instantiates it with its own
// event type. Registrations are identified by opaque handle strings and kept
// in subscription order — dispatch always walks them oldest-first.
//
// Delivery is synchronous and panic-safe: a panicking observer is recovered,
// logged with a correlation ID and full stack trace, and reported back to
// the dispatcher as a failure. One misbehaving observer never prevents
// delivery to the rest.
//
// Users of the junction library should not need to interact with this
// package directly.
package registry
