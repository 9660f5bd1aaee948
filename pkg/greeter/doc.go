// Package greeter is the reference agent shipped with Sprig: a single-step
// pipeline that turns {name} into {name, greeting}. It doubles as the
// canonical example of wiring a typed state onto the map-based runtime.
package greeter
