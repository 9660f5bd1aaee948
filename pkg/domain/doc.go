/*
Package domain contains the core domain models for the Sprig pipeline runtime.

It defines the state container, the delta-merge contract, lifecycle events
and the sentinel errors. This package is kept pure and free of external
dependencies like I/O or configuration, following Hexagonal Architecture
principles.

# Key Entities

  - State: The full snapshot a pipeline invocation operates on.
  - Delta: A partial state update containing only fields a step changed.
  - LifecycleHooks: Callbacks for observing pipeline and step boundaries.
*/
package domain
