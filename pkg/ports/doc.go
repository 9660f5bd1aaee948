// Package ports defines the interfaces between the pipeline runtime and the
// steps it executes. Implementations live with their owners: built-in steps
// under pkg/, application steps wherever the host keeps them.
package ports
