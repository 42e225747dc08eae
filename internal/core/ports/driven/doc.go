// Package driven provides interfaces for infrastructure adapters
// (secondary/outbound ports): the persistent passage store, the local
// embedding encoder and the import progress sink.
//
// Implementations live under internal/adapters/driven.
package driven
