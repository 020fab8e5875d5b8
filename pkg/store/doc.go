// Package store defines the graph store client used by every component and
// provides an in-memory, indexed quad store implementing it.
//
// The in-memory store keeps three indexes per named graph:
//   - SPO: Subject -> Predicate -> Object (find facts about a subject)
//   - POS: Predicate -> Object -> Subject (find subjects with property=value)
//   - OSP: Object -> Subject -> Predicate (find subjects pointing to object)
package store
