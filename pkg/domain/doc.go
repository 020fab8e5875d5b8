// Package domain holds the catalog aggregates (Concept, ConceptSnapshot,
// Instance, InstanceSnapshot), their nested child entities, the
// multi-variant LanguageString value and the error taxonomy shared by every
// other package.
//
// Aggregates are plain values. Operations that derive a new canonical record
// from a snapshot (NewConceptFromSnapshot, Concept.ApplySnapshot and their
// instance counterparts) return a fresh value and never mutate the input.
// Children copied from a snapshot always receive new identifiers through
// Reidentify, so canonical children are owned independently of snapshot
// children.
package domain
