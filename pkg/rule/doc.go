// Package rule defines the universe model: a named set of usage rules plus
// the consumer→provider requirement edges between them.
//
// # Format
//
// A universe is a flat node-link document. Rules carry a name, an optional
// display label, and free-form metadata; requirements are plain rule-name
// pairs. Predicate declarations are resolved into edges upstream; this
// package never interprets predicates.
//
// # Anomaly Tolerance
//
// Validation checks structural integrity only (names, duplicates, empty
// endpoints). Requirements referencing undeclared rules, self-references,
// and cycles are all legal input; the resolve package normalizes them.
//
// # Serialization
//
// Universes serialize to JSON for files and the HTTP API, and carry BSON
// tags for MongoDB storage. [Universe.Fingerprint] provides an
// order-independent content hash for cache keys.
package rule
