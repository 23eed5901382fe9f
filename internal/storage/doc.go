// Package storage provides the record store underlying the billing
// application: three named collections (items, invoices, payments)
// persisted as JSON arrays on a pluggable key-value substrate.
//
// Records are schemaless (map[string]any). The store never interprets
// record fields beyond id and createdAt; typed views live in the
// catalog, invoices and payments packages.
//
// # Failure semantics
//
// Absence is not an error. A missing or undecodable collection reads as
// empty, lookups of unknown ids report found=false, and updates/removes
// of unknown ids report false. Errors are reserved for substrate I/O
// failures.
//
// # Write model
//
// Every mutation rewrites the full collection (read, modify, write one
// value). This is O(collection size) per write, which is acceptable at
// small-business record volumes; SaveAll exists so bulk imports pay the
// rewrite once instead of per record.
package storage
