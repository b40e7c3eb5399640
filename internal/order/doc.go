// Package order implements the order lifecycle core for PrintDesk.
//
// It owns the in-memory order collection: entity model, identifier
// generation, create/update/delete mutations, and read queries. The Store
// is the single serialisation point for the collection; notification
// delivery happens outside its locks, so a slow subscriber can never stall
// a mutation.
//
// Identifiers: every order gets a human-readable ORD-NNNNN identifier,
// unique among live orders, and a coarse time-based batch marker that is
// deliberately not an identity field.
package order
