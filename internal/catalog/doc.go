// Package catalog persists joined question banks to SQLite.
//
// The store uses the pure-Go modernc.org/sqlite driver and applies embedded,
// versioned migrations on open. Replace swaps the whole bank inside one
// transaction, so readers never observe a partially exported catalog.
package catalog
