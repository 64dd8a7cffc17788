// Package sync drives one synchronization pass over all resource
// categories: stream pages from the upstream client, resolve relationship
// locators to local keys, upsert into the persistence layer.
//
// A pass is single-threaded and deterministic: one category at a time,
// one record at a time. Record-level failures are counted and skipped;
// an upstream failure aborts its category only. SyncAll always returns a
// full report and never an error.
package sync
