// Package config loads, merges, and validates the configuration of the
// go-local-sync engine and its syncer CLI.
//
// Values are collected from three sources and merged in priority order:
// environment variables first, then command-line flags, then an optional
// JSON file referenced by either of the first two. Merging is performed
// with mergo so that later sources only fill fields the earlier ones left
// empty.
//
// The main entry point is [GetSyncerConfig], which returns the validated
// configuration used to wire the store, the transport adapter, and the
// background sync job.
package config
