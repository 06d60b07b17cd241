// Package cli implements the interactive AgroScan client: a REPL over the
// auth and scan services, with session restore on startup and an inactivity
// watchdog that terminates idle sessions.
package cli
