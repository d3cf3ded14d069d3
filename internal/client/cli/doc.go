// Package cli is the interactive Vilarbucks command-line client.
//
// App wires configuration, the local SQLite store, the REST client and the
// session services, then runs a REPL. On start the previous session is
// restored from disk; gocron jobs keep the online/offline indicator current
// and, if configured, reconcile the balance with the server.
//
// Commands: help, register, login, logout, whoami, tasks, complete <id>,
// refresh, exit.
package cli
