// Package cmd implements the command-line interface for the go-zcached
// client. It provides a hierarchical command structure for interacting with
// a zcached server.
//
// The command groups are:
//
//   - kv: Key-value operations (get, set, del, mget, mset, exists)
//   - server: Server administration (ping, keys, dbsize, save, lastsave, flush)
//   - bench: A benchmarking tool measuring request latencies
//
// See zcached -help for a list of all commands.
package cmd
