// Package cli implements voteadmin, the operator command line for the voting
// server. Every command except verify talks to the server over gRPC with the
// admin secret; verify checks an exported result file offline.
package cli
