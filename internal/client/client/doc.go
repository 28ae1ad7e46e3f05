// Package client is the admin-side gRPC client for tokenvote.v1.VoteService.
//
// GRPCClient dials the server with the JSON codec, attaches the admin secret
// to every call through a unary interceptor and maps gRPC status codes to the
// sentinel errors in this package so callers can match them with errors.Is.
package client
