// Package acl is the anti-corruption layer between the journal service's
// wire format and the domain. The console tool uses it in remote mode so
// it can drive a running service through the same ports.Journal interface
// it uses for the local file.
//
// Wire DTOs stay unexported here. Responses are validated before domain
// values are built, and HTTP failures are mapped to domain errors
// (NotFound, Validation, Unavailable) so callers never see status codes.
package acl
