// Package service provides domain services for SessGate.
//
// Domain services contain the session/authorization core and define
// interfaces for their storage dependencies, allowing for dependency
// injection and testability. This package contains:
//
//   - SessionService: token minting, resolution, renewal, invalidation
//   - TimeoutPolicy: the process-wide mutable default session lifetime
//   - Gate: the uniform authorization gate used by every protected
//     operation (resolve token → principal → require role)
//   - CredentialService: registration and password verification
//
// Services are stateless apart from the injected stores and are safe
// for arbitrary concurrent use. None of them hold a lock across a call
// to a collaborator.
package service
