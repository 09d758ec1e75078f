// Package backendstub is an in-memory stand-in for the legalwriter REST
// backend. It issues real HS256 JWTs, enforces bearer authentication and
// mirrors the backend's routes and error documents closely enough for
// end-to-end tests of the client.
package backendstub
