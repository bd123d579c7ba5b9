// Package backend defines the HTTP-like collaborator used to reach the
// correlation collection resource, the resource paths, and the transport
// error every implementation reports failures with.
//
// Two implementations ship with the module: rest (net/http against a live
// server) and memory (an in-process rendition of the same resource table).
package backend
