// Package requestid assigns every request an X-Request-ID, stores it in the
// request context and exposes it to the logger.
//
// Incoming ids are kept when they are at most 128 characters of
// [a-zA-Z0-9_-]; anything else is replaced with a fresh UUID.
package requestid
