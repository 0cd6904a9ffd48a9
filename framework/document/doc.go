// Package document provides page documents for the container's file loader.
//
// HTTP fetches each element's path from an origin and reports the outcome.
// Memory settles elements in-process from a script of outcomes; it backs
// dry runs and tests.
package document
