// Package wikidata talks to the Wikidata SPARQL endpoint and converts
// its JSON result bindings into artwork records.
//
// The endpoint is rate limited; Client honours HTTP 429 with a fixed
// cooldown and escalating waits on server errors. Callers pace their
// own request batches (see pipeline).
package wikidata

import "errors"

// ErrTransient marks failures worth retrying: timeouts, connection
// errors, HTTP 429, and 5xx responses.
var ErrTransient = errors.New("wikidata: transient fetch failure")

// ErrFatal marks failures a retry cannot fix: malformed queries, 4xx
// responses other than 429, and undecodable response bodies.
var ErrFatal = errors.New("wikidata: fatal fetch failure")
