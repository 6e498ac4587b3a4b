// Package audit emits structured operation events in RFC5424 syslog
// format.
//
// Every drive and push operation the server performs produces one
// event: scans, link resolutions, index deletions, notifications and
// token exchanges. Events carry structured data blocks keyed by the
// server's SDID namespace and land on stdout by default.
package audit
