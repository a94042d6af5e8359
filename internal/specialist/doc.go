// Package specialist handles everything on the remote side of the router:
// discovering specialist services from their well-known descriptors, mapping
// them onto the news and finance roles, dispatching tasks over the
// message/send protocol with per-session context continuity, and extracting
// clean deduplicated text from their structured results.
//
// Specialists are opaque collaborators. The router never generates content
// itself; it classifies, dispatches, and assembles what specialists return.
// Accordingly every remote failure in this package degrades to an absent
// registration or a nil result rather than an error that could abort a
// request.
package specialist
