// Package engine drives the request routing pipeline. Each user message
// makes one pass through a fixed state machine: the text is classified,
// the routing policy is evaluated against specialist availability, the
// chosen specialist is dispatched, and the response fragments are composed
// in order. Specialist failures degrade to fixed explanatory fragments;
// the pipeline itself never returns an error to the caller.
package engine
