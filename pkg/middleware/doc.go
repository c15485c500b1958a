/*
Package middleware provides stock interceptors for the flux dispatch
pipeline: structured logging, action gating and transformation, delayed
forwarding, Prometheus metrics, and snapshot persistence.

All constructors return a flux.Middleware and compose in declaration
order (first given is outermost).
*/
package middleware
