// Package requestid tags each HTTP request with a correlation id.
//
// Middleware reuses a client-supplied X-Request-ID when it is made of
// letters, digits, '-' or '_' and at most 128 bytes long; anything else is
// replaced by a fresh UUID. LoggerExtractor plugs the id into
// logger.WithContextExtractors so session log lines can be traced back to
// the request that produced them.
package requestid
