// Package requestid carries request correlation identifiers through
// context.Context, outbound HTTP requests, and structured logs.
//
// The API client stamps every request with the "X-Request-ID" header using
// the id stored in the context (Ensure adds one when it is missing), and the
// local mock API echoes it back through Middleware. LoggerExtractor plugs the
// same id into pkg/logger so client and server log records line up.
//
//	ctx, id := requestid.Ensure(ctx)
//	log := logger.New(logger.WithContextExtractors(requestid.LoggerExtractor()))
//	log.InfoContext(ctx, "logging in") // request_id=<id>
//
// Ids are UUIDv4 strings; ids received from peers are accepted when they are
// at most 128 characters of [a-zA-Z0-9_-].
package requestid
