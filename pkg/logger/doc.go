// Package logger builds *slog.Logger values for the session service and
// supplies attribute helpers with consistent key names.
//
// New picks a text or JSON handler, applies static attributes and wraps the
// handler with LogHandlerDecorator, which appends attributes pulled from the
// request context (for example the request id) on every record.
//
//	log := logger.New(
//	    logger.WithEnvironment(os.Getenv("APP_ENV"), "sessiond"),
//	    logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	log.WarnContext(ctx, "session signature mismatch", logger.SessionID(id))
//
// SessionID truncates identifiers because a full session id is a bearer
// credential. NewNop returns a logger that discards everything and is the
// default for library types that accept an optional logger.
package logger
