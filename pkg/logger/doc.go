// Package logger builds log/slog loggers for the social client and its tools.
//
// New returns a *slog.Logger configured through functional options:
//
//   - WithFormat / WithTextFormatter / WithJSONFormatter select the output encoding.
//   - WithLevel sets the minimum level; ParseLevel turns config strings into levels.
//   - WithAttr attaches static attributes to every record.
//   - WithContextExtractors / WithContextValue inject attributes taken from the
//     context.Context passed to the *Context logging methods (request ids, for example).
//   - WithEnvironment applies development or production defaults.
//
// Context extraction is done by a handler decorator that runs the registered
// extractors on every Handle call, so values are read when the record is written.
//
// Attribute helpers (Error, UserID, Email, Component, Operation, ...) keep key
// names consistent across packages. Helpers that receive a nil value return an
// empty slog.Attr, which slog drops:
//
//	log.ErrorContext(ctx, "store write failed", logger.Component("authsession"), logger.Error(err))
//
// Discard returns a logger that writes nothing; packages use it when the caller
// does not provide one.
package logger
