// Package logger builds *slog.Logger instances configured through functional
// options and decorated with context extractors.
//
// New picks a text or JSON handler, applies static attributes and wraps the
// result in LogHandlerDecorator, which pulls request-scoped values (request
// id, environment) out of the context on every record:
//
//	log := logger.New(
//		logger.WithEnvironment(cfg.Env, "regform"),
//		logger.WithContextExtractors(
//			requestid.LoggerExtractor(),
//			environment.LoggerExtractor(),
//		),
//	)
//	log.InfoContext(ctx, "registration accepted", logger.Component("registration"))
//
// Attribute helpers in attr.go keep key names consistent across packages.
package logger
