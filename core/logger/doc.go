// Package logger provides structured logging attribute helpers built on
// Go's standard slog package.
//
// Helpers return empty Attrs for nil or zero inputs, so call sites never
// need explicit nil checks:
//
//	import "github.com/kylelaverty/FastEndpoints/core/logger"
//
//	log.Info("command completed",
//	    logger.Component("command"),
//	    logger.CommandName(name),
//	    logger.Elapsed(start),
//	    logger.Error(err), // no-op attribute when err is nil
//	)
package logger
