package relay

import (
	"os"
	"time"

	"github.com/mattn/go-colorable"
	"github.com/rs/zerolog"
)

// init configures the package-level Logger the same way the teacher's
// wrapper/log.go does: nanosecond timestamps, disabled by default so that
// importing this package is silent until a caller opts in.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.SetGlobalLevel(zerolog.Disabled)
}

// Logger is the package-level structured logger. Callers enable it with
// EnableLogging or EnableDebugLogging; by default it is silent.
var Logger = zerolog.New(os.Stdout)

// EnableLogging turns on leveled JSON logging to stdout.
func EnableLogging(level zerolog.Level) {
	zerolog.SetGlobalLevel(level)
}

// EnableDebugLogging switches the Logger to a colorized, human-readable
// console writer (via github.com/mattn/go-colorable, which makes ANSI color
// codes work on Windows consoles as well as ttys) and enables debug-level
// output. Intended for local development, not production — the console
// writer is slower than the default JSON writer.
func EnableDebugLogging() {
	Logger = zerolog.New(zerolog.ConsoleWriter{Out: colorable.NewColorableStdout()}).With().Timestamp().Logger()
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
}

// Log context keys, matching the teacher's wrapper/log.go vocabulary.
const (
	logCtxClient      = "client"
	logCtxCorrelation = "xid"
	logCtxRoute       = "route"
	logCtxEndpoint    = "endpoint"
	logCtxBucket      = "bucket"
	logCtxSession     = "session"
	logCtxPayload     = "payload"
	logCtxPayloadOp   = "opcode"
	logCtxEvent       = "event"
	logCtxCommand     = "command"
	logCtxCommandOp   = "opcode"
	logCtxCommandName = "name"
)

// logSession returns a log event scoped to a gateway Session.
func logSession(log *zerolog.Event, sessionID string) *zerolog.Event {
	return log.Timestamp().Str(logCtxSession, sessionID)
}

// logPayload annotates a log event with an inbound gateway payload's opcode.
func logPayload(log *zerolog.Event, op int) *zerolog.Event {
	return log.Dict(logCtxPayload, zerolog.Dict().Int(logCtxPayloadOp, op))
}

// logCommand annotates a log event with an outbound gateway command.
func logCommand(log *zerolog.Event, op int, name string) *zerolog.Event {
	return log.Dict(logCtxCommand, zerolog.Dict().
		Int(logCtxCommandOp, op).
		Str(logCtxCommandName, name),
	)
}

// logRequest annotates a log event with a REST request's identity.
func logRequest(log *zerolog.Event, xid, routeKey, endpoint string) *zerolog.Event {
	return log.Timestamp().
		Str(logCtxCorrelation, xid).
		Str(logCtxRoute, routeKey).
		Str(logCtxEndpoint, endpoint)
}
