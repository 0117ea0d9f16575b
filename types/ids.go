// Package types defines the Discord resource shapes the transport core
// references by role: the bodies it serializes for REST requests and the
// payloads it deserializes from REST responses and gateway dispatches.
//
// It intentionally does not attempt to model every field Discord documents.
// The transport core's contract is the wire shape, not full domain coverage;
// callers needing additional fields can extend these types without touching
// the gateway or REST machinery.
package types

// Snowflake is a Discord-assigned unique ID. Discord transmits snowflakes as
// JSON strings (int64 would lose precision in JavaScript consumers), so Go
// code should do the same rather than round-trip through a numeric type.
type Snowflake = string
