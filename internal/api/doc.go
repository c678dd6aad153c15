// Package api provides HTTP client functionality for communicating with the
// TrueSocks API (v2.1). It handles request construction, authentication,
// response envelope decoding, and error classification.
//
// # Wire Protocol
//
// Every command is an HTTP GET against the API root. The API key, command
// name, and command-specific parameters travel in the query string as key,
// cmd, and friends. Responses are JSON envelopes:
//
//	{"status": {"code": 0, "message": "OK"}, "result": {...}}
//
// Envelope codes 0 and 209 mean success; any other code is surfaced as a
// [StatusError] with the API's code and message.
//
// # Error Handling
//
// Failures are classified into four kinds:
//
//   - [TransportError]: the request never produced an HTTP response.
//   - [HTTPError]: a non-2xx HTTP status. 401/403 match [ErrUnauthorized]
//     and 429 matches [ErrRateLimited] via errors.Is.
//   - [StatusError]: the envelope reports a non-success code.
//   - [DecodeError]: the body does not match the contracted shape.
//
// Nothing is retried or recovered locally; every error propagates to the
// caller.
//
// # Thread Safety
//
// The [Client] type is safe for concurrent use. Multiple goroutines may call
// methods on a single Client simultaneously.
package api
