// Package httputil provides JSON request and response helpers for the
// netvalue HTTP API.
//
// # Overview
//
//   - [DecodeJSON]: strict body decoding followed by struct validation
//   - [WriteJSON]: JSON responses with the right content type
//   - [WriteError]: the error envelope, with the status chosen by [StatusFor]
//
// # Error Envelope
//
// Every failed request gets the same body shape:
//
//	{
//	  "error": {"code": "INVALID_SOURCE", "message": "source node \"x\" is not in the graph"},
//	  "request_id": "5f1c..."
//	}
//
// The code is the pkg/errors code, so clients can branch on it without
// parsing messages. Internal errors are reported with a generic message;
// the cause is only logged.
package httputil
