// Package client is the single choke point for calls to the Transellia backend.
//
// # Result contract
//
// Every call resolves to a Response[T]; nothing in this package returns a Go
// error or panics at the caller. The backend wraps payloads in an envelope
//
//	{"success": true, "message": "...", "content": {...}, "meta": {"token": "..."}, "errors": [...]}
//
// which is decoded into a typed struct and unwrapped: content becomes Data and
// meta.token becomes Token. Outcomes are normalized as follows:
//
//   - 2xx with a well-formed envelope: fields copied; content that does not fit
//     T fails closed with MsgUnexpectedResponse.
//   - non-2xx: Success=false, the backend message (or MsgRequestFailed) and any
//     field errors.
//   - transport failure, unreadable or malformed body: Success=false with
//     MsgNetworkError.
//
// A failed Response always carries a non-empty Message, and Errors is never nil.
//
// # Headers
//
// Each request carries Content-Type, the static API key and a fresh request id.
// When the TokenSource holds a token at the moment the request is built, an
// Authorization: Bearer header is added as well; tokens are never cached here.
//
// There is no retry policy. Callers decide whether to try again.
package client
