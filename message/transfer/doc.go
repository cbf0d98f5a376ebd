// Package transfer contains the named transfer encodings used to move message
// bodies through 7bit-safe transports. A Registry maps a case-insensitive
// Content-transfer-encoding name (plus any aliases) to a Codec, which can
// encode and decode either as streams or as whole byte slices.
//
// For the sake of this package, "decoded" means the raw body bytes and
// "encoded" means the wire-safe text produced by the named encoding.
//
// The uuencode codec is deliberately asymmetric: Decode accepts and strips a
// leading "begin <mode> <name>" line and stops at "end", while Encode only
// produces the packed lines without that wrapper.
package transfer
