// Package mailfield is the root of a library for reading and writing the
// header fields of Internet mail, along with the transfer encodings used to
// carry message bodies.
//
// The work is split by concern. The message/header package holds the typed
// fields (addresses, dates, trace lines, and free text) and the Registry that
// builds them, and the Header collection that parses a whole header block.
// Below it, message/header/address, message/header/datetime, and
// message/header/trace parse the structured bodies, while message/header/field
// handles RFC 2047 encoded-words and line folding. The message/transfer
// package maps Content-Transfer-Encoding names to codecs.
//
// Parsing is forgiving throughout. Text that cannot be understood is kept and
// written back out as it was found. Output is strict: folded at the configured
// width, with non-ASCII text written as encoded-words.
package mailfield
