// Package header turns header field text into typed fields and back into
// folded wire text.
//
// Every field is one of a closed set of variants: AddressField for mailbox
// lists, SuppressedField for blind copies, DateField, TraceField for Received,
// and UnstructuredField for everything else. A Registry decides which variant
// a name gets, how names are cased on output, and which charset, fold
// encoding, and line break are used when encoding.
//
// Fields keep their raw text and parse it on first structured access. The
// parse is cached and survives mutation; only the encoded form is recomputed.
// Parsing never fails. Text that does not parse is kept and written back out
// as it was found.
package header
