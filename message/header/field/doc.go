// Package field holds the low-level pieces shared by every header field
// variant: the RFC 2047 encoded-word codec, the line folder that turns an
// encoded value into wire text, and the splitter that breaks a raw header
// block into its field lines.
package field
