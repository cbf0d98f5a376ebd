package field

import (
	"errors"
	"io"
	"strings"
)

const (
	DefaultFoldIndent          = " "  // indent placed before folded lines
	DefaultPreferredFoldLength = 80   // we prefer header lines shorter than this
	DefaultForcedFoldLength    = 1000 // we forceably break header lines longer than this

	DoNotFold = -1 // we prefer not to fold at all
)

var (
	// DefaultFoldEncoding creates a new FoldEncoding using default settings. This
	// is the recommended way to create a FoldEncoding.
	DefaultFoldEncoding = &FoldEncoding{
		DefaultFoldIndent,
		DefaultPreferredFoldLength,
		DefaultForcedFoldLength,
	}

	// DoNotFoldEncoding is a FoldEncoding that doesn't perform folding.
	DoNotFoldEncoding = &FoldEncoding{
		DefaultFoldIndent,
		DoNotFold,
		DoNotFold,
	}
)

var (
	// ErrFoldIndentSpace is returned by NewFoldEncoding when a non-space/non-tab
	// character is put in the foldIndent setting.
	ErrFoldIndentSpace = errors.New("fold indent may only contains spaces and tabs")

	// ErrFoldIndentTooShort is returned by NewFoldEncoding when the foldIndent
	// is empty.
	ErrFoldIndentTooShort = errors.New("fold indent must contain at least one space or tab")

	// ErrFoldIndentTooLong is returned by NewFoldEncoding when the foldIndent
	// setting is equal to or longer than the preferredFoldLength.
	ErrFoldIndentTooLong = errors.New("fold indent must be shorter than the preferred fold length")

	// ErrFoldLengthTooLong is returned by NewFoldEncoding when the
	// preferredFoldLength is longer than the forcedFoldLength.
	ErrFoldLengthTooLong = errors.New("preferred fold length must be no longer than the forced fold length")

	// ErrFoldLengthTooShort is returned by NewFoldEncoding when the
	// forcedFoldLength is shorter than 3 bytes long.
	ErrFoldLengthTooShort = errors.New("preferred fold length and forced fold length cannot be too short")

	// ErrDoNotFold is returned by NewFoldEncoding when the preferredFoldLength
	// or forcedFoldLength are set to DoNotFold (-1), but both are not set that
	// way. You must set both to DoNotFold to prevent folding or neither to
	// DoNotFold.
	ErrDoNotFold = errors.New("preferred fold length and forced fold length must both be -1 if either are -1")
)

// Break is the line break written at the end of each physical line.
type Break []byte

// FoldEncoding provides the tooling for folding email message headers.
type FoldEncoding struct {
	foldIndent          string
	preferredFoldLength int
	forcedFoldLength    int
}

// NewFoldEncoding creates a new FoldEncoding with the given settings. The
// foldIndent must be a string, filled with one or more space or tab characters,
// and it must be shorter than the preferredFoldLength. The preferredFoldLength
// must be equal to or less than forcedFoldLength. if any of the given inputs do
// not meet these requirements, an error will be returned.
//
// The fold encoding never folds before the colon. It relies on the assumption
// that the fold lengths chosen will be wider than the longest field name.
func NewFoldEncoding(
	foldIndent string,
	preferredFoldLength,
	forcedFoldLength int,
) (*FoldEncoding, error) {
	if ix := strings.IndexFunc(foldIndent, func(c rune) bool { return !isSpace(c) }); ix >= 0 {
		return nil, ErrFoldIndentSpace
	}

	if len(foldIndent) < 1 {
		return nil, ErrFoldIndentTooShort
	}

	if (preferredFoldLength == DoNotFold && forcedFoldLength != DoNotFold) ||
		(forcedFoldLength == DoNotFold && preferredFoldLength != DoNotFold) {
		return nil, ErrDoNotFold
	}

	if preferredFoldLength != DoNotFold {
		// if we aren't folding, we don't have to worry about these
		if len(foldIndent) >= preferredFoldLength {
			return nil, ErrFoldIndentTooLong
		}

		if preferredFoldLength > forcedFoldLength {
			return nil, ErrFoldLengthTooLong
		}

		// This is WAY too short, but I'm not the too short line police. Stop
		// only where the folder itself would choke.
		if preferredFoldLength < 3 || forcedFoldLength < 3 {
			return nil, ErrFoldLengthTooShort
		}
	}

	return &FoldEncoding{foldIndent, preferredFoldLength, forcedFoldLength}, nil
}

// Folding returns false for DoNotFoldEncoding and its equivalents.
func (vf *FoldEncoding) Folding() bool {
	return vf.preferredFoldLength != DoNotFold
}

// Unfold will take a folded header line from an email and unfold it for
// reading. This gives you the proper header body value.
func (vf *FoldEncoding) Unfold(f []byte) []byte {
	uf := make([]byte, 0, len(f))
	for _, b := range f {
		if !isCRLF(rune(b)) {
			uf = append(uf, b)
		}
	}
	return uf
}

func isCRLF(c rune) bool  { return c == '\r' || c == '\n' }
func isSpace(c rune) bool { return c == ' ' || c == '\t' }
func isFWS(c byte) bool   { return c == ' ' || c == '\t' || c == '\r' || c == '\n' }

// foldWriter tracks the width of the current physical line and the running
// byte count.
type foldWriter struct {
	out   io.Writer
	total int64
	col   int
	err   error
}

func (fw *foldWriter) write(s string) {
	if fw.err != nil || s == "" {
		return
	}
	n, err := io.WriteString(fw.out, s)
	fw.total += int64(n)
	fw.err = err
	if ix := strings.LastIndexAny(s, "\r\n"); ix >= 0 {
		fw.col = len(s) - ix - 1
	} else {
		fw.col += len(s)
	}
}

// Unit is one element of a list body, such as a mailbox or a group.
type Unit struct {
	Text   string
	Atomic bool // never folded inside, as for an address group
}

// FoldUnits writes "name: " followed by units joined with ", ". When folding
// is on and there is more than one unit, every unit after the first starts on
// a new continuation line. A unit that is not atomic is also folded at its own
// whitespace when a token would run the line past the preferred length.
// Quoted-strings and encoded-words are never split. The output always ends
// with lb.
func (vf *FoldEncoding) FoldUnits(out io.Writer, name string, units []Unit, lb Break) (int64, error) {
	fw := &foldWriter{out: out}
	fw.write(name + ": ")
	for i, u := range units {
		if i > 0 {
			fw.write(", ")
			if vf.Folding() {
				fw.write(string(lb) + vf.foldIndent)
			}
		}

		if u.Atomic || !vf.Folding() {
			fw.write(u.Text)
			continue
		}
		vf.foldChunks(fw, chunks(u.Text), lb, false)
	}
	fw.write(string(lb))
	return fw.total, fw.err
}

// chunk is a run of non-whitespace text along with the whitespace before it.
type chunk struct {
	space  string
	text   string
	atomic bool // holds a quoted-string or encoded-word
}

// chunks splits s at whitespace outside of quoted-strings.
func chunks(s string) []chunk {
	var (
		cs      []chunk
		cur     chunk
		inQuote bool
		start   = -1
	)

	flush := func(end int) {
		if start < 0 {
			return
		}
		cur.text = s[start:end]
		cur.atomic = cur.atomic || IsEncodedWord(cur.text)
		cs = append(cs, cur)
		cur = chunk{}
		start = -1
	}

	spaceStart := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case inQuote && c == '\\':
			i++
		case c == '"':
			inQuote = !inQuote
			cur.atomic = true
		case !inQuote && isFWS(c):
			if start >= 0 {
				flush(i)
				spaceStart = i
			}
			continue
		}

		if start < 0 {
			cur.space = s[spaceStart:i]
			start = i
		}
	}
	flush(len(s))

	return cs
}

// FoldText writes "name: " followed by value, moving a chunk to a new
// continuation line whenever writing it would run the line past the preferred
// length. Plain chunks that would run past the forced length are broken hard.
// Whitespace inside quoted-strings is never used as a fold point.
func (vf *FoldEncoding) FoldText(out io.Writer, name, value string, lb Break) (int64, error) {
	fw := &foldWriter{out: out}
	fw.write(name + ": ")

	if !vf.Folding() {
		fw.write(value)
		fw.write(string(lb))
		return fw.total, fw.err
	}

	vf.foldChunks(fw, chunks(value), lb, true)

	fw.write(string(lb))
	return fw.total, fw.err
}

// foldChunks writes cs, starting a continuation line before any chunk that
// would run the line past the preferred length. The first chunk always stays
// on the current line. With hard set, plain chunks running past the forced
// length are broken wherever the limit falls.
func (vf *FoldEncoding) foldChunks(fw *foldWriter, cs []chunk, lb Break, hard bool) {
	for i, c := range cs {
		space := c.space
		if i == 0 {
			space = ""
		} else if strings.ContainsAny(space, "\r\n") {
			space = " "
		}

		if i > 0 && fw.col+len(space)+len(c.text) > vf.preferredFoldLength-2 {
			fw.write(string(lb) + vf.foldIndent)
		} else {
			fw.write(space)
		}

		text := c.text
		for hard && !c.atomic && fw.col+len(text) > vf.forcedFoldLength-2 {
			n := vf.forcedFoldLength - 2 - fw.col
			if n < 1 {
				n = 1
			}
			fw.write(text[:n])
			fw.write(string(lb) + vf.foldIndent)
			text = text[n:]
		}
		fw.write(text)
	}
}
