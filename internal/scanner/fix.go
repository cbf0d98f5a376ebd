package scanner

import "bufio"

// MakeSplitFuncExitByAdvance wraps a bufio.SplitFunc so that the scanner keeps
// going when the split function consumes input without producing a token.
//
// A plain bufio.Scanner stops as soon as the split function returns a nil
// token at EOF, even when it just skipped some whitespace and there is more
// input behind it. That forces every split function to carry its own inner
// loop. With this wrapper, the split function may return (n, nil, nil) to
// mean "skip n bytes" and the wrapper will call it again on the rest.
//
// The wrapper returns when:
//
//   - a token is produced,
//   - an error is returned,
//   - the split function asks for more data (advance == 0), or
//   - all of data has been consumed.
//
// The advance reported to the scanner is the sum of every inner advance.
func MakeSplitFuncExitByAdvance(split bufio.SplitFunc) bufio.SplitFunc {
	return func(data []byte, atEOF bool) (int, []byte, error) {
		totalAdvance := 0
		for {
			advance, token, err := split(data, atEOF)
			if token != nil || err != nil || advance == 0 || len(data)-advance <= 0 {
				return totalAdvance + advance, token, err
			}

			data = data[advance:]
			totalAdvance += advance
		}
	}
}
