package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"

	"github.com/zostay/go-mailfield/message/header"
	"github.com/zostay/go-mailfield/message/header/field"
)

var (
	oneCmd = &cobra.Command{
		Use:   "one message",
		Short: "Shows the diff of a single message header round-trip",
		Args:  cobra.ExactArgs(1),
		RunE:  RunOne,
	}

	charset string
	noFold  bool
)

func init() {
	oneCmd.Flags().StringVar(&charset, "charset", field.DefaultCharset, "charset used for encoded-words on output")
	oneCmd.Flags().BoolVar(&noFold, "no-fold", false, "write every field on a single line")
	rootCmd.AddCommand(oneCmd)
}

// splitHeader returns the header block of msg and the line break it uses.
func splitHeader(msg []byte) ([]byte, header.Break) {
	lb := header.LF
	if bytes.Contains(msg, []byte("\r\n")) {
		lb = header.CRLF
	}

	end := bytes.Index(msg, []byte(lb+lb))
	if end < 0 {
		return msg, lb
	}
	return msg[:end+len(lb)], lb
}

func RunOne(cmd *cobra.Command, args []string) error {
	path := args[0]
	msg, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("unable to read %q: %w", path, err)
	}

	hdr, lb := splitHeader(msg)

	opts := []header.Option{
		header.WithBreak(lb),
		header.WithCharset(charset),
		header.WithLogger(logger()),
	}
	if noFold {
		opts = append(opts, header.WithFoldEncoding(field.DoNotFoldEncoding))
	}

	h, err := header.Parse(hdr, lb, header.NewRegistry(opts...))
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
	}

	// Suppressed fields are part of the input, so put them back for the
	// comparison.
	for _, f := range h.Fields() {
		f.SetIncludeInOutput(true)
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(string(hdr), h.String(), false)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "path   = %s\n", path)
	fmt.Fprintf(out, "fields = %d\n", h.Len())
	fmt.Fprintln(out, dmp.DiffPrettyText(diffs))

	return nil
}
