package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zostay/go-mailfield/message/transfer"
)

var (
	codecCmd = &cobra.Command{
		Use:   "codec name",
		Short: "Encodes stdin with the named transfer encoding, decodes it again, and reports any difference",
		Args:  cobra.MaximumNArgs(1),
		RunE:  RunCodec,
	}

	showEncoded bool
)

func init() {
	codecCmd.Flags().BoolVar(&showEncoded, "show", false, "print the encoded form")
	rootCmd.AddCommand(codecCmd)
}

func RunCodec(cmd *cobra.Command, args []string) error {
	reg := transfer.NewRegistry()
	out := cmd.OutOrStdout()

	if len(args) == 0 {
		fmt.Fprintln(out, strings.Join(reg.Names(), "\n"))
		return nil
	}

	c, err := reg.Lookup(args[0])
	if err != nil {
		return err
	}

	in, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("unable to read input: %w", err)
	}

	enc, err := c.Encode(in)
	if err != nil {
		return err
	}
	if showEncoded {
		fmt.Fprint(out, enc)
	}

	dec, err := c.Decode(enc)
	if err != nil {
		return err
	}

	if string(dec) != string(in) {
		return fmt.Errorf("%s: decoded %d bytes, expected %d", c.Name, len(dec), len(in))
	}

	fmt.Fprintf(out, "%s: %d bytes in, %d encoded, round-trip ok\n", c.Name, len(in), len(enc))
	return nil
}
