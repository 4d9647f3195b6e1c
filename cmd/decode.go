package cmd

import (
	"io"
	"os"

	"github.com/minvws/nl-covid19-coronacheck-dgc/holder"
	"github.com/spf13/cobra"
)

var decodeCmd = &cobra.Command{
	Use:   "decode <credential | ->",
	Short: "Decode a credential without checking its signature",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		flags := cmd.Flags()
		format, _ := flags.GetString("format")
		expand, _ := flags.GetBool("expand")

		err := runDecode(os.Stdout, os.Stdin, args[0], format, expand)
		if err != nil {
			exitWithError(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(decodeCmd)

	flags := decodeCmd.Flags()
	flags.SortFlags = false

	flags.String("format", formatJSON, "output format, json or yaml")
	flags.Bool("expand", false, "replace value set codes with their descriptions")
}

func runDecode(w io.Writer, stdin io.Reader, arg, format string, expand bool) error {
	credential, err := readCredential(arg, stdin)
	if err != nil {
		return err
	}

	container, err := holder.Decode(credential)
	if err != nil {
		return err
	}

	if expand {
		container.ExpandValues()
	}

	return writeOutput(w, format, container)
}
