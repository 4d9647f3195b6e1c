package cmd

import (
	"io"
	"log/slog"
	"os"

	"github.com/minvws/nl-covid19-coronacheck-dgc/common"
	"github.com/minvws/nl-covid19-coronacheck-dgc/trustlist"
	"github.com/minvws/nl-covid19-coronacheck-dgc/verifier"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var validateCmd = &cobra.Command{
	Use:   "validate <credential | ->",
	Short: "Decode a credential and check its signature against a trust list",
	Long: "Decode a credential and check its signature against a trust list. The exit code is only " +
		"non-zero when the credential could not be decoded, the signature outcome is part of the output.",
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		err := bindConfig(cmd)
		if err != nil {
			exitWithError(err)
		}

		tl, err := loadTrustList()
		if err != nil {
			exitWithError(err)
		}

		err = runValidate(os.Stdout, os.Stdin, args[0], tl, viper.GetString("format"), viper.GetBool("expand"))
		if err != nil {
			exitWithError(err)
		}
	},
}

type validationOutput struct {
	ValidSignature    bool                        `json:"validSignature"`
	SignatureValidity *verifier.SignatureValidity `json:"signatureValidity"`
	HealthCertificate *common.Container           `json:"healthCertificate"`
}

func init() {
	rootCmd.AddCommand(validateCmd)

	flags := validateCmd.Flags()
	flags.SortFlags = false

	flags.String("config", "", "path to configuration file (JSON, TOML, YAML or INI)")
	flags.String("format", formatJSON, "output format, json or yaml")
	flags.Bool("expand", false, "replace value set codes with their descriptions")

	setTrustListFlags(validateCmd)
}

func runValidate(w io.Writer, stdin io.Reader, arg string, tl *trustlist.TrustList, format string, expand bool) error {
	credential, err := readCredential(arg, stdin)
	if err != nil {
		return err
	}

	container, validity, err := verifier.Validate(credential, tl)
	if err != nil {
		return err
	}

	if !validity.IsValid() {
		slog.Warn("Signature is not valid", "reason", validity.String())
	}

	// Expand after validating, the signature is over the coded values
	if expand {
		container.ExpandValues()
	}

	return writeOutput(w, format, &validationOutput{
		ValidSignature:    validity.IsValid(),
		SignatureValidity: validity,
		HealthCertificate: container,
	})
}
