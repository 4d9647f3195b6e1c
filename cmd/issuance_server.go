package cmd

import (
	"fmt"
	"os"
	"regexp"
	"syscall"

	"github.com/go-errors/errors"
	"github.com/minvws/nl-covid19-coronacheck-dgc/issuer/hsmsigner"
	"github.com/minvws/nl-covid19-coronacheck-dgc/issuer/localsigner"
	"github.com/minvws/nl-covid19-coronacheck-dgc/issuer/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

// Every usage gets its own certificate and key, the flags are generated per usage
var keyUsages = []string{"vaccination", "test", "recovery"}

var countryCodeRegexp = regexp.MustCompile("^[A-Z]{2}$")

var issuanceServerCmd = &cobra.Command{
	Use:   "issuance-server",
	Short: "Serve signed credentials over HTTP, for testing verifiers",
	Run: func(cmd *cobra.Command, args []string) {
		config, err := configureIssuanceServer(cmd, readPIN)
		if err != nil {
			exitWithError(err)
		}

		err = server.Run(config)
		if err != nil {
			exitWithError(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(issuanceServerCmd)
	setIssuanceServerFlags(issuanceServerCmd)
}

func setIssuanceServerFlags(cmd *cobra.Command) {
	setServerFlags(cmd, "4002")

	flags := cmd.Flags()
	flags.String("issuer-country-code", "NL", "ISO 3166-1 alpha-2 code put in the CWT issuer claim")

	for _, usage := range keyUsages {
		flags.String(localFlag(usage, "certificate-path"), "./cert.pem", fmt.Sprintf("PEM certificate for %s credentials", usage))
		flags.String(localFlag(usage, "key-path"), "./sk.pem", fmt.Sprintf("PEM private key for %s credentials", usage))
	}

	flags.Bool("enable-hsm", false, "sign with keys on a PKCS#11 token instead of local key files")
	flags.String("pkcs11-module-path", "", "path to the PKCS#11 module")
	flags.String("token-label", "", "label of the token holding the keys")

	for _, usage := range keyUsages {
		flags.String(hsmFlag(usage, "certificate-path"), "", fmt.Sprintf("PEM certificate for the %s key on the token", usage))
		flags.Int(hsmFlag(usage, "key-id"), 0, fmt.Sprintf("id of the %s key on the token", usage))
		flags.String(hsmFlag(usage, "key-label"), "", fmt.Sprintf("label of the %s key on the token", usage))
	}
}

func localFlag(usage, name string) string {
	return fmt.Sprintf("local-%s-%s", usage, name)
}

func hsmFlag(usage, name string) string {
	return fmt.Sprintf("hsm-%s-%s", usage, name)
}

// configureIssuanceServer only asks for a PIN when the HSM signer is enabled
func configureIssuanceServer(cmd *cobra.Command, pin func() (string, error)) (*server.Configuration, error) {
	err := bindConfig(cmd)
	if err != nil {
		return nil, err
	}

	countryCode := viper.GetString("issuer-country-code")
	if !countryCodeRegexp.MatchString(countryCode) {
		return nil, errors.Errorf("Invalid issuer country code '%s', expected ISO 3166-1 alpha-2", countryCode)
	}

	config := &server.Configuration{
		ListenAddress:     viper.GetString("listen-address"),
		ListenPort:        viper.GetString("listen-port"),
		IssuerCountryCode: countryCode,
	}

	if !viper.GetBool("enable-hsm") {
		config.LocalSignerConfig = localSignerConfig()
		return config, nil
	}

	userPIN, err := pin()
	if err != nil {
		return nil, err
	}

	config.HSMSignerConfig = hsmSignerConfig(userPIN)
	return config, nil
}

func localSignerConfig() *localsigner.Configuration {
	config := &localsigner.Configuration{}
	for _, usage := range keyUsages {
		config.KeyDescriptions = append(config.KeyDescriptions, &localsigner.KeyDescription{
			KeyUsage:        usage,
			CertificatePath: viper.GetString(localFlag(usage, "certificate-path")),
			KeyPath:         viper.GetString(localFlag(usage, "key-path")),
		})
	}

	return config
}

func hsmSignerConfig(pin string) *hsmsigner.Configuration {
	config := &hsmsigner.Configuration{
		PKCS11ModulePath: viper.GetString("pkcs11-module-path"),
		TokenLabel:       viper.GetString("token-label"),
		Pin:              pin,
	}

	for _, usage := range keyUsages {
		config.KeyDescriptions = append(config.KeyDescriptions, &hsmsigner.KeyDescription{
			KeyUsage:        usage,
			CertificatePath: viper.GetString(hsmFlag(usage, "certificate-path")),
			KeyID:           viper.GetInt(hsmFlag(usage, "key-id")),
			KeyLabel:        viper.GetString(hsmFlag(usage, "key-label")),
		})
	}

	return config
}

func readPIN() (string, error) {
	_, _ = fmt.Fprint(os.Stderr, "HSM user PIN: ")
	pin, err := term.ReadPassword(int(syscall.Stdin))
	_, _ = fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", errors.WrapPrefix(err, "Could not read HSM user PIN", 0)
	}

	return string(pin), nil
}
