package cmd

import (
	"github.com/minvws/nl-covid19-coronacheck-dgc/verifier/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var verificationServerCmd = &cobra.Command{
	Use:   "verification-server",
	Short: "Verify credential signatures over HTTP",
	Run: func(cmd *cobra.Command, args []string) {
		config, err := configureVerificationServer(cmd)
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
	rootCmd.AddCommand(verificationServerCmd)
	setVerificationServerFlags(verificationServerCmd)
}

func setVerificationServerFlags(cmd *cobra.Command) {
	setServerFlags(cmd, "4003")
	setTrustListFlags(cmd)
}

func configureVerificationServer(cmd *cobra.Command) (*server.Configuration, error) {
	err := bindConfig(cmd)
	if err != nil {
		return nil, err
	}

	tl, err := loadTrustList()
	if err != nil {
		return nil, err
	}

	config := &server.Configuration{
		ListenAddress: viper.GetString("listen-address"),
		ListenPort:    viper.GetString("listen-port"),

		TrustList: tl,
	}

	return config, nil
}
