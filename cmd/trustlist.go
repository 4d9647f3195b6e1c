package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/go-errors/errors"
	"github.com/minvws/nl-covid19-coronacheck-dgc/trustlist"
	"github.com/minvws/nl-covid19-coronacheck-dgc/trustlist/boltstore"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var trustListCmd = &cobra.Command{
	Use:   "trustlist",
	Short: "Manage the persisted trust list",
}

var trustListImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a trust list JSON mirror into a trust list database",
	Run: func(cmd *cobra.Command, args []string) {
		err := viper.BindPFlags(cmd.Flags())
		if err != nil {
			exitWithError(err)
		}

		err = importTrustList(viper.GetString("json"), viper.GetString("db"))
		if err != nil {
			exitWithError(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(trustListCmd)
	trustListCmd.AddCommand(trustListImportCmd)

	flags := trustListImportCmd.Flags()
	flags.SortFlags = false

	flags.String("json", "", "path to the trust list JSON file (kid to public key object)")
	flags.String("db", "./trustlist.db", "path to the trust list database")
}

// setTrustListFlags adds the flags that select where trusted keys come from
func setTrustListFlags(cmd *cobra.Command) {
	flags := cmd.Flags()

	flags.String("trustlist-json", "", "path to a trust list JSON file")
	flags.String("trustlist-db", "", "path to a trust list database created with 'trustlist import'")
	flags.StringSlice("certificate", nil, "base64 encoded DER certificate of a trusted signer (repeatable)")
}

// loadTrustList combines the database, the JSON file and the certificates, in that order
func loadTrustList() (*trustlist.TrustList, error) {
	tl := trustlist.New()

	dbPath := viper.GetString("trustlist-db")
	if dbPath != "" {
		store, err := boltstore.Open(dbPath)
		if err != nil {
			return nil, err
		}
		defer store.Close()

		tl, err = store.Load()
		if err != nil {
			return nil, err
		}
	}

	jsonPath := viper.GetString("trustlist-json")
	if jsonPath != "" {
		jsonTl, err := readTrustListJSON(jsonPath)
		if err != nil {
			return nil, err
		}

		for _, key := range jsonTl.Keys() {
			tl.Add(key.KID, key.PublicKey)
		}
	}

	for _, certificate := range viper.GetStringSlice("certificate") {
		err := tl.AddKeyFromCertificate(certificate)
		if err != nil {
			return nil, errors.WrapPrefix(err, "Could not add certificate to trust list", 0)
		}
	}

	slog.Info("Loaded trust list", "keys", tl.Len())

	return tl, nil
}

func importTrustList(jsonPath, dbPath string) error {
	if jsonPath == "" {
		return errors.Errorf("No trust list JSON file was provided")
	}

	tl, err := readTrustListJSON(jsonPath)
	if err != nil {
		return err
	}

	store, err := boltstore.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	err = store.Save(tl)
	if err != nil {
		return err
	}

	slog.Info("Imported trust list", "keys", tl.Len(), "db", dbPath)

	return nil
}

func readTrustListJSON(path string) (*trustlist.TrustList, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		msg := fmt.Sprintf("Could not read trust list file %s", path)
		return nil, errors.WrapPrefix(err, msg, 0)
	}

	tl, err := trustlist.FromJSON(data)
	if err != nil {
		msg := fmt.Sprintf("Could not load trust list file %s", path)
		return nil, errors.WrapPrefix(err, msg, 0)
	}

	return tl, nil
}
