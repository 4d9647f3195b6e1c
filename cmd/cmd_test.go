package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-errors/errors"
	"github.com/google/go-cmp/cmp"
	"github.com/minvws/nl-covid19-coronacheck-dgc/issuer/localsigner"
	"github.com/minvws/nl-covid19-coronacheck-dgc/trustlist"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func TestRunDecode(t *testing.T) {
	out := &bytes.Buffer{}
	err := runDecode(out, nil, atCredential, formatJSON, false)
	if err != nil {
		t.Fatal("Could not decode:", err.Error())
	}

	decoded := map[string]interface{}{}
	err = json.Unmarshal(out.Bytes(), &decoded)
	if err != nil {
		t.Fatal("Could not unmarshal output:", err.Error())
	}

	if decoded["issuer"] != "AT" {
		t.Fatal("Unexpected issuer in output", decoded["issuer"])
	}

	out.Reset()
	err = runDecode(out, nil, atCredential, formatYAML, true)
	if err != nil {
		t.Fatal("Could not decode:", err.Error())
	}

	yamlOutput := out.String()
	if !strings.Contains(yamlOutput, "issuer: AT\n") || !strings.Contains(yamlOutput, "mp: Comirnaty\n") {
		t.Fatal("Unexpected YAML output:\n", yamlOutput)
	}

	err = runDecode(out, nil, atCredential, "xml", false)
	if err == nil {
		t.Fatal("Expected an error for an unknown format")
	}
}

func TestReadCredential(t *testing.T) {
	credential, err := readCredential("-", strings.NewReader("\n"+atCredential+"\n"))
	if err != nil {
		t.Fatal("Could not read credential from stdin:", err.Error())
	}

	if credential != atCredential {
		t.Fatal("Unexpected credential", credential)
	}

	for _, arg := range []string{"NL2:ABC", "HC1:", "hello"} {
		_, err = readCredential(arg, nil)
		if err == nil {
			t.Fatalf("Expected an error for '%s'", arg)
		}
	}
}

func TestRunValidate(t *testing.T) {
	tl, err := trustlist.FromJSON([]byte(itTrustListJSON))
	if err != nil {
		t.Fatal("Could not load trust list:", err.Error())
	}

	cases := map[string]struct {
		tl     *trustlist.TrustList
		valid  bool
		status string
	}{
		"trusted":   {tl, true, "valid"},
		"untrusted": {trustlist.New(), false, "key_not_in_trust_list"},
	}

	for name, c := range cases {
		out := &bytes.Buffer{}
		err = runValidate(out, nil, itCredential, c.tl, formatJSON, false)
		if err != nil {
			t.Fatalf("%s: could not validate: %s", name, err.Error())
		}

		output := &struct {
			ValidSignature    bool `json:"validSignature"`
			SignatureValidity struct {
				Status string `json:"status"`
			} `json:"signatureValidity"`
		}{}

		err = json.Unmarshal(out.Bytes(), output)
		if err != nil {
			t.Fatalf("%s: could not unmarshal output: %s", name, err.Error())
		}

		if output.ValidSignature != c.valid || output.SignatureValidity.Status != c.status {
			t.Fatalf("%s: unexpected output %s", name, out.String())
		}
	}
}

func TestImportAndLoadTrustList(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	jsonPath, dbPath := filepath.Join(dir, "trustlist.json"), filepath.Join(dir, "trustlist.db")

	err := os.WriteFile(jsonPath, []byte(itTrustListJSON), 0600)
	if err != nil {
		t.Fatal("Could not write trust list file:", err.Error())
	}

	err = importTrustList(jsonPath, dbPath)
	if err != nil {
		t.Fatal("Could not import trust list:", err.Error())
	}

	viper.Set("trustlist-db", dbPath)
	viper.Set("certificate", []string{frCertificate})

	tl, err := loadTrustList()
	if err != nil {
		t.Fatal("Could not load trust list:", err.Error())
	}

	if tl.Len() != 2 {
		t.Fatal("Expected the imported key and the certificate key, got", tl.Len())
	}

	for _, credential := range []string{itCredential, frCredential} {
		out := &bytes.Buffer{}
		err = runValidate(out, nil, credential, tl, formatJSON, false)
		if err != nil {
			t.Fatal("Could not validate:", err.Error())
		}

		if !strings.Contains(out.String(), `"validSignature": true`) {
			t.Fatal("Expected a valid signature, got", out.String())
		}
	}

	err = importTrustList("", dbPath)
	if err == nil {
		t.Fatal("Expected an error without a JSON file")
	}

	err = importTrustList(filepath.Join(dir, "missing.json"), dbPath)
	if err == nil {
		t.Fatal("Expected an error for a missing JSON file")
	}
}

func TestConfigureIssuanceServer(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	configPath := filepath.Join(dir, "issuer.yaml")
	err := os.WriteFile(configPath, []byte("listen-port: \"5002\"\nlocal-test-key-path: /keys/test.pem\n"), 0600)
	if err != nil {
		t.Fatal("Could not write config file:", err.Error())
	}

	cmd := &cobra.Command{}
	setIssuanceServerFlags(cmd)
	_ = cmd.Flags().Set("config", configPath)
	_ = cmd.Flags().Set("local-recovery-certificate-path", "/keys/recovery.crt")

	noPIN := func() (string, error) {
		t.Fatal("Did not expect a PIN prompt for the local signer")
		return "", nil
	}

	config, err := configureIssuanceServer(cmd, noPIN)
	if err != nil {
		t.Fatal("Could not configure issuance server:", err.Error())
	}

	if config.ListenPort != "5002" || config.IssuerCountryCode != "NL" || config.HSMSignerConfig != nil {
		t.Fatal("Unexpected configuration", config)
	}

	expected := []*localsigner.KeyDescription{
		{KeyUsage: "vaccination", CertificatePath: "./cert.pem", KeyPath: "./sk.pem"},
		{KeyUsage: "test", CertificatePath: "./cert.pem", KeyPath: "/keys/test.pem"},
		{KeyUsage: "recovery", CertificatePath: "/keys/recovery.crt", KeyPath: "./sk.pem"},
	}

	if diff := cmp.Diff(expected, config.LocalSignerConfig.KeyDescriptions); diff != "" {
		t.Fatal("Unexpected key descriptions (-want +got):\n", diff)
	}
}

func TestConfigureIssuanceServerHSM(t *testing.T) {
	t.Cleanup(viper.Reset)

	cmd := &cobra.Command{}
	setIssuanceServerFlags(cmd)
	_ = cmd.Flags().Set("enable-hsm", "true")
	_ = cmd.Flags().Set("token-label", "dgc")
	_ = cmd.Flags().Set("hsm-test-key-id", "7")
	_ = cmd.Flags().Set("hsm-test-key-label", "test-key")

	config, err := configureIssuanceServer(cmd, func() (string, error) { return "1234", nil })
	if err != nil {
		t.Fatal("Could not configure issuance server:", err.Error())
	}

	hsmConfig := config.HSMSignerConfig
	if hsmConfig == nil || config.LocalSignerConfig != nil {
		t.Fatal("Expected only the HSM signer to be configured")
	}

	if hsmConfig.Pin != "1234" || hsmConfig.TokenLabel != "dgc" || len(hsmConfig.KeyDescriptions) != len(keyUsages) {
		t.Fatal("Unexpected HSM configuration", hsmConfig)
	}

	testKey := hsmConfig.KeyDescriptions[1]
	if testKey.KeyUsage != "test" || testKey.KeyID != 7 || testKey.KeyLabel != "test-key" {
		t.Fatal("Unexpected test key description", testKey)
	}
}

func TestConfigureIssuanceServerErrors(t *testing.T) {
	t.Cleanup(viper.Reset)

	cmd := &cobra.Command{}
	setIssuanceServerFlags(cmd)
	_ = cmd.Flags().Set("issuer-country-code", "NLD")

	_, err := configureIssuanceServer(cmd, readPIN)
	if err == nil {
		t.Fatal("Expected an error for a three letter country code")
	}

	viper.Reset()
	cmd = &cobra.Command{}
	setIssuanceServerFlags(cmd)
	_ = cmd.Flags().Set("enable-hsm", "true")

	_, err = configureIssuanceServer(cmd, func() (string, error) { return "", errors.Errorf("No terminal") })
	if err == nil {
		t.Fatal("Expected the PIN error to be returned")
	}

	viper.Reset()
	cmd = &cobra.Command{}
	setIssuanceServerFlags(cmd)
	_ = cmd.Flags().Set("config", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err = configureIssuanceServer(cmd, readPIN)
	if err == nil {
		t.Fatal("Expected an error for a missing config file")
	}
}
