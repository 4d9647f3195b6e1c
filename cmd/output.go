package cmd

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/go-errors/errors"
	"github.com/minvws/nl-covid19-coronacheck-dgc/common"
	"gopkg.in/yaml.v3"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

// readCredential reads the credential from the argument, or from stdin when it is "-"
func readCredential(arg string, stdin io.Reader) (string, error) {
	credential := arg
	if arg == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", errors.WrapPrefix(err, "Could not read credential from stdin", 0)
		}

		credential = string(data)
	}

	credential = strings.TrimSpace(credential)
	if !common.HasEUPrefix([]byte(credential)) {
		return "", errors.Errorf("Could not find a %s prefixed credential in the input", common.QRPrefix)
	}

	return credential, nil
}

func writeOutput(w io.Writer, format string, v interface{}) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.WrapPrefix(err, "Could not JSON marshal output", 0)
	}

	switch format {
	case formatJSON:
		_, err = w.Write(append(jsonBytes, '\n'))
		return err

	case formatYAML:
		// The JSON document is valid YAML, it only needs to be restyled
		var node yaml.Node
		err = yaml.Unmarshal(jsonBytes, &node)
		if err != nil {
			return errors.WrapPrefix(err, "Could not convert output to YAML", 0)
		}
		clearStyle(&node)

		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)

		err = enc.Encode(&node)
		if err != nil {
			return errors.WrapPrefix(err, "Could not YAML marshal output", 0)
		}

		return enc.Close()
	}

	return errors.Errorf("Unknown output format '%s'", format)
}

func clearStyle(node *yaml.Node) {
	node.Style = 0
	for _, child := range node.Content {
		clearStyle(child)
	}
}
