package trustlist

import (
	"encoding/base64"
	"encoding/json"
	"sort"

	"github.com/go-errors/errors"
)

const (
	supportedAlgorithmName = "ECDSA"
	supportedCurve         = "P-256"
)

// FromJSON loads a trust list document keyed by base64 kid, in the format of the
// Italian DGC trust list mirror:
//
//	{"25QCxBrBJvA=": {"publicKeyAlgorithm": {"name": "ECDSA", "namedCurve": "P-256"}, "publicKeyPem": "MFkw..."}}
//
// Loading stops at the first invalid entry; no partial trust list is returned.
func FromJSON(data []byte) (*TrustList, error) {
	var document interface{}
	err := json.Unmarshal(data, &document)
	if err != nil {
		return nil, errors.WrapPrefix(err, "Could not JSON unmarshal trust list", 0)
	}

	return FromJSONValue(document)
}

// FromJSONValue is FromJSON for an already decoded document
func FromJSONValue(document interface{}) (*TrustList, error) {
	entries, ok := document.(map[string]interface{})
	if !ok {
		return nil, &JSONError{Kind: JSONInvalidRootType}
	}

	// Sorted, so the reported entry is the same on every run
	keyIDs := make([]string, 0, len(entries))
	for keyID := range entries {
		keyIDs = append(keyIDs, keyID)
	}
	sort.Strings(keyIDs)

	tl := New()
	for _, keyID := range keyIDs {
		kid, key, err := parseEntry(keyID, entries[keyID])
		if err != nil {
			return nil, err
		}

		tl.Add(kid, key)
	}

	return tl, nil
}

func parseEntry(keyID string, entry interface{}) (kid, key []byte, err error) {
	fields, ok := entry.(map[string]interface{})
	if !ok {
		return nil, nil, &JSONError{Kind: JSONKeyIsNotObject, KeyID: keyID}
	}

	algValue, ok := fields["publicKeyAlgorithm"]
	if !ok {
		return nil, nil, &JSONError{Kind: JSONMissingPublicKeyAlgorithm, KeyID: keyID}
	}

	alg, ok := algValue.(map[string]interface{})
	if !ok {
		return nil, nil, &JSONError{Kind: JSONInvalidPublicKeyAlgorithm, KeyID: keyID}
	}

	name, err := stringField(keyID, alg, "name", JSONMissingPublicKeyAlgorithmName, JSONInvalidPublicKeyAlgorithmName)
	if err != nil {
		return nil, nil, err
	}

	if name != supportedAlgorithmName {
		return nil, nil, &JSONError{Kind: JSONUnsupportedPublicKeyAlgorithmName, KeyID: keyID, Found: name}
	}

	curve, err := stringField(keyID, alg, "namedCurve", JSONMissingPublicKeyAlgorithmCurve, JSONInvalidPublicKeyAlgorithmCurve)
	if err != nil {
		return nil, nil, err
	}

	if curve != supportedCurve {
		return nil, nil, &JSONError{Kind: JSONUnsupportedPublicKeyAlgorithmCurve, KeyID: keyID, Found: curve}
	}

	publicKeyPem, err := stringField(keyID, fields, "publicKeyPem", JSONMissingPublicKeyPem, JSONInvalidPublicKeyPem)
	if err != nil {
		return nil, nil, err
	}

	key, err = base64.StdEncoding.DecodeString(publicKeyPem)
	if err != nil {
		return nil, nil, &JSONError{Kind: JSONPublicKeyPemDecode, KeyID: keyID, Err: err}
	}

	kid, err = base64.StdEncoding.DecodeString(keyID)
	if err != nil {
		return nil, nil, &JSONError{Kind: JSONKidBase64Decode, KeyID: keyID, Err: err}
	}

	return kid, key, nil
}

func stringField(keyID string, fields map[string]interface{}, name string, missing, invalid JSONErrorKind) (string, error) {
	value, ok := fields[name]
	if !ok {
		return "", &JSONError{Kind: missing, KeyID: keyID}
	}

	str, ok := value.(string)
	if !ok {
		return "", &JSONError{Kind: invalid, KeyID: keyID}
	}

	return str, nil
}
