package trustlist

import (
	"fmt"
)

type KeyParseErrorKind int

const (
	KeyParseBase64 KeyParseErrorKind = iota + 1
	KeyParseX509
	KeyParsePublicKey
)

// KeyParseError is returned when a key or certificate could not be added to a trust list
type KeyParseError struct {
	Kind KeyParseErrorKind
	Err  error
}

func (e *KeyParseError) Error() string {
	var msg string
	switch e.Kind {
	case KeyParseBase64:
		msg = "Could not base64 decode data"
	case KeyParseX509:
		msg = "Could not parse X509 data"
	case KeyParsePublicKey:
		msg = "Could not extract a valid public key from certificate"
	default:
		msg = "Could not parse key"
	}

	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

func (e *KeyParseError) Unwrap() error {
	return e.Err
}

type JSONErrorKind int

const (
	JSONInvalidRootType JSONErrorKind = iota + 1
	JSONKeyIsNotObject
	JSONMissingPublicKeyAlgorithm
	JSONInvalidPublicKeyAlgorithm
	JSONMissingPublicKeyAlgorithmName
	JSONInvalidPublicKeyAlgorithmName
	JSONUnsupportedPublicKeyAlgorithmName
	JSONMissingPublicKeyAlgorithmCurve
	JSONInvalidPublicKeyAlgorithmCurve
	JSONUnsupportedPublicKeyAlgorithmCurve
	JSONMissingPublicKeyPem
	JSONInvalidPublicKeyPem
	JSONPublicKeyPemDecode
	JSONKidBase64Decode
)

// JSONError describes the first entry of a trust list document that could not be loaded.
// KeyID is the entry's key as it appears in the document.
type JSONError struct {
	Kind  JSONErrorKind
	KeyID string
	// Found holds the unsupported algorithm name or curve
	Found string
	Err   error
}

func (e *JSONError) Error() string {
	switch e.Kind {
	case JSONInvalidRootType:
		return "The trust list JSON is not an object"
	case JSONKeyIsNotObject:
		return fmt.Sprintf("Key '%s' is not an object", e.KeyID)
	case JSONMissingPublicKeyAlgorithm:
		return fmt.Sprintf("Key '%s' does not contain 'publicKeyAlgorithm'", e.KeyID)
	case JSONInvalidPublicKeyAlgorithm:
		return fmt.Sprintf("'publicKeyAlgorithm' for key '%s' is not an object", e.KeyID)
	case JSONMissingPublicKeyAlgorithmName:
		return fmt.Sprintf("Key '%s' does not contain 'publicKeyAlgorithm.name'", e.KeyID)
	case JSONInvalidPublicKeyAlgorithmName:
		return fmt.Sprintf("'publicKeyAlgorithm.name' for key '%s' is not a string", e.KeyID)
	case JSONUnsupportedPublicKeyAlgorithmName:
		return fmt.Sprintf("Key '%s' 'publicKeyAlgorithm.name' is '%s' where only '%s' is supported", e.KeyID, e.Found, supportedAlgorithmName)
	case JSONMissingPublicKeyAlgorithmCurve:
		return fmt.Sprintf("Key '%s' does not contain 'publicKeyAlgorithm.namedCurve'", e.KeyID)
	case JSONInvalidPublicKeyAlgorithmCurve:
		return fmt.Sprintf("'publicKeyAlgorithm.namedCurve' for key '%s' is not a string", e.KeyID)
	case JSONUnsupportedPublicKeyAlgorithmCurve:
		return fmt.Sprintf("Key '%s' 'publicKeyAlgorithm.namedCurve' is '%s' where only '%s' is supported", e.KeyID, e.Found, supportedCurve)
	case JSONMissingPublicKeyPem:
		return fmt.Sprintf("Key '%s' does not contain 'publicKeyPem'", e.KeyID)
	case JSONInvalidPublicKeyPem:
		return fmt.Sprintf("'publicKeyPem' for key '%s' is not a string", e.KeyID)
	case JSONPublicKeyPemDecode:
		return fmt.Sprintf("'publicKeyPem' for key '%s' could not be decoded: %v", e.KeyID, e.Err)
	case JSONKidBase64Decode:
		return fmt.Sprintf("Could not base64 decode key '%s': %v", e.KeyID, e.Err)
	}

	return fmt.Sprintf("Could not load key '%s'", e.KeyID)
}

func (e *JSONError) Unwrap() error {
	return e.Err
}
