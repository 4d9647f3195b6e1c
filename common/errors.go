package common

import (
	"fmt"
)

// ErrorKind identifies which stage of the structural decode failed
type ErrorKind int

const (
	KindNotEnoughData ErrorKind = iota + 1
	KindInvalidPrefix
	KindBase45Decode
	KindDeflate
	KindCBOR
	KindInvalidTag
	KindInvalidParts
	KindInvalidPartsCount
	KindMalformedUnprotectedHeader
	KindProtectedHeaderNotBinary
	KindProtectedHeaderNotValidCBOR
	KindProtectedHeaderNotMap
	KindPayloadNotBinary
	KindSignatureNotBinary
	KindInvalidPayload
)

// Sentinels to match against with errors.Is; the context fields are left empty
var (
	ErrNotEnoughData               = &ParseError{Kind: KindNotEnoughData}
	ErrInvalidPrefix               = &ParseError{Kind: KindInvalidPrefix}
	ErrBase45Decode                = &ParseError{Kind: KindBase45Decode}
	ErrDeflate                     = &ParseError{Kind: KindDeflate}
	ErrCBOR                        = &ParseError{Kind: KindCBOR}
	ErrInvalidTag                  = &ParseError{Kind: KindInvalidTag}
	ErrInvalidParts                = &ParseError{Kind: KindInvalidParts}
	ErrInvalidPartsCount           = &ParseError{Kind: KindInvalidPartsCount}
	ErrMalformedUnprotectedHeader  = &ParseError{Kind: KindMalformedUnprotectedHeader}
	ErrProtectedHeaderNotBinary    = &ParseError{Kind: KindProtectedHeaderNotBinary}
	ErrProtectedHeaderNotValidCBOR = &ParseError{Kind: KindProtectedHeaderNotValidCBOR}
	ErrProtectedHeaderNotMap       = &ParseError{Kind: KindProtectedHeaderNotMap}
	ErrPayloadNotBinary            = &ParseError{Kind: KindPayloadNotBinary}
	ErrSignatureNotBinary          = &ParseError{Kind: KindSignatureNotBinary}
	ErrInvalidPayload              = &ParseError{Kind: KindInvalidPayload}
)

// ParseError is returned for every structural failure while turning QR text into a CWT.
// Only the context field that belongs to Kind is set.
type ParseError struct {
	Kind ErrorKind

	// Length is the observed input length for KindNotEnoughData
	Length int
	// Prefix holds the observed leading characters for KindInvalidPrefix
	Prefix string
	// Tag is the observed CBOR tag number for KindInvalidTag
	Tag uint64
	// Parts is the observed element count for KindInvalidPartsCount
	Parts int

	Err error
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case KindNotEnoughData:
		return fmt.Sprintf("Invalid data, expected more than %d bytes, found %d bytes", len(QRPrefix), e.Length)
	case KindInvalidPrefix:
		return fmt.Sprintf("Invalid prefix. Expected '%s', found: '%s'", QRPrefix, e.Prefix)
	case KindBase45Decode:
		return e.withCause("Could not base45 decode the data")
	case KindDeflate:
		return e.withCause("Could not decompress the data")
	case KindCBOR:
		return e.withCause("Could not parse the data as CBOR")
	case KindInvalidTag:
		return fmt.Sprintf("Expected COSE_Sign1 tag (%d), found %d", CoseSign1Tag, e.Tag)
	case KindInvalidParts:
		return "The main CBOR object is not an array"
	case KindInvalidPartsCount:
		return fmt.Sprintf("The main CBOR array does not contain 4 parts. %d parts found", e.Parts)
	case KindMalformedUnprotectedHeader:
		return "The unprotected header section is not a CBOR map or an empty sequence of bytes"
	case KindProtectedHeaderNotBinary:
		return "The protected header section is not a binary string"
	case KindProtectedHeaderNotValidCBOR:
		return e.withCause("The protected header section is not valid CBOR-encoded data")
	case KindProtectedHeaderNotMap:
		return "The protected header section does not contain key-value pairs"
	case KindPayloadNotBinary:
		return "The payload section is not a binary string"
	case KindSignatureNotBinary:
		return "The signature section is not a binary string"
	case KindInvalidPayload:
		return e.withCause("Could not deserialize payload")
	}

	return e.withCause("Could not parse health certificate")
}

func (e *ParseError) withCause(msg string) string {
	if e.Err == nil {
		return msg
	}

	return msg + ": " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is matches any *ParseError of the same kind, so the sentinels work with errors.Is
func (e *ParseError) Is(target error) bool {
	t, ok := target.(*ParseError)
	return ok && t.Kind == e.Kind
}
