package common

import (
	"bytes"
	"fmt"
	"math"

	"github.com/fxamacker/cbor/v2"
)

const (
	CoseSign1Tag = 18
	CWTTag       = 61

	HeaderKeyAlgorithm = 1
	HeaderKeyKID       = 4

	COSE_SIGN1_CONTEXT = "Signature1"
)

// Algorithm is a COSE algorithm identifier. Codes without a name are kept as-is.
type Algorithm int64

const (
	AlgorithmES256 Algorithm = -7
	AlgorithmPS256 Algorithm = -37
)

func (alg Algorithm) Known() bool {
	return alg == AlgorithmES256 || alg == AlgorithmPS256
}

func (alg Algorithm) String() string {
	switch alg {
	case AlgorithmES256:
		return "ES256"
	case AlgorithmPS256:
		return "PS256"
	}

	return fmt.Sprintf("Unknown(%d)", int64(alg))
}

// CWTHeader is the merge of the unprotected and protected COSE headers
type CWTHeader struct {
	KID []byte
	Alg *Algorithm
}

type CWT struct {
	// Protected and Payload are the byte strings exactly as they were on the wire
	Protected []byte
	Payload   []byte
	Signature []byte

	Header    CWTHeader
	Container *Container
}

// ParseCWT reads a COSE_Sign1 structure, optionally wrapped in a CWT tag, and decodes its payload
func ParseCWT(data []byte) (*CWT, error) {
	// Only the first item counts, anything after it is ignored
	item, err := firstItem(data)
	if err != nil {
		return nil, &ParseError{Kind: KindCBOR, Err: err}
	}

	if number, content, ok := splitTag(item); ok && number == CWTTag {
		item = content
	}

	if number, content, ok := splitTag(item); ok {
		if number != CoseSign1Tag {
			return nil, &ParseError{Kind: KindInvalidTag, Tag: number}
		}
		item = content
	}

	var cwtContent interface{}
	_, err = cbor.UnmarshalFirst(item, &cwtContent)
	if err != nil {
		return nil, &ParseError{Kind: KindCBOR, Err: err}
	}

	parts, ok := cwtContent.([]interface{})
	if !ok {
		return nil, &ParseError{Kind: KindInvalidParts}
	}

	if len(parts) != 4 {
		return nil, &ParseError{Kind: KindInvalidPartsCount, Parts: len(parts)}
	}

	protected, ok := parts[0].([]byte)
	if !ok {
		return nil, &ParseError{Kind: KindProtectedHeaderNotBinary}
	}

	payload, ok := parts[2].([]byte)
	if !ok {
		return nil, &ParseError{Kind: KindPayloadNotBinary}
	}

	signature, ok := parts[3].([]byte)
	if !ok {
		return nil, &ParseError{Kind: KindSignatureNotBinary}
	}

	// The unprotected header is either a map or an empty placeholder byte string
	var unprotectedHeader map[interface{}]interface{}
	switch h := parts[1].(type) {
	case map[interface{}]interface{}:
		unprotectedHeader = h
	case []byte:
		if len(h) != 0 {
			return nil, &ParseError{Kind: KindMalformedUnprotectedHeader}
		}
	default:
		return nil, &ParseError{Kind: KindMalformedUnprotectedHeader}
	}

	var protectedHeader map[interface{}]interface{}
	if len(protected) > 0 {
		var decoded interface{}
		_, err = cbor.UnmarshalFirst(protected, &decoded)
		if err != nil {
			return nil, &ParseError{Kind: KindProtectedHeaderNotValidCBOR, Err: err}
		}

		protectedHeader, ok = decoded.(map[interface{}]interface{})
		if !ok {
			return nil, &ParseError{Kind: KindProtectedHeaderNotMap}
		}
	}

	// Protected values are visited last, so they take precedence
	header := CWTHeader{}
	header.merge(unprotectedHeader)
	header.merge(protectedHeader)

	container, err := DecodeContainer(payload)
	if err != nil {
		return nil, &ParseError{Kind: KindInvalidPayload, Err: err}
	}

	return &CWT{
		Protected: protected,
		Payload:   payload,
		Signature: signature,
		Header:    header,
		Container: container,
	}, nil
}

// firstItem returns the first well-formed data item in data. Skipping only checks
// well-formedness, so tags like 0 and 1 are not rejected for their content here.
func firstItem(data []byte) ([]byte, error) {
	dec := cbor.NewDecoder(bytes.NewReader(data))
	err := dec.Skip()
	if err != nil {
		return nil, err
	}

	return data[:dec.NumBytesRead()], nil
}

// splitTag reads the tag number off the head of a well-formed item. The decoder
// converts or rejects tags 0 to 3 before their number can be looked at, so the
// head is read directly.
func splitTag(item []byte) (uint64, []byte, bool) {
	if len(item) == 0 || item[0]>>5 != 6 {
		return 0, nil, false
	}

	info := item[0] & 0x1f
	if info < 24 {
		return uint64(info), item[1:], true
	}

	size := 0
	switch info {
	case 24:
		size = 1
	case 25:
		size = 2
	case 26:
		size = 4
	case 27:
		size = 8
	default:
		return 0, nil, false
	}

	if len(item) < 1+size {
		return 0, nil, false
	}

	var number uint64
	for _, b := range item[1 : 1+size] {
		number = number<<8 | uint64(b)
	}

	return number, item[1+size:], true
}

// merge picks the kid and alg out of a header map, ignoring anything it doesn't understand
func (h *CWTHeader) merge(values map[interface{}]interface{}) {
	for key, value := range values {
		label, ok := integerValue(key)
		if !ok {
			continue
		}

		switch label {
		case HeaderKeyKID:
			if kid, ok := value.([]byte); ok {
				h.KID = kid
			}
		case HeaderKeyAlgorithm:
			if code, ok := integerValue(value); ok {
				alg := Algorithm(code)
				h.Alg = &alg
			}
		}
	}
}

// SigStructure serializes the Sig_structure that the signature of this CWT was made over
func (cwt *CWT) SigStructure() ([]byte, error) {
	return SigStructure(cwt.Protected, cwt.Payload)
}

// SigStructure builds ["Signature1", protected, h'', payload]. The external AAD is always
// present as an empty byte string.
func SigStructure(protectedHeaderCbor, payloadCbor []byte) ([]byte, error) {
	if protectedHeaderCbor == nil {
		protectedHeaderCbor = []byte{}
	}

	if payloadCbor == nil {
		payloadCbor = []byte{}
	}

	toSign := []interface{}{
		COSE_SIGN1_CONTEXT,
		protectedHeaderCbor,
		[]byte{},
		payloadCbor,
	}

	sigStructure, err := cbor.Marshal(toSign)
	if err != nil {
		return nil, &ParseError{Kind: KindCBOR, Err: err}
	}

	return sigStructure, nil
}

func integerValue(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case int64:
		return n, true
	}

	return 0, false
}
