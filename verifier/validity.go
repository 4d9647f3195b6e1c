package verifier

import (
	"encoding/base64"
	"fmt"

	"github.com/go-errors/errors"
	"github.com/minvws/nl-covid19-coronacheck-dgc/common"
)

type SignatureStatus int

const (
	StatusValid SignatureStatus = iota + 1
	StatusInvalid
	StatusMissingKID
	StatusMissingSigningAlgorithm
	StatusSignatureMalformed
	StatusUnsupportedSigningAlgorithm
	StatusKeyNotInTrustList
)

var statusNames = map[SignatureStatus]string{
	StatusValid:                       "valid",
	StatusInvalid:                     "invalid",
	StatusMissingKID:                  "missing_kid",
	StatusMissingSigningAlgorithm:     "missing_signing_algorithm",
	StatusSignatureMalformed:          "signature_malformed",
	StatusUnsupportedSigningAlgorithm: "unsupported_signing_algorithm",
	StatusKeyNotInTrustList:           "key_not_in_trust_list",
}

func (s SignatureStatus) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}

	return fmt.Sprintf("unknown_status_%d", int(s))
}

func (s SignatureStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *SignatureStatus) UnmarshalText(text []byte) error {
	for status, name := range statusNames {
		if name == string(text) {
			*s = status
			return nil
		}
	}

	return errors.Errorf("Unknown signature status '%s'", text)
}

// SignatureValidity is the outcome of a signature check. KID is set for
// StatusKeyNotInTrustList and Algorithm for StatusUnsupportedSigningAlgorithm.
type SignatureValidity struct {
	Status    SignatureStatus   `json:"status"`
	KID       []byte            `json:"kid,omitempty"`
	Algorithm *common.Algorithm `json:"alg,omitempty"`
}

// IsValid is only true for a signature that was checked and verified
func (sv *SignatureValidity) IsValid() bool {
	return sv != nil && sv.Status == StatusValid
}

func (sv *SignatureValidity) String() string {
	switch sv.Status {
	case StatusValid:
		return "Valid"
	case StatusInvalid:
		return "Invalid"
	case StatusMissingKID:
		return "Missing kid"
	case StatusMissingSigningAlgorithm:
		return "Missing signing algorithm"
	case StatusSignatureMalformed:
		return "Signature malformed"
	case StatusUnsupportedSigningAlgorithm:
		if sv.Algorithm != nil {
			return fmt.Sprintf("Unsupported signing algorithm %s", sv.Algorithm)
		}
		return "Unsupported signing algorithm"
	case StatusKeyNotInTrustList:
		return fmt.Sprintf("Key not in trust list (kid %s)", base64.StdEncoding.EncodeToString(sv.KID))
	}

	return sv.Status.String()
}

func validity(status SignatureStatus) *SignatureValidity {
	return &SignatureValidity{Status: status}
}
