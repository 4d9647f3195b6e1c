// Package holder reads credentials without checking their signature
package holder

import (
	"github.com/minvws/nl-covid19-coronacheck-dgc/common"
)

type Holder struct {
}

func New() *Holder {
	return &Holder{}
}

func (h *Holder) ReadQREncoded(proofPrefixed []byte) (*common.Container, error) {
	cwtCbor, err := common.DecodeQR(string(proofPrefixed))
	if err != nil {
		return nil, err
	}

	cwt, err := common.ParseCWT(cwtCbor)
	if err != nil {
		return nil, err
	}

	return cwt.Container, nil
}

// Decode is a shorthand for reading a single credential
func Decode(qr string) (*common.Container, error) {
	return New().ReadQREncoded([]byte(qr))
}
