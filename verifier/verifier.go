// Package verifier checks the signature of health certificates against a trust list
package verifier

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/rsa"
	"crypto/sha256"
	"math/big"

	"github.com/minvws/nl-covid19-coronacheck-dgc/common"
	"github.com/minvws/nl-covid19-coronacheck-dgc/trustlist"
)

const es256SignatureSize = 64

type Verifier struct {
	trustList *trustlist.TrustList
	pks       *publicKeyCache
}

// New creates a verifier for the trust list. The trust list may be changed after this
// call; a nil trust list trusts no keys.
func New(trustList *trustlist.TrustList) *Verifier {
	if trustList == nil {
		trustList = trustlist.New()
	}

	return &Verifier{
		trustList: trustList,
		pks:       newPublicKeyCache(),
	}
}

// Validate decodes the QR text and checks its signature. An error is only returned when
// the credential could not be decoded; signature problems are reported in the validity.
func Validate(qr string, trustList *trustlist.TrustList) (*common.Container, *SignatureValidity, error) {
	return New(trustList).VerifyQREncoded([]byte(qr))
}

func (v *Verifier) VerifyQREncoded(proofPrefixed []byte) (*common.Container, *SignatureValidity, error) {
	cwtCbor, err := common.DecodeQR(string(proofPrefixed))
	if err != nil {
		return nil, nil, err
	}

	cwt, err := common.ParseCWT(cwtCbor)
	if err != nil {
		return nil, nil, err
	}

	return cwt.Container, v.Verify(cwt), nil
}

// Verify checks the signature of an already parsed CWT
func (v *Verifier) Verify(cwt *common.CWT) *SignatureValidity {
	kid := cwt.Header.KID
	if kid == nil {
		return validity(StatusMissingKID)
	}

	key, ok := v.trustList.GetKey(kid)
	if !ok {
		return &SignatureValidity{Status: StatusKeyNotInTrustList, KID: kid}
	}

	if cwt.Header.Alg == nil {
		return validity(StatusMissingSigningAlgorithm)
	}
	alg := *cwt.Header.Alg

	if !alg.Known() {
		return &SignatureValidity{Status: StatusUnsupportedSigningAlgorithm, Algorithm: &alg}
	}

	sigStructure, err := cwt.SigStructure()
	if err != nil {
		return validity(StatusInvalid)
	}

	// Keys that cannot be parsed cannot verify anything
	pk, err := v.pks.get(key)
	if err != nil {
		return validity(StatusInvalid)
	}

	hash := sha256.Sum256(sigStructure)

	switch alg {
	case common.AlgorithmES256:
		return verifyECDSASignature(pk, hash[:], cwt.Signature)
	case common.AlgorithmPS256:
		return verifyRSASignature(pk, hash[:], cwt.Signature)
	}

	return &SignatureValidity{Status: StatusUnsupportedSigningAlgorithm, Algorithm: &alg}
}

func verifyECDSASignature(pk crypto.PublicKey, hash, signature []byte) *SignatureValidity {
	ecdsaPk, ok := pk.(*ecdsa.PublicKey)
	if !ok || !isP256(ecdsaPk) {
		return validity(StatusInvalid)
	}

	if len(signature) != es256SignatureSize {
		return validity(StatusSignatureMalformed)
	}

	r := new(big.Int).SetBytes(signature[:es256SignatureSize/2])
	s := new(big.Int).SetBytes(signature[es256SignatureSize/2:])

	if !ecdsa.Verify(ecdsaPk, hash, r, s) {
		return validity(StatusInvalid)
	}

	return validity(StatusValid)
}

func verifyRSASignature(pk crypto.PublicKey, hash, signature []byte) *SignatureValidity {
	rsaPk, ok := pk.(*rsa.PublicKey)
	if !ok || !rsaModulusSupported(rsaPk) {
		return validity(StatusInvalid)
	}

	err := rsa.VerifyPSS(rsaPk, crypto.SHA256, hash, signature, nil)
	if err != nil {
		return validity(StatusInvalid)
	}

	return validity(StatusValid)
}
