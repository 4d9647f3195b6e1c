package issuer

import (
	"crypto/rand"
	"crypto/sha256"
	"io"

	"github.com/go-errors/errors"
	"github.com/minvws/nl-covid19-coronacheck-dgc/common"
	"github.com/veraison/go-cose"
)

// Signer signs hashes with the key that belongs to a key usage (vaccination, test, recovery)
type Signer interface {
	GetKID(keyUsage string) ([]byte, error)
	GetAlgorithm(keyUsage string) (common.Algorithm, error)
	Sign(keyUsage string, hash []byte) ([]byte, error)
}

type Issuer struct {
	signer Signer
}

type IssueSpecification struct {
	KeyUsage string

	Issuer   string
	IssuedAt int64
	// ExpirationTime is left out of the credential when zero
	ExpirationTime int64

	DCC *common.DCC
}

func New(signer Signer) *Issuer {
	return &Issuer{
		signer: signer,
	}
}

// Issue returns the signed COSE_Sign1 structure, tagged and CBOR encoded
func (iss *Issuer) Issue(spec *IssueSpecification) ([]byte, error) {
	if spec.DCC == nil {
		return nil, errors.Errorf("Refusing to sign empty DCC")
	}

	kid, err := iss.signer.GetKID(spec.KeyUsage)
	if err != nil {
		return nil, errors.WrapPrefix(err, "Could not get KID", 0)
	}

	alg, err := iss.signer.GetAlgorithm(spec.KeyUsage)
	if err != nil {
		return nil, errors.WrapPrefix(err, "Could not get signing algorithm", 0)
	}

	container := &common.Container{
		Issuer:   spec.Issuer,
		IssuedAt: spec.IssuedAt,
		Certs: map[int]*common.DCC{
			common.DCCIndex: spec.DCC,
		},
	}

	if spec.ExpirationTime != 0 {
		expirationTime := spec.ExpirationTime
		container.ExpiresAt = &expirationTime
	}

	payloadCbor, err := common.EncodeContainer(container)
	if err != nil {
		return nil, err
	}

	msg := cose.NewSign1Message()
	msg.Headers.Protected[cose.HeaderLabelAlgorithm] = cose.Algorithm(alg)
	msg.Headers.Protected[cose.HeaderLabelKeyID] = kid
	msg.Payload = payloadCbor

	err = msg.Sign(rand.Reader, nil, &coseSigner{
		signer:   iss.signer,
		keyUsage: spec.KeyUsage,
		alg:      alg,
	})
	if err != nil {
		return nil, errors.WrapPrefix(err, "Could not sign CWT", 0)
	}

	signedCWT, err := msg.MarshalCBOR()
	if err != nil {
		return nil, errors.WrapPrefix(err, "Could not CBOR serialize signed CWT", 0)
	}

	return signedCWT, nil
}

// IssueQREncoded returns the credential as HC1: prefixed QR text
func (iss *Issuer) IssueQREncoded(spec *IssueSpecification) ([]byte, error) {
	signedCWT, err := iss.Issue(spec)
	if err != nil {
		return nil, err
	}

	qr, err := common.EncodeQR(signedCWT)
	if err != nil {
		return nil, errors.WrapPrefix(err, "Could not QR encode credential", 0)
	}

	return qr, nil
}

// coseSigner lets a Signer sign the Sig_structure that go-cose builds
type coseSigner struct {
	signer   Signer
	keyUsage string
	alg      common.Algorithm
}

func (cs *coseSigner) Algorithm() cose.Algorithm {
	return cose.Algorithm(cs.alg)
}

func (cs *coseSigner) Sign(_ io.Reader, content []byte) ([]byte, error) {
	hash := sha256.Sum256(content)
	return cs.signer.Sign(cs.keyUsage, hash[:])
}
