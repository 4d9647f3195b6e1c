package common

import (
	"crypto/elliptic"
	"crypto/sha256"
	"crypto/x509"
	"encoding/pem"
	"math/big"
	"os"

	"github.com/go-errors/errors"
)

const kidLength = 8

func LoadDSCCertificateFile(certificatePath string) (cert *x509.Certificate, kid []byte, err error) {
	// Read and load certificate file
	pemCertBytes, err := os.ReadFile(certificatePath)
	if err != nil {
		return nil, nil, errors.WrapPrefix(err, "Could not read certificate file", 0)
	}

	return LoadDSCCertificate(pemCertBytes)
}

// LoadDSCCertificate parses a PEM certificate. The KID is the first 8 bytes of the SHA-256 of its DER.
func LoadDSCCertificate(pemCertBytes []byte) (cert *x509.Certificate, kid []byte, err error) {
	pemCertBlock, _ := pem.Decode(pemCertBytes)
	if pemCertBlock == nil || pemCertBlock.Type != "CERTIFICATE" {
		return nil, nil, errors.Errorf("Could not parse PEM as certificate")
	}

	cert, err = x509.ParseCertificate(pemCertBlock.Bytes)
	if err != nil {
		return nil, nil, errors.WrapPrefix(err, "Could not parse certificate inside PEM", 0)
	}

	// Calculate KID
	certSum := sha256.Sum256(pemCertBlock.Bytes)
	kid = certSum[0:kidLength]

	return cert, kid, nil
}

// ConvertSignatureComponents serializes r and s as fixed size big endian integers, as COSE requires
func ConvertSignatureComponents(r, s *big.Int, params *elliptic.CurveParams) []byte {
	keyByteSize := (params.BitSize + 7) / 8

	signature := make([]byte, keyByteSize*2)
	r.FillBytes(signature[:keyByteSize])
	s.FillBytes(signature[keyByteSize:])

	return signature
}
