package localsigner

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"os"

	"github.com/go-errors/errors"
	"github.com/minvws/nl-covid19-coronacheck-dgc/common"
	issuercommon "github.com/minvws/nl-covid19-coronacheck-dgc/issuer/common"
)

type LocalSigner struct {
	usageKeys map[string]*localKey
}

type Configuration struct {
	KeyDescriptions []*KeyDescription
}

type KeyDescription struct {
	KeyUsage        string
	CertificatePath string
	KeyPath         string
}

type localKey struct {
	kid []byte
	alg common.Algorithm
	key crypto.Signer
}

// New doesn't do much sanity checking, as it isn't going to be used in production
func New(config *Configuration) (*LocalSigner, error) {
	ls := &LocalSigner{
		usageKeys: map[string]*localKey{},
	}

	for _, kd := range config.KeyDescriptions {
		pemCertBytes, err := os.ReadFile(kd.CertificatePath)
		if err != nil {
			msg := fmt.Sprintf("Could not read PEM certificate file %s", kd.CertificatePath)
			return nil, errors.WrapPrefix(err, msg, 0)
		}

		pemKeyBytes, err := os.ReadFile(kd.KeyPath)
		if err != nil {
			msg := fmt.Sprintf("Could not read PEM key file %s", kd.KeyPath)
			return nil, errors.WrapPrefix(err, msg, 0)
		}

		err = ls.AddKey(kd.KeyUsage, pemCertBytes, pemKeyBytes)
		if err != nil {
			msg := fmt.Sprintf("Could not load key for usage %s", kd.KeyUsage)
			return nil, errors.WrapPrefix(err, msg, 0)
		}
	}

	return ls, nil
}

// AddKey loads a PEM certificate and its PEM private key for a key usage. EC P-256 keys
// sign with ES256 and RSA keys with PS256.
func (ls *LocalSigner) AddKey(keyUsage string, pemCertBytes, pemKeyBytes []byte) error {
	cert, kid, err := issuercommon.LoadDSCCertificate(pemCertBytes)
	if err != nil {
		return err
	}

	key, err := parsePrivateKey(pemKeyBytes)
	if err != nil {
		return err
	}

	var alg common.Algorithm
	switch pk := key.Public().(type) {
	case *ecdsa.PublicKey:
		if pk.Curve != elliptic.P256() {
			return errors.Errorf("Only P-256 EC keys are supported")
		}
		alg = common.AlgorithmES256
	case *rsa.PublicKey:
		alg = common.AlgorithmPS256
	default:
		return errors.Errorf("Unsupported key type %T", pk)
	}

	certPk, ok := cert.PublicKey.(interface{ Equal(crypto.PublicKey) bool })
	if !ok || !certPk.Equal(key.Public()) {
		return errors.Errorf("Private key doesn't match certificate")
	}

	if ls.usageKeys == nil {
		ls.usageKeys = map[string]*localKey{}
	}

	ls.usageKeys[keyUsage] = &localKey{
		kid: kid,
		alg: alg,
		key: key,
	}

	return nil
}

func parsePrivateKey(pemKeyBytes []byte) (crypto.Signer, error) {
	pemKeyBlock, _ := pem.Decode(pemKeyBytes)
	if pemKeyBlock == nil {
		return nil, errors.Errorf("Could not parse PEM as key")
	}

	switch pemKeyBlock.Type {
	case "EC PRIVATE KEY":
		key, err := x509.ParseECPrivateKey(pemKeyBlock.Bytes)
		if err != nil {
			return nil, errors.WrapPrefix(err, "Could not parse EC key inside PEM", 0)
		}
		return key, nil

	case "RSA PRIVATE KEY":
		key, err := x509.ParsePKCS1PrivateKey(pemKeyBlock.Bytes)
		if err != nil {
			return nil, errors.WrapPrefix(err, "Could not parse RSA key inside PEM", 0)
		}
		return key, nil

	case "PRIVATE KEY":
		key, err := x509.ParsePKCS8PrivateKey(pemKeyBlock.Bytes)
		if err != nil {
			return nil, errors.WrapPrefix(err, "Could not parse PKCS#8 key inside PEM", 0)
		}

		signer, ok := key.(crypto.Signer)
		if !ok {
			return nil, errors.Errorf("Unsupported PKCS#8 key type %T", key)
		}
		return signer, nil
	}

	return nil, errors.Errorf("Unsupported PEM key type %s", pemKeyBlock.Type)
}

func (ls *LocalSigner) GetKID(keyUsage string) ([]byte, error) {
	key, err := ls.getKey(keyUsage)
	if err != nil {
		return nil, err
	}

	return key.kid, nil
}

func (ls *LocalSigner) GetAlgorithm(keyUsage string) (common.Algorithm, error) {
	key, err := ls.getKey(keyUsage)
	if err != nil {
		return 0, err
	}

	return key.alg, nil
}

// Sign doesn't do much sanity checking, as it isn't going to be used in production
func (ls *LocalSigner) Sign(keyUsage string, hash []byte) ([]byte, error) {
	key, err := ls.getKey(keyUsage)
	if err != nil {
		return nil, err
	}

	switch k := key.key.(type) {
	case *ecdsa.PrivateKey:
		r, s, err := ecdsa.Sign(rand.Reader, k, hash)
		if err != nil {
			return nil, errors.WrapPrefix(err, "Could not sign hash", 0)
		}

		return issuercommon.ConvertSignatureComponents(r, s, k.Params()), nil

	case *rsa.PrivateKey:
		signature, err := rsa.SignPSS(rand.Reader, k, crypto.SHA256, hash, &rsa.PSSOptions{
			SaltLength: rsa.PSSSaltLengthEqualsHash,
		})
		if err != nil {
			return nil, errors.WrapPrefix(err, "Could not sign hash", 0)
		}

		return signature, nil
	}

	return nil, errors.Errorf("Unsupported key type %T", key.key)
}

func (ls *LocalSigner) getKey(keyUsage string) (*localKey, error) {
	key, ok := ls.usageKeys[keyUsage]
	if !ok {
		return nil, errors.Errorf("Could not find key for usage %s", keyUsage)
	}

	return key, nil
}
