package hsmsigner

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"encoding/asn1"
	"fmt"
	"math/big"

	"github.com/ThalesIgnite/crypto11"
	"github.com/go-errors/errors"
	"github.com/minvws/nl-covid19-coronacheck-dgc/common"
	issuercommon "github.com/minvws/nl-covid19-coronacheck-dgc/issuer/common"
)

type HSMSigner struct {
	ctx       *crypto11.Context
	usageKeys map[string]*hsmKey
}

type Configuration struct {
	PKCS11ModulePath string
	TokenLabel       string
	Pin              string

	KeyDescriptions []*KeyDescription
}

type KeyDescription struct {
	CertificatePath string
	KeyUsage        string
	KeyID           int
	KeyLabel        string
}

type hsmKey struct {
	kid     []byte
	keypair crypto11.Signer
	params  *elliptic.CurveParams
}

type signatureSerialization struct {
	R *big.Int
	S *big.Int
}

func New(config *Configuration) (*HSMSigner, error) {
	// Create HSM context
	ctx, err := crypto11.Configure(&crypto11.Config{
		Path:       config.PKCS11ModulePath,
		TokenLabel: config.TokenLabel,
		Pin:        config.Pin,
	})
	if err != nil {
		msg := fmt.Sprintf(
			"Could not create pkcs11 context, wrong PIN, module path (%s) or token label (%s)",
			config.PKCS11ModulePath, config.TokenLabel,
		)
		return nil, errors.WrapPrefix(err, msg, 0)
	}

	usageKeys, err := loadKeys(ctx, config.KeyDescriptions)
	if err != nil {
		_ = ctx.Close()
		return nil, err
	}

	return &HSMSigner{
		ctx:       ctx,
		usageKeys: usageKeys,
	}, nil
}

func loadKeys(ctx *crypto11.Context, keyDescriptions []*KeyDescription) (map[string]*hsmKey, error) {
	usageKeys := map[string]*hsmKey{}
	for _, kd := range keyDescriptions {
		// Load certificate for key
		cert, kid, err := issuercommon.LoadDSCCertificateFile(kd.CertificatePath)
		if err != nil {
			msg := fmt.Sprintf("Could not load certificate file '%s'", kd.CertificatePath)
			return nil, errors.WrapPrefix(err, msg, 0)
		}

		certificatePk, ok := cert.PublicKey.(*ecdsa.PublicKey)
		if !ok || certificatePk.Curve != elliptic.P256() {
			return nil, errors.Errorf("Unsupported key type for '%s', only P-256 keys can be used", kd.CertificatePath)
		}

		// Load HSM keypair
		keypair, err := ctx.FindKeyPair([]byte{byte(kd.KeyID)}, []byte(kd.KeyLabel))
		if err != nil {
			return nil, errors.WrapPrefix(err, "Could not find key due to error", 0)
		}
		if keypair == nil {
			return nil, errors.Errorf("Could not find key with id %d and label '%s'", kd.KeyID, kd.KeyLabel)
		}

		if !certificatePk.Equal(keypair.Public()) {
			return nil, errors.Errorf("HSM public key with id %d doesn't match certificate '%s'", kd.KeyID, kd.CertificatePath)
		}

		usageKeys[kd.KeyUsage] = &hsmKey{
			kid:     kid,
			keypair: keypair,
			params:  certificatePk.Params(),
		}
	}

	return usageKeys, nil
}

func (hs *HSMSigner) Sign(keyUsage string, hash []byte) ([]byte, error) {
	key, err := hs.getKey(keyUsage)
	if err != nil {
		return nil, err
	}

	// Do the actual signing
	signatureASN1, err := key.keypair.Sign(rand.Reader, hash, crypto.SHA256)
	if err != nil {
		return nil, errors.WrapPrefix(err, "Could not create signature", 0)
	}

	// Get the signature components and convert it to a CWT signature
	components := &signatureSerialization{}
	_, err = asn1.Unmarshal(signatureASN1, components)
	if err != nil {
		return nil, errors.WrapPrefix(err, "Could not ASN1 unmarshal signature", 0)
	}

	signature := issuercommon.ConvertSignatureComponents(components.R, components.S, key.params)
	return signature, nil
}

func (hs *HSMSigner) GetKID(keyUsage string) ([]byte, error) {
	key, err := hs.getKey(keyUsage)
	if err != nil {
		return nil, err
	}

	return key.kid, nil
}

// GetAlgorithm is always ES256, the HSM only holds P-256 keys
func (hs *HSMSigner) GetAlgorithm(keyUsage string) (common.Algorithm, error) {
	_, err := hs.getKey(keyUsage)
	if err != nil {
		return 0, err
	}

	return common.AlgorithmES256, nil
}

func (hs *HSMSigner) Close() error {
	return hs.ctx.Close()
}

func (hs *HSMSigner) getKey(keyUsage string) (*hsmKey, error) {
	key, ok := hs.usageKeys[keyUsage]
	if !ok {
		return nil, errors.Errorf("Could not find key for usage %s", keyUsage)
	}

	return key, nil
}
