package verifier

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rsa"
	"crypto/x509"
	"encoding/hex"

	"github.com/go-errors/errors"
	"github.com/patrickmn/go-cache"
)

const (
	minRSAModulusBits = 2048
	maxRSAModulusBits = 8192
)

// DER SubjectPublicKeyInfo header for an uncompressed P-256 point
var p256SPKIPrefix, _ = hex.DecodeString("3059301306072a8648ce3d020106082a8648ce3d030107034200")

type loadedPk struct {
	pk  crypto.PublicKey
	err error
}

// publicKeyCache holds parsed public keys by their raw trust list material
type publicKeyCache struct {
	loaded *cache.Cache
}

func newPublicKeyCache() *publicKeyCache {
	return &publicKeyCache{
		loaded: cache.New(cache.NoExpiration, 0),
	}
}

func (c *publicKeyCache) get(key []byte) (crypto.PublicKey, error) {
	if cached, ok := c.loaded.Get(string(key)); ok {
		l := cached.(*loadedPk)
		return l.pk, l.err
	}

	pk, err := ParsePublicKey(key)
	c.loaded.Set(string(key), &loadedPk{pk: pk, err: err}, cache.NoExpiration)

	return pk, err
}

// ParsePublicKey accepts DER SubjectPublicKeyInfo, an uncompressed P-256 point
// or a PKCS#1 RSA public key
func ParsePublicKey(key []byte) (crypto.PublicKey, error) {
	if len(key) == 65 && key[0] == 0x04 {
		spki := make([]byte, 0, len(p256SPKIPrefix)+len(key))
		spki = append(spki, p256SPKIPrefix...)
		spki = append(spki, key...)

		pk, err := x509.ParsePKIXPublicKey(spki)
		if err != nil {
			return nil, errors.WrapPrefix(err, "Could not parse P-256 point", 0)
		}

		return pk, nil
	}

	pk, err := x509.ParsePKIXPublicKey(key)
	if err == nil {
		switch pk.(type) {
		case *ecdsa.PublicKey, *rsa.PublicKey:
			return pk, nil
		}

		return nil, errors.Errorf("Encountered unsupported public key type %T", pk)
	}

	rsaPk, rsaErr := x509.ParsePKCS1PublicKey(key)
	if rsaErr == nil {
		return rsaPk, nil
	}

	return nil, errors.WrapPrefix(err, "Could not parse public key", 0)
}

func isP256(pk *ecdsa.PublicKey) bool {
	return pk.Curve == elliptic.P256()
}

func rsaModulusSupported(pk *rsa.PublicKey) bool {
	bits := pk.N.BitLen()
	return bits >= minRSAModulusBits && bits <= maxRSAModulusBits
}
