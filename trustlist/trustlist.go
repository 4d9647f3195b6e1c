// Package trustlist keeps the public keys that health certificate signatures are checked against
package trustlist

import (
	"bytes"
	"crypto/sha256"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/asn1"
	"encoding/base64"
	"sort"
	"sync"

	"github.com/go-errors/errors"
)

// KIDLength is the length of a key identifier derived from a certificate
const KIDLength = 8

// TrustList maps key identifiers to raw public key material. The zero value is an empty
// trust list that is ready to use, and all methods are safe for concurrent use.
type TrustList struct {
	mutex sync.RWMutex
	keys  map[string][]byte
}

type Key struct {
	KID       []byte
	PublicKey []byte
}

func New() *TrustList {
	return &TrustList{
		keys: map[string][]byte{},
	}
}

// GetKey returns the key material for kid, if present
func (tl *TrustList) GetKey(kid []byte) ([]byte, bool) {
	tl.mutex.RLock()
	defer tl.mutex.RUnlock()

	key, ok := tl.keys[string(kid)]
	return key, ok
}

// Add inserts or replaces the key for kid
func (tl *TrustList) Add(kid, key []byte) {
	tl.mutex.Lock()
	defer tl.mutex.Unlock()

	if tl.keys == nil {
		tl.keys = map[string][]byte{}
	}

	tl.keys[string(kid)] = bytes.Clone(key)
}

// AddKeyFromCertificate adds the subject public key of a base64 encoded DER certificate.
// The kid is the first 8 bytes of the SHA-256 hash of the whole certificate.
func (tl *TrustList) AddKeyFromCertificate(base64Cert string) error {
	kid, key, err := KeyFromCertificate(base64Cert)
	if err != nil {
		return err
	}

	tl.Add(kid, key)
	return nil
}

// AddKeyFromBase64 adds base64 encoded key material for a known kid
func (tl *TrustList) AddKeyFromBase64(kid []byte, base64Key string) error {
	key, err := base64.StdEncoding.DecodeString(base64Key)
	if err != nil {
		return &KeyParseError{Kind: KeyParseBase64, Err: err}
	}

	tl.Add(kid, key)
	return nil
}

// Keys returns a snapshot of all keys, ordered by kid
func (tl *TrustList) Keys() []*Key {
	tl.mutex.RLock()
	defer tl.mutex.RUnlock()

	keys := make([]*Key, 0, len(tl.keys))
	for kid, key := range tl.keys {
		keys = append(keys, &Key{
			KID:       []byte(kid),
			PublicKey: bytes.Clone(key),
		})
	}

	sort.Slice(keys, func(i, j int) bool {
		return bytes.Compare(keys[i].KID, keys[j].KID) < 0
	})

	return keys
}

func (tl *TrustList) Len() int {
	tl.mutex.RLock()
	defer tl.mutex.RUnlock()

	return len(tl.keys)
}

// KeyFromCertificate derives the kid and extracts the raw subject public key bits of a
// base64 encoded DER certificate
func KeyFromCertificate(base64Cert string) (kid, key []byte, err error) {
	certDer, err := base64.StdEncoding.DecodeString(base64Cert)
	if err != nil {
		return nil, nil, &KeyParseError{Kind: KeyParseBase64, Err: err}
	}

	cert, err := x509.ParseCertificate(certDer)
	if err != nil {
		return nil, nil, &KeyParseError{Kind: KeyParseX509, Err: err}
	}

	var spki struct {
		Algorithm pkix.AlgorithmIdentifier
		PublicKey asn1.BitString
	}

	rest, err := asn1.Unmarshal(cert.RawSubjectPublicKeyInfo, &spki)
	if err != nil {
		return nil, nil, &KeyParseError{Kind: KeyParsePublicKey, Err: err}
	}

	if len(rest) != 0 {
		return nil, nil, &KeyParseError{Kind: KeyParsePublicKey, Err: errors.Errorf("Trailing data after subject public key info")}
	}

	key = spki.PublicKey.RightAlign()
	if len(key) == 0 {
		return nil, nil, &KeyParseError{Kind: KeyParsePublicKey, Err: errors.Errorf("Subject public key is empty")}
	}

	hash := sha256.Sum256(certDer)
	return hash[:KIDLength], key, nil
}
