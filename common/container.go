package common

import (
	"math"

	"github.com/fxamacker/cbor/v2"
	"github.com/go-errors/errors"
)

const (
	ContainerKeyIssuer    = 1
	ContainerKeyExpiresAt = 4
	ContainerKeyIssuedAt  = 6
	ContainerKeyCerts     = -260

	// Issuers put the certificate at this index of the certs map
	DCCIndex = 1
)

// strictDecMode fails on duplicate map keys instead of keeping the last value
var strictDecMode = func() cbor.DecMode {
	decMode, err := cbor.DecOptions{DupMapKey: cbor.DupMapKeyEnforcedAPF}.DecMode()
	if err != nil {
		panic(err)
	}
	return decMode
}()

// Container is the CWT payload: claims about the credential and the certificates it carries
type Container struct {
	Issuer    string       `json:"issuer"`
	IssuedAt  int64        `json:"issuedAt"`
	ExpiresAt *int64       `json:"expiresAt,omitempty"`
	Certs     map[int]*DCC `json:"certs"`
}

// DCC returns the certificate at the conventional index, or nil
func (c *Container) DCC() *DCC {
	return c.Certs[DCCIndex]
}

// DecodeContainer walks the integer keyed payload map. Unknown keys are skipped.
func DecodeContainer(payloadCbor []byte) (*Container, error) {
	var fields map[interface{}]cbor.RawMessage
	_, err := strictDecMode.UnmarshalFirst(payloadCbor, &fields)
	if err != nil {
		return nil, errors.WrapPrefix(err, "Could not CBOR unmarshal CWT payload", 0)
	}

	container := &Container{}
	var hasIssuer, hasIssuedAt, hasCerts bool

	for key, value := range fields {
		label, ok := integerValue(key)
		if !ok {
			continue
		}

		switch label {
		case ContainerKeyIssuer:
			err = cbor.Unmarshal(value, &container.Issuer)
			if err != nil {
				return nil, errors.WrapPrefix(err, "Could not read issuer", 0)
			}
			hasIssuer = true

		case ContainerKeyIssuedAt:
			container.IssuedAt, err = decodeTimestamp(value)
			if err != nil {
				return nil, errors.WrapPrefix(err, "Could not read issued at", 0)
			}
			hasIssuedAt = true

		case ContainerKeyExpiresAt:
			expiresAt, err := decodeTimestamp(value)
			if err != nil {
				return nil, errors.WrapPrefix(err, "Could not read expiration time", 0)
			}
			container.ExpiresAt = &expiresAt

		case ContainerKeyCerts:
			err = decodeCerts(value, &container.Certs)
			if err != nil {
				return nil, errors.WrapPrefix(err, "Could not read health certificates", 0)
			}
			hasCerts = true
		}
	}

	switch {
	case !hasIssuer:
		return nil, errors.Errorf("Missing issuer")
	case !hasIssuedAt:
		return nil, errors.Errorf("Missing issued at")
	case !hasCerts:
		return nil, errors.Errorf("Missing health certificates")
	}

	return container, nil
}

// EncodeContainer serializes the container with its integer keys
func EncodeContainer(container *Container) ([]byte, error) {
	if container == nil {
		return nil, errors.Errorf("Could not encode empty container")
	}

	certs := container.Certs
	if certs == nil {
		certs = map[int]*DCC{}
	}

	fields := map[int]interface{}{
		ContainerKeyIssuer:   container.Issuer,
		ContainerKeyIssuedAt: container.IssuedAt,
		ContainerKeyCerts:    certs,
	}

	if container.ExpiresAt != nil {
		fields[ContainerKeyExpiresAt] = *container.ExpiresAt
	}

	encMode, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		return nil, errors.WrapPrefix(err, "Could not create CBOR encoder", 0)
	}

	payloadCbor, err := encMode.Marshal(fields)
	if err != nil {
		return nil, errors.WrapPrefix(err, "Could not CBOR marshal CWT payload", 0)
	}

	return payloadCbor, nil
}

func decodeCerts(data []byte, certs *map[int]*DCC) error {
	var decoded map[int]*DCC
	err := strictDecMode.Unmarshal(data, &decoded)
	if err != nil {
		return err
	}

	for index, dcc := range decoded {
		if dcc == nil {
			return errors.Errorf("Could not process empty DCC at index %d", index)
		}
	}

	if decoded == nil {
		decoded = map[int]*DCC{}
	}

	*certs = decoded
	return nil
}

// decodeTimestamp accepts both integer and floating point timestamps, as some issuers send floats
func decodeTimestamp(data []byte) (int64, error) {
	var value interface{}
	err := cbor.Unmarshal(data, &value)
	if err != nil {
		return 0, err
	}

	if n, ok := integerValue(value); ok {
		return n, nil
	}

	f, ok := value.(float64)
	if !ok {
		return 0, errors.Errorf("Timestamp is not a number")
	}

	if math.IsNaN(f) || math.IsInf(f, 0) || f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, errors.Errorf("Timestamp %v is out of range", f)
	}

	return int64(f), nil
}
