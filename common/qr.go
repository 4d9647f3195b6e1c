package common

import (
	"bytes"
	"compress/flate"
	"compress/zlib"
	"io"
	"strings"

	"github.com/go-errors/errors"
	"github.com/minvws/base45-go/eubase45"
)

const (
	QRPrefix = "HC1:"

	// Inflated CWTs are a few kilobytes at most; anything bigger is not a QR payload
	maxInflatedSize = 1 << 20
)

// DecodeQR strips the HC1: prefix, base45 decodes and inflates the remainder
func DecodeQR(qr string) ([]byte, error) {
	proofEUBase45, err := removePrefix(qr)
	if err != nil {
		return nil, err
	}

	proofCompressed, err := eubase45.EUBase45Decode([]byte(proofEUBase45))
	if err != nil {
		return nil, &ParseError{Kind: KindBase45Decode, Err: err}
	}

	return inflate(proofCompressed)
}

// EncodeQR is the inverse of DecodeQR
func EncodeQR(cwtCbor []byte) ([]byte, error) {
	var proofCompressed bytes.Buffer
	zw, err := zlib.NewWriterLevel(&proofCompressed, flate.BestCompression)
	if err != nil {
		return nil, errors.WrapPrefix(err, "Could not create zlib writer", 0)
	}

	_, err = zw.Write(cwtCbor)
	if err != nil {
		return nil, errors.WrapPrefix(err, "Could not write to zlib writer", 0)
	}

	err = zw.Close()
	if err != nil {
		return nil, errors.WrapPrefix(err, "Could not close zlib writer", 0)
	}

	proofEUBase45 := eubase45.EUBase45Encode(proofCompressed.Bytes())

	prefixed := make([]byte, 0, len(QRPrefix)+len(proofEUBase45))
	prefixed = append(prefixed, QRPrefix...)
	prefixed = append(prefixed, proofEUBase45...)

	return prefixed, nil
}

// HasEUPrefix reports whether the data looks like an EU health certificate QR
func HasEUPrefix(bts []byte) bool {
	_, err := removePrefix(string(bts))
	return err == nil
}

func removePrefix(qr string) (string, error) {
	if len(qr) <= len(QRPrefix) {
		return "", &ParseError{Kind: KindNotEnoughData, Length: len(qr)}
	}

	if !strings.HasPrefix(qr, QRPrefix) {
		return "", &ParseError{Kind: KindInvalidPrefix, Prefix: leadingChars(qr, len(QRPrefix))}
	}

	return qr[len(QRPrefix):], nil
}

func leadingChars(s string, n int) string {
	runes := []rune(s)
	if len(runes) > n {
		runes = runes[:n]
	}

	return string(runes)
}

func inflate(proofCompressed []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(proofCompressed))
	if err != nil {
		return nil, &ParseError{Kind: KindDeflate, Err: err}
	}
	defer zr.Close()

	proofCbor, err := io.ReadAll(io.LimitReader(zr, maxInflatedSize+1))
	if err != nil {
		return nil, &ParseError{Kind: KindDeflate, Err: err}
	}

	if len(proofCbor) > maxInflatedSize {
		return nil, &ParseError{Kind: KindDeflate, Err: errors.Errorf("Inflated data exceeds %d bytes", maxInflatedSize)}
	}

	return proofCbor, nil
}
