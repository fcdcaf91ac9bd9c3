// Package datauri decodes base64 data URIs of the form
// data:<mime>;base64,<payload>.
package datauri

import (
	"encoding/base64"
	"mime"
	"strings"

	dErrors "healthsphere/pkg/domain-errors"
)

// URI is a decoded data URI.
type URI struct {
	MIMEType string
	Data     []byte
}

// Parse decodes a base64 data URI. The MIME type is lower-cased and stripped of
// parameters. Non-base64 URIs are rejected since documents are always binary.
func Parse(raw string) (*URI, error) {
	raw = strings.TrimSpace(raw)
	rest, ok := strings.CutPrefix(raw, "data:")
	if !ok {
		return nil, dErrors.New(dErrors.CodeValidation, "document must be a data URI")
	}
	header, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, dErrors.New(dErrors.CodeValidation, "data URI has no payload")
	}

	params := strings.Split(header, ";")
	if params[len(params)-1] != "base64" {
		return nil, dErrors.New(dErrors.CodeValidation, "data URI must be base64 encoded")
	}

	mimeType := ""
	if params[0] != "" && params[0] != "base64" {
		mediaType, _, err := mime.ParseMediaType(strings.Join(params[:len(params)-1], ";"))
		if err != nil {
			return nil, dErrors.New(dErrors.CodeValidation, "data URI has an invalid MIME type")
		}
		mimeType = mediaType
	}

	data, err := decode(payload)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeValidation, "data URI payload is not valid base64")
	}
	return &URI{MIMEType: mimeType, Data: data}, nil
}

// decode accepts padded and unpadded standard encodings.
func decode(payload string) ([]byte, error) {
	payload = strings.TrimSpace(payload)
	if data, err := base64.StdEncoding.DecodeString(payload); err == nil {
		return data, nil
	}
	return base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "="))
}

// Encode builds a data URI, mostly for tests and fixtures.
func Encode(mimeType string, data []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// DecodedLen returns an upper bound on the decoded size without decoding.
func DecodedLen(raw string) int {
	_, payload, ok := strings.Cut(raw, ",")
	if !ok {
		return 0
	}
	return base64.StdEncoding.DecodedLen(len(payload))
}
