package services

import (
	"fmt"

	"golang.org/x/text/encoding/charmap"
)

// EncodeResumeContent maps every byte of data to the Unicode code point of
// the same value, so arbitrary document bytes survive a JSON round trip.
func EncodeResumeContent(data []byte) string {
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		// ISO-8859-1 defines all 256 byte values; the decoder cannot fail.
		panic(fmt.Sprintf("latin-1 decode: %v", err))
	}
	return string(decoded)
}

// DecodeResumeContent reverses EncodeResumeContent. Characters above U+00FF
// cannot come from a byte and are rejected.
func DecodeResumeContent(content string) ([]byte, error) {
	data, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte(content))
	if err != nil {
		return nil, fmt.Errorf("resume_content is not single-byte encoded: %w", err)
	}
	return data, nil
}
