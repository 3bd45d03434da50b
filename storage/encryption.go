package storage

import (
	"bytes"
	"io"

	"filippo.io/age"
)

// ageHeader is the prefix of age-encrypted payloads.
const ageHeader = "age-encryption.org"

func encrypt(data []byte, recipient *age.ScryptRecipient) ([]byte, error) {
	var buf bytes.Buffer

	w, err := age.Encrypt(&buf, recipient)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decrypt(data []byte, identity *age.ScryptIdentity) ([]byte, error) {
	r, err := age.Decrypt(bytes.NewReader(data), identity)
	if err != nil {
		return nil, err
	}
	return io.ReadAll(r)
}

func isEncrypted(data []byte) bool {
	return bytes.HasPrefix(data, []byte(ageHeader))
}
