package types

import (
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
)

// Algorithm is a hash algorithm name as it appears in a digest set key.
// The set of recognized algorithms is closed; names are normalized to lower
// case during decode.
type Algorithm string

const (
	Sha224     Algorithm = "sha224"
	Sha256     Algorithm = "sha256"
	Sha384     Algorithm = "sha384"
	Sha512     Algorithm = "sha512"
	Sha512_224 Algorithm = "sha512_224"
	Sha512_256 Algorithm = "sha512_256"
	Sha3_224   Algorithm = "sha3_224"
	Sha3_256   Algorithm = "sha3_256"
	Sha3_384   Algorithm = "sha3_384"
	Sha3_512   Algorithm = "sha3_512"
	Shake128   Algorithm = "shake128"
	Shake256   Algorithm = "shake256"
	Blake2b    Algorithm = "blake2b"
	Blake2s    Algorithm = "blake2s"
	Ripemd160  Algorithm = "ripemd160"
	Sm3        Algorithm = "sm3"
	Gost       Algorithm = "gost"
	Sha1       Algorithm = "sha1"
	Md5        Algorithm = "md5"
)

var knownAlgorithms = map[Algorithm]struct{}{
	Sha224: {}, Sha256: {}, Sha384: {}, Sha512: {},
	Sha512_224: {}, Sha512_256: {},
	Sha3_224: {}, Sha3_256: {}, Sha3_384: {}, Sha3_512: {},
	Shake128: {}, Shake256: {},
	Blake2b: {}, Blake2s: {},
	Ripemd160: {}, Sm3: {}, Gost: {}, Sha1: {}, Md5: {},
}

// Known reports whether a is a recognized algorithm name.
func (a Algorithm) Known() bool {
	_, ok := knownAlgorithms[a]
	return ok
}

// DigestSet maps hash algorithm names to hex digest strings. Decoding
// rejects unrecognized algorithm names and non-hex digest values for the
// whole document.
type DigestSet map[Algorithm]string

func (d *DigestSet) UnmarshalJSON(data []byte) error {
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return &SchemaError{Field: "digest", Message: "expected an object mapping algorithm to hex digest"}
	}
	set := make(DigestSet, len(raw))
	for name, digest := range raw {
		alg := Algorithm(strings.ToLower(name))
		if !alg.Known() {
			return &SchemaError{Field: "digest", Message: fmt.Sprintf("unrecognized digest algorithm %q", name)}
		}
		if !isHexDigest(digest) {
			return &SchemaError{Field: "digest", Message: "digest for " + string(alg) + " is not a hex string"}
		}
		set[alg] = digest
	}
	*d = set
	return nil
}

func isHexDigest(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}

// Subject names an artifact the statement attests to, identified by one or
// more content digests.
type Subject struct {
	Name   string    `json:"name"`
	Digest DigestSet `json:"digest"`
}
