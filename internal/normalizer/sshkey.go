// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package normalizer

import (
	"crypto/md5"
	"encoding/base64"
	"fmt"
	"strings"
)

// RSAKeyPrefix marks the only key type the sync tracks. Keys of other types
// on the forge are left untouched.
const RSAKeyPrefix = "ssh-rsa "

// Fingerprint computes the md5 fingerprint of an OpenSSH public key line:
// the hash of the base64-decoded second whitespace-delimited field, rendered
// as lower-case colon-separated hex byte pairs.
func Fingerprint(openSSHKey string) (string, error) {
	fields := strings.Fields(openSSHKey)
	if len(fields) < 2 {
		return "", fmt.Errorf("malformed openssh key: expected at least 2 fields, got %d", len(fields))
	}

	blob, err := base64.StdEncoding.DecodeString(fields[1])
	if err != nil {
		return "", fmt.Errorf("malformed openssh key blob: %w", err)
	}

	sum := md5.Sum(blob)
	pairs := make([]string, len(sum))
	for i, b := range sum {
		pairs[i] = fmt.Sprintf("%02x", b)
	}
	return strings.Join(pairs, ":"), nil
}
