// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package normalizer

import (
	"crypto/md5"
	"encoding/base64"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFingerprint(t *testing.T) {
	blob := []byte{0x00, 0x00, 0x00, 0x07, 's', 's', 'h', '-', 'r', 's', 'a', 0x01, 0x02}
	key := "ssh-rsa " + base64.StdEncoding.EncodeToString(blob) + " alice@example.com"

	sum := md5.Sum(blob)
	pairs := make([]string, len(sum))
	for i, b := range sum {
		pairs[i] = fmt.Sprintf("%02x", b)
	}
	want := strings.Join(pairs, ":")

	got, err := Fingerprint(key)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Len(t, strings.Split(got, ":"), 16)
}

func TestFingerprintWithoutComment(t *testing.T) {
	key := "ssh-rsa " + base64.StdEncoding.EncodeToString([]byte("blob"))
	_, err := Fingerprint(key)
	assert.NoError(t, err)
}

func TestFingerprintMalformed(t *testing.T) {
	tests := []string{
		"",
		"ssh-rsa",
		"ssh-rsa not!!base64 comment",
	}

	for _, key := range tests {
		_, err := Fingerprint(key)
		assert.Error(t, err, "key %q", key)
	}
}
