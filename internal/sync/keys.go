// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package sync

import (
	"context"
	"strings"

	"github.com/canonical/gitlab-ldap-sync/internal/normalizer"
	"github.com/canonical/gitlab-ldap-sync/internal/types"
)

// reconcileUserKeys converges a user's forge SSH keys on the directory's by
// fingerprint: missing directory keys are added, forge ssh-rsa keys the
// directory no longer carries are removed. Keys of other types are left
// alone.
func (r *Reconciler) reconcileUserKeys(ctx context.Context, user *types.DirectoryUser, state *userState) error {
	forgeByFP := make(map[string]int, len(state.keys))
	for _, key := range state.keys {
		if !strings.HasPrefix(key.Key, normalizer.RSAKeyPrefix) {
			continue
		}
		fingerprint, err := normalizer.Fingerprint(key.Key)
		if err != nil {
			r.logger.Warnf("unparseable forge key %d on user %q ignored: %v", key.ID, state.label(), err)
			continue
		}
		forgeByFP[fingerprint] = key.ID
	}

	dirFPs := make(map[string]struct{}, len(user.SSHKeys))
	for _, key := range user.SSHKeys {
		dirFPs[key.Fingerprint] = struct{}{}

		if _, present := forgeByFP[key.Fingerprint]; present {
			continue
		}

		r.stats.KeysAdded++
		r.logger.Infof("adding SSH key %s to user %q", key.Fingerprint, state.label())

		key := key
		err := r.apply("keys", "add", func() error {
			return r.forge.AddUserKey(ctx, state.id, "ldap-sync "+key.Fingerprint, key.Key)
		})
		if err != nil {
			r.stats.KeysAdded--
			if err := r.failure("add key for", state.label(), err); err != nil {
				return err
			}
		}
	}

	for fingerprint, keyID := range forgeByFP {
		if _, wanted := dirFPs[fingerprint]; wanted {
			continue
		}

		r.stats.KeysRemoved++
		r.logger.Infof("removing SSH key %s from user %q", fingerprint, state.label())

		keyID := keyID
		err := r.apply("keys", "remove", func() error {
			return r.forge.RemoveUserKey(ctx, state.id, keyID)
		})
		if err != nil {
			r.stats.KeysRemoved--
			if err := r.failure("remove key for", state.label(), err); err != nil {
				return err
			}
		}
	}

	return nil
}
