// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/canonical/gitlab-ldap-sync/internal/logging"
)

// Encryption schemes for the directory connection.
const (
	EncryptionNone = "none"
	EncryptionTLS  = "tls"
	EncryptionSSL  = "ssl"
)

var ErrMissingConfig = errors.New("configuration file not found")

// Config is the application configuration, loaded once and consumed
// read-only by every component.
type Config struct {
	LDAP   LDAPConfig   `yaml:"ldap"`
	Gitlab GitlabConfig `yaml:"gitlab"`
}

type LDAPConfig struct {
	Debug                bool        `yaml:"debug"`
	WinCompatibilityMode bool        `yaml:"winCompatibilityMode"`
	Server               LDAPServer  `yaml:"server"`
	Queries              LDAPQueries `yaml:"queries"`
}

type LDAPServer struct {
	Host         string `yaml:"host" validate:"required"`
	Port         int    `yaml:"port" validate:"omitempty,min=1,max=65535"`
	Version      int    `yaml:"version" default:"3" validate:"min=1,max=3"`
	Encryption   string `yaml:"encryption" default:"none" validate:"oneof=none tls ssl"`
	BindDn       string `yaml:"bindDn"`
	BindPassword string `yaml:"bindPassword"`
}

type LDAPQueries struct {
	BaseDn                 string `yaml:"baseDn" validate:"required"`
	UserDn                 string `yaml:"userDn"`
	GroupDn                string `yaml:"groupDn"`
	UserFilter             string `yaml:"userFilter" validate:"required"`
	GroupFilter            string `yaml:"groupFilter" validate:"required"`
	UserUniqueAttribute    string `yaml:"userUniqueAttribute" validate:"required"`
	UserMatchAttribute     string `yaml:"userMatchAttribute"`
	UserNameAttribute      string `yaml:"userNameAttribute" validate:"required"`
	UserEmailAttribute     string `yaml:"userEmailAttribute" validate:"required"`
	UserLdapAdminAttribute string `yaml:"userLdapAdminAttribute"`
	UserSshKeyAttribute    string `yaml:"userSshKeyAttribute"`
	GroupUniqueAttribute   string `yaml:"groupUniqueAttribute" validate:"required"`
	GroupMemberAttribute   string `yaml:"groupMemberAttribute" validate:"required"`
}

type GitlabConfig struct {
	Debug     bool                      `yaml:"debug"`
	Options   GitlabOptions             `yaml:"options"`
	Instances map[string]GitlabInstance `yaml:"instances" validate:"required,min=1,dive"`
}

type GitlabOptions struct {
	UserNamesToIgnore          []string `yaml:"userNamesToIgnore"`
	GroupNamesToIgnore         []string `yaml:"groupNamesToIgnore"`
	GroupNamesOfAdministrators []string `yaml:"groupNamesOfAdministrators"`
	GroupNamesOfExternal       []string `yaml:"groupNamesOfExternal"`
	CreateEmptyGroups          bool     `yaml:"createEmptyGroups"`
	DeleteExtraGroups          bool     `yaml:"deleteExtraGroups"`
	NewMemberAccessLevel       int      `yaml:"newMemberAccessLevel" default:"30"`
}

type GitlabInstance struct {
	URL            string `yaml:"url" validate:"required,url"`
	Token          string `yaml:"token" validate:"required"`
	LdapServerName string `yaml:"ldapServerName" validate:"required"`
}

// UserBaseDN is the search base for the user query: userDn prepended to
// baseDn when set, baseDn alone otherwise.
func (q LDAPQueries) UserBaseDN() string {
	if q.UserDn == "" {
		return q.BaseDn
	}
	return q.UserDn + "," + q.BaseDn
}

// GroupBaseDN is the search base for the group query.
func (q LDAPQueries) GroupBaseDN() string {
	if q.GroupDn == "" {
		return q.BaseDn
	}
	return q.GroupDn + "," + q.BaseDn
}

// UserAttributes lists the attributes requested by the user search. Optional
// attributes are omitted when unconfigured.
func (q LDAPQueries) UserAttributes() []string {
	attrs := []string{q.UserUniqueAttribute, q.UserMatchAttribute, q.UserNameAttribute, q.UserEmailAttribute}
	if q.UserLdapAdminAttribute != "" {
		attrs = append(attrs, q.UserLdapAdminAttribute)
	}
	if q.UserSshKeyAttribute != "" {
		attrs = append(attrs, q.UserSshKeyAttribute)
	}
	return attrs
}

// GroupAttributes lists the attributes requested by the group search.
func (q LDAPQueries) GroupAttributes() []string {
	return []string{q.GroupUniqueAttribute, q.GroupMemberAttribute}
}

// Load reads, defaults and validates the YAML configuration at path. When the
// file is missing but a sibling ".dist" file exists, the error tells the user
// to copy it.
func Load(path string, logger logging.LoggerInterface) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if _, distErr := os.Stat(path + ".dist"); distErr == nil {
				return nil, fmt.Errorf("%w: %q is missing, copy %q to %q and fill it in",
					ErrMissingConfig, path, path+".dist", path)
			}
			return nil, fmt.Errorf("%w: %q", ErrMissingConfig, path)
		}
		return nil, fmt.Errorf("failed to read configuration: %w", err)
	}

	cfg := new(Config)
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	if err := defaults.Set(cfg); err != nil {
		return nil, fmt.Errorf("failed to apply configuration defaults: %w", err)
	}

	cfg.finish(logger)

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// finish applies the cross-field rules that tag-driven defaulting cannot
// express.
func (c *Config) finish(logger logging.LoggerInterface) {
	server := &c.LDAP.Server

	if server.Port == 0 {
		switch server.Encryption {
		case EncryptionSSL:
			server.Port = 636
		default:
			server.Port = 389
		}
	}

	queries := &c.LDAP.Queries
	if queries.UserMatchAttribute == "" {
		queries.UserMatchAttribute = queries.UserUniqueAttribute
	}

	if queries.UserDn != "" && strings.HasSuffix(strings.ToLower(queries.UserDn), strings.ToLower(queries.BaseDn)) {
		logger.Warnf("ldap.queries.userDn %q already ends with the base DN; the search base will repeat it", queries.UserDn)
	}
	if queries.GroupDn != "" && strings.HasSuffix(strings.ToLower(queries.GroupDn), strings.ToLower(queries.BaseDn)) {
		logger.Warnf("ldap.queries.groupDn %q already ends with the base DN; the search base will repeat it", queries.GroupDn)
	}
}
