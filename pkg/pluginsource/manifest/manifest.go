// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package manifest implements a PluginSource backed by a
// directory tree of plugin.yaml manifests, one subdirectory per plugin —
// the same layout convention the host application uses for its own
// plugin discovery, adapted here to describe hook impls instead of
// in-world commands.
package manifest

import (
	"fmt"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Type identifies the plugin runtime a manifest's impls are hosted under.
type Type string

// Supported plugin runtimes.
const (
	TypeLua    Type = "lua"
	TypeBinary Type = "binary"
)

// Manifest represents a plugin.yaml file.
type Manifest struct {
	Name         string        `yaml:"name" json:"name"`
	Version      string        `yaml:"version" json:"version"`
	Type         Type          `yaml:"type" json:"type" jsonschema:"enum=lua,enum=binary"`
	Hooks        []string      `yaml:"hooks,omitempty" json:"hooks,omitempty"`
	Priority     *int          `yaml:"priority,omitempty" json:"priority,omitempty"`
	LuaPlugin    *LuaConfig    `yaml:"lua-plugin,omitempty" json:"lua-plugin,omitempty"`
	BinaryPlugin *BinaryConfig `yaml:"binary-plugin,omitempty" json:"binary-plugin,omitempty"`
}

// LuaConfig holds Lua-specific configuration.
type LuaConfig struct {
	Entry string `yaml:"entry" json:"entry"`
}

// BinaryConfig holds go-plugin binary configuration.
type BinaryConfig struct {
	Executable string `yaml:"executable" json:"executable"`
}

const maxNameLength = 64

// namePattern validates plugin names: must start with a lowercase letter,
// followed by lowercase letters, digits, or hyphens, and not end with a
// hyphen. Single-character names are allowed.
var namePattern = regexp.MustCompile(`^[a-z]([a-z0-9-]*[a-z0-9])?$`)

// Parse parses and validates a plugin.yaml file.
func Parse(data []byte) (*Manifest, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("manifest data is empty")
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}

	return &m, nil
}

// Validate checks manifest constraints.
func (m *Manifest) Validate() error {
	if m.Name == "" || !namePattern.MatchString(m.Name) {
		return fmt.Errorf("name %q must start with a-z, contain only a-z, 0-9, hyphens, and not end with a hyphen", m.Name)
	}
	if len(m.Name) > maxNameLength {
		return fmt.Errorf("name must be %d characters or less, got %d", maxNameLength, len(m.Name))
	}
	if m.Version == "" {
		return fmt.Errorf("version is required")
	}
	if len(m.Hooks) == 0 {
		return fmt.Errorf("hooks must list at least one hook name this plugin implements")
	}

	switch m.Type {
	case TypeLua:
		if m.LuaPlugin == nil {
			return fmt.Errorf("lua-plugin is required when type is lua")
		}
		if m.LuaPlugin.Entry == "" {
			return fmt.Errorf("lua-plugin.entry is required")
		}
	case TypeBinary:
		if m.BinaryPlugin == nil {
			return fmt.Errorf("binary-plugin is required when type is binary")
		}
		if m.BinaryPlugin.Executable == "" {
			return fmt.Errorf("binary-plugin.executable is required")
		}
	default:
		return fmt.Errorf("type must be 'lua' or 'binary', got %q", m.Type)
	}

	return nil
}
