/*
 * catalog
 * Copyright (C) 2026 catalog contributors
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <https://www.gnu.org/licenses/>.
 *
 */

package catalog

import (
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// IndexKind names which index implementation an IndexDefinition builds.
type IndexKind string

const (
	IndexKindField   IndexKind = "field"
	IndexKindInt     IndexKind = "int"
	IndexKindPath    IndexKind = "path"
	IndexKindKeyword IndexKind = "keyword"
)

// IndexDefinition describes one index a host wants built, in a form a
// YAML document can carry: a name, the discriminator attribute to read
// it from, its kind, and (for kind "int") the granularity levels to
// use. This is the declarative counterpart to calling NewFieldIndex /
// NewIntFieldIndex / NewPathIndex / NewKeywordIndex directly — the way
// the teacher's functional options let a host configure a Store without
// hand-assembling its fields.
type IndexDefinition struct {
	Name          string    `yaml:"name"`
	Discriminator string    `yaml:"discriminator"`
	Kind          IndexKind `yaml:"kind"`
	Levels        []int     `yaml:"levels,omitempty"`
	NBestMaxPercent float64 `yaml:"nbestMaxPercent,omitempty"`
}

// CatalogConfig is the top-level YAML document shape: a named list of
// index definitions.
type CatalogConfig struct {
	Indexes []IndexDefinition `yaml:"indexes"`
}

// ParseConfig parses a YAML document into a CatalogConfig, validating
// that every definition names a non-empty name/discriminator and a
// known kind.
func ParseConfig(data []byte) (*CatalogConfig, error) {
	var cfg CatalogConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "parsing catalog config")
	}
	for i, def := range cfg.Indexes {
		if def.Name == "" {
			return nil, newInvalidArgumentf("index definition %d: name is required", i)
		}
		if def.Discriminator == "" {
			return nil, newInvalidArgumentf("index definition %q: discriminator is required", def.Name)
		}
		switch def.Kind {
		case IndexKindField, IndexKindInt, IndexKindPath, IndexKindKeyword:
		default:
			return nil, newInvalidArgumentf("index definition %q: unknown kind %q", def.Name, def.Kind)
		}
	}
	return &cfg, nil
}

// BuildStringFieldIndex builds a *FieldIndex[string] from a field-kind
// definition, reading values by def.Discriminator.
func BuildStringFieldIndex(def IndexDefinition) (*FieldIndex[string], error) {
	if def.Kind != IndexKindField {
		return nil, newInvalidArgumentf("index %q is not a field index (kind %q)", def.Name, def.Kind)
	}
	fi, err := NewFieldIndex[string](def.Discriminator)
	if err != nil {
		return nil, err
	}
	if def.NBestMaxPercent > 0 {
		fi.NBestMaxPercent = def.NBestMaxPercent
	}
	return fi, nil
}

// BuildIntFieldIndex builds an *IntFieldIndex from an int-kind
// definition, applying def.Levels as the granularity widths when given.
func BuildIntFieldIndex(def IndexDefinition) (*IntFieldIndex, error) {
	if def.Kind != IndexKindInt {
		return nil, newInvalidArgumentf("index %q is not an int index (kind %q)", def.Name, def.Kind)
	}
	fi, err := NewFieldIndex[int](def.Discriminator)
	if err != nil {
		return nil, err
	}
	if def.NBestMaxPercent > 0 {
		fi.NBestMaxPercent = def.NBestMaxPercent
	}
	return ToIntFieldIndex(fi, def.Levels...), nil
}

// BuildPathIndex builds a *PathIndex from a path-kind definition.
func BuildPathIndex(def IndexDefinition) (*PathIndex, error) {
	if def.Kind != IndexKindPath {
		return nil, newInvalidArgumentf("index %q is not a path index (kind %q)", def.Name, def.Kind)
	}
	return NewPathIndex(def.Discriminator)
}

// BuildStringKeywordIndex builds a *KeywordIndex[string] from a
// keyword-kind definition.
func BuildStringKeywordIndex(def IndexDefinition) (*KeywordIndex[string], error) {
	if def.Kind != IndexKindKeyword {
		return nil, newInvalidArgumentf("index %q is not a keyword index (kind %q)", def.Name, def.Kind)
	}
	return NewKeywordIndex[string](def.Discriminator)
}
