// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package naming derives the candidate drawing filenames for a BOM part name.
package naming

import (
	"path/filepath"
	"strings"
)

// 📐 Rule describes how a BOM part name maps onto files in the source tree.
type Rule struct {
	SourceExtension string // extension used in the BOM (e.g. ".SLDPRT")
	VariantSuffix   string // marker inserted before the extension for the alternate file (e.g. "FLO")
	TargetExtension string // extension of the files to look for (e.g. ".dwg")
}

// 🏭 NewRule creates a rule with both extensions normalized.
func NewRule(sourceExtension, variantSuffix, targetExtension string) Rule {
	return Rule{
		SourceExtension: sourceExtension,
		VariantSuffix:   variantSuffix,
		TargetExtension: targetExtension,
	}.Normalize()
}

// 🔧 Normalize returns a copy of the rule whose extensions carry a leading dot.
func (r Rule) Normalize() Rule {
	r.SourceExtension = NormalizeExtension(r.SourceExtension)
	r.TargetExtension = NormalizeExtension(r.TargetExtension)
	return r
}

// NormalizeExtension trims ext and prefixes it with a dot when missing.
// An empty extension stays empty.
func NormalizeExtension(ext string) string {
	ext = strings.TrimSpace(ext)
	if ext == "" || strings.HasPrefix(ext, ".") {
		return ext
	}
	return "." + ext
}

// 📄 Names holds the filenames derived from one BOM part name.
type Names struct {
	Base   string // part name without its extension
	Normal string // Base + TargetExtension
	Suffix string // Base + VariantSuffix + TargetExtension
}

// 🎯 Resolve derives the base name and both candidate filenames for originalName.
//
// When originalName ends with the rule's source extension (compared case-insensitively)
// exactly that extension is removed. Otherwise whatever extension the name has is
// removed, and a name without one is used unchanged.
func Resolve(originalName string, rule Rule) Names {
	base := BaseName(originalName, rule.SourceExtension)
	return Names{
		Base:   base,
		Normal: base + rule.TargetExtension,
		Suffix: base + rule.VariantSuffix + rule.TargetExtension,
	}
}

// BaseName strips sourceExtension from name, falling back to the name's own extension.
func BaseName(name, sourceExtension string) string {
	if n, e := len(name), len(sourceExtension); e > 0 && n >= e && strings.EqualFold(name[n-e:], sourceExtension) {
		return name[:n-e]
	}
	return strings.TrimSuffix(name, filepath.Ext(name))
}
