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

package naming_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/walteh/bomcopy/pkg/naming"
)

func TestResolve(t *testing.T) {
	rule := naming.NewRule(".SLDPRT", "FLO", ".dwg")

	tests := []struct {
		name       string
		original   string
		rule       naming.Rule
		wantBase   string
		wantNormal string
		wantSuffix string
	}{
		{
			name:       "source_extension_stripped",
			original:   "1234-PART.SLDPRT",
			rule:       rule,
			wantBase:   "1234-PART",
			wantNormal: "1234-PART.dwg",
			wantSuffix: "1234-PARTFLO.dwg",
		},
		{
			name:       "source_extension_case_insensitive",
			original:   "1234-part.sldprt",
			rule:       rule,
			wantBase:   "1234-part",
			wantNormal: "1234-part.dwg",
			wantSuffix: "1234-partFLO.dwg",
		},
		{
			name:       "other_extension_stripped",
			original:   "4711-BHCS-#10-32-X-2.000L.SLDASM",
			rule:       rule,
			wantBase:   "4711-BHCS-#10-32-X-2.000L",
			wantNormal: "4711-BHCS-#10-32-X-2.000L.dwg",
			wantSuffix: "4711-BHCS-#10-32-X-2.000LFLO.dwg",
		},
		{
			name:       "no_extension_unchanged",
			original:   "BRACKET",
			rule:       rule,
			wantBase:   "BRACKET",
			wantNormal: "BRACKET.dwg",
			wantSuffix: "BRACKETFLO.dwg",
		},
		{
			name:       "no_greedy_strip_of_lookalike_tail",
			original:   "PLATE-SLDPRT",
			rule:       rule,
			wantBase:   "PLATE-SLDPRT",
			wantNormal: "PLATE-SLDPRT.dwg",
			wantSuffix: "PLATE-SLDPRTFLO.dwg",
		},
		{
			name:       "extension_only_once",
			original:   "A.SLDPRT.SLDPRT",
			rule:       rule,
			wantBase:   "A.SLDPRT",
			wantNormal: "A.SLDPRT.dwg",
			wantSuffix: "A.SLDPRTFLO.dwg",
		},
		{
			name:       "empty_source_extension_falls_back",
			original:   "PIN.step",
			rule:       naming.NewRule("", "-ALT", "dxf"),
			wantBase:   "PIN",
			wantNormal: "PIN.dxf",
			wantSuffix: "PIN-ALT.dxf",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := naming.Resolve(tt.original, tt.rule)
			assert.Equal(t, tt.wantBase, got.Base, "base should match")
			assert.Equal(t, tt.wantNormal, got.Normal, "normal name should match")
			assert.Equal(t, tt.wantSuffix, got.Suffix, "suffix name should match")
		})
	}
}

func TestResolveRoundTrip(t *testing.T) {
	rule := naming.NewRule(".SLDPRT", "FLO", ".dwg")

	for _, original := range []string{"1234-PART.SLDPRT", "x.y.z", "NOEXT", "bolt M6x20.SLDPRT", "ÄNDERUNG.sldprt"} {
		got := naming.Resolve(original, rule)
		assert.Equal(t, got.Base, strings.TrimSuffix(got.Normal, rule.TargetExtension), "normal should round trip for %q", original)
		assert.Equal(t, got.Base, strings.TrimSuffix(got.Suffix, rule.VariantSuffix+rule.TargetExtension), "suffix should round trip for %q", original)
	}
}

func TestNormalizeExtension(t *testing.T) {
	assert.Equal(t, ".dwg", naming.NormalizeExtension("dwg"))
	assert.Equal(t, ".dwg", naming.NormalizeExtension(" .dwg "))
	assert.Equal(t, "", naming.NormalizeExtension(""))

	rule := naming.Rule{SourceExtension: "SLDPRT", VariantSuffix: "FLO", TargetExtension: "dwg"}.Normalize()
	assert.Equal(t, ".SLDPRT", rule.SourceExtension)
	assert.Equal(t, "FLO", rule.VariantSuffix, "suffix is never prefixed")
	assert.Equal(t, ".dwg", rule.TargetExtension)
}
