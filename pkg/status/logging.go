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

package status

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/walteh/bomcopy/pkg/match"
)

// 🎨 Display configuration
const (
	itemIndent     = 4  // spaces to indent item entries
	nameWidth      = 40 // Base width for target filename
	materialWidth  = 20 // Width for material
	quantityWidth  = 5  // Width for quantity
	notFoundSource = "(not found)"
)

// 🎯 FormatItem formats a resolved item for display
func FormatItem(item match.Item) string {
	var prefix, source string
	switch {
	case item.IsFound() && item.IsSuffixVariant:
		prefix = color.BlueString("✓")
		source = item.SourcePath
	case item.IsFound():
		prefix = color.GreenString("✓")
		source = item.SourcePath
	default:
		prefix = color.RedString("✗")
		source = color.HiBlackString(notFoundSource)
	}

	// Format parts with padding
	namePart := fmt.Sprintf("%-*s", nameWidth, item.TargetFileName)
	materialPart := fmt.Sprintf("%-*s", materialWidth, item.Material)
	quantityPart := fmt.Sprintf("%*d", quantityWidth, item.Quantity)

	return fmt.Sprintf("%s%s %s %s %s  %s",
		strings.Repeat(" ", itemIndent),
		prefix,
		namePart,
		materialPart,
		quantityPart,
		source,
	)
}

// 📝 WriteItems writes one FormatItem line per item.
func WriteItems(w io.Writer, items []match.Item) error {
	for _, it := range items {
		if _, err := fmt.Fprintln(w, FormatItem(it)); err != nil {
			return err
		}
	}
	return nil
}
