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

package asset

import (
	"strings"
)

// 🏷️ Kind is the type of media an asset holds
type Kind int

const (
	KindImage Kind = iota // JPEG with optional RAW
	KindVideo             // MOV
)

// String returns a string representation of Kind
func (k Kind) String() string {
	switch k {
	case KindImage:
		return "image"
	case KindVideo:
		return "video"
	default:
		return "unknown"
	}
}

// 📸 MediaAsset pairs a primary media file with its sidecar
type MediaAsset struct {
	Kind      Kind   // Image or video
	Primary   string // JPEG or MOV path
	Sidecar   string // XMP path
	Secondary string // RAW path, empty when absent
}

// Files returns every media file the sidecar is applied to, primary first.
func (a MediaAsset) Files() []string {
	if a.Secondary == "" {
		return []string{a.Primary}
	}
	return []string{a.Primary, a.Secondary}
}

func (a MediaAsset) String() string {
	return a.Primary
}

// SplitName separates a directory entry into base name and extension at the
// last dot. ok is false for names without a dot or with an empty base.
func SplitName(entry string) (name, ext string, ok bool) {
	i := strings.LastIndexByte(entry, '.')
	if i <= 0 {
		return "", "", false
	}
	return entry[:i], entry[i+1:], true
}
