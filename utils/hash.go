// Copyright 2024-2025 NetCracker Technology Corporation
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

package utils

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/gowebpki/jcs"
)

func CreateSHA256Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// PayloadDigest is the sha256 of the RFC 8785 canonical form of a JSON document,
// so that equal payloads hash equally regardless of key order and whitespace.
// Input that can't be canonicalized is hashed as is.
func PayloadDigest(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	canonical, err := jcs.Transform(data)
	if err != nil {
		return CreateSHA256Hash(data)
	}
	return CreateSHA256Hash(canonical)
}
