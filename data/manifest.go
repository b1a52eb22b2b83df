// Copyright 2024
// SPDX-License-Identifier: Apache-2.0
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

package data

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
	"github.com/zeebo/blake3"
)

// Manifest records blake3 checksums of the bundled dataset files so a
// replication run can detect modified inputs.
type Manifest struct {
	Files map[string]string `json:"files"`
}

// ReadManifest loads manifest.json from the data directory. A missing
// manifest is not an error; verification is simply skipped.
func ReadManifest(dataDir string) (*Manifest, error) {
	raw, err := os.ReadFile(filepath.Join(dataDir, ManifestFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var m Manifest
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("could not parse dataset manifest: %w", err)
	}
	return &m, nil
}

// Checksum computes the blake3 hash of the file at path
func Checksum(path string) (string, error) {
	fh, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer fh.Close()

	h := blake3.New()
	if _, err := io.Copy(h, fh); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Verify compares the checksum of fileName in dataDir against the manifest.
// A mismatch is reported via the returned error; callers treat it as a
// warning since replication on modified data is still meaningful.
func (m *Manifest) Verify(dataDir, fileName string) error {
	want, ok := m.Files[fileName]
	if !ok {
		log.Debug().Str("File", fileName).Msg("file not listed in manifest")
		return nil
	}

	got, err := Checksum(filepath.Join(dataDir, fileName))
	if err != nil {
		return err
	}

	if got != want {
		return fmt.Errorf("%w: %s (want %s got %s)", ErrChecksumMismatch, fileName, want, got)
	}
	return nil
}

// VerifyAll checks every file listed in the manifest and logs mismatches
func (m *Manifest) VerifyAll(dataDir string) {
	for fileName := range m.Files {
		if err := m.Verify(dataDir, fileName); err != nil {
			log.Warn().Err(err).Str("File", fileName).Msg("dataset checksum mismatch; results may differ from published tables")
		}
	}
}
