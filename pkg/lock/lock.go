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

// Package lock keeps two runs from mutating the same directory at once.
package lock

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// ErrLocked is returned when another run holds the lock for a root.
var ErrLocked = errors.Base("directory is locked by another run")

// 🔒 Lock is an advisory lock on a root directory
type Lock struct {
	fl   *flock.Flock
	root string
}

// Path returns the lock file used for root inside dir. The lock lives outside
// root so nothing is written into the photo directory.
func Path(dir, root string) (string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", errors.Errorf("resolving %s: %w", root, err)
	}
	sum := sha256.Sum256([]byte(abs))
	return filepath.Join(dir, "xmpsync-"+hex.EncodeToString(sum[:8])+".lock"), nil
}

// AcquireIn takes the lock for root with its lock file in dir. It does not
// wait: a held lock fails with ErrLocked.
func AcquireIn(ctx context.Context, dir, root string) (*Lock, error) {
	logger := zerolog.Ctx(ctx)

	path, err := Path(dir, root)
	if err != nil {
		return nil, err
	}

	fl := flock.New(path)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, errors.Errorf("locking %s: %w", path, err)
	}
	if !ok {
		return nil, errors.WithDetails(ErrLocked, "root", root, "lock", path)
	}

	logger.Debug().Str("lock", path).Str("root", root).Msg("acquired lock")
	return &Lock{fl: fl, root: root}, nil
}

// Release unlocks and removes the lock file.
func (l *Lock) Release() error {
	path := l.fl.Path()
	if err := l.fl.Unlock(); err != nil {
		return errors.Errorf("unlocking %s: %w", path, err)
	}
	_ = os.Remove(path)
	return nil
}
