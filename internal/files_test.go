// elBreak: a tool for computing breakpoint frequencies from probe data.
// Copyright (c) 2026 imec vzw.

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version, and Additional Terms
// (see below).

// This program is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Affero General Public License for more details.

// You should have received a copy of the GNU Affero General Public
// License and Additional Terms along with this program. If not, see
// <https://github.com/ExaScience/elbreak/blob/master/LICENSE.txt>.

package internal

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileCreate(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	MkdirAll(dir, 0700)
	f := FileCreate(filepath.Join(dir, "log.txt"))
	Close(f)
	if _, err := os.Stat(filepath.Join(dir, "log.txt")); err != nil {
		t.Error("FileCreate failed")
	}
	defer func() {
		if recover() == nil {
			t.Error("FileCreate did not panic")
		}
	}()
	FileCreate(filepath.Join(dir, "missing", "log.txt"))
}
