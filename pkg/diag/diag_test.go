// Copyright (C) 2021  Antonio Lassandro

// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.

// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU General Public License for
// more details.

// You should have received a copy of the GNU General Public License along
// with this program.  If not, see <http://www.gnu.org/licenses/>.

package diag_test

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/lassandro/kasm/pkg/diag"
)

func TestKindString(t *testing.T) {
	tests := map[diag.Kind]string{
		diag.KIND_INVALID_FILE:             "InvalidFile",
		diag.KIND_INVALID_SPEC_SYNTAX:      "InvalidSpecSyntax",
		diag.KIND_DUPLICATE_OPCODE:         "DuplicateOpcode",
		diag.KIND_INVALID_LABEL_DEFINITION: "InvalidLabelDefinition",
		diag.KIND_MISSING_SYMBOL:           "MissingSymbol",
		diag.KIND_UNDEFINED_INSTRUCTION:    "UndefinedInstruction",
		diag.KIND_UNCOMPILABLE_INSTRUCTION: "UncompilableInstruction",
		diag.KIND_NO_OUTPUT_REQUESTED:      "NoOutputRequested",
		diag.KIND_NONE:                     "<invalid>",
	}

	for kind, want := range tests {
		if have := kind.String(); have != want {
			t.Fatalf("Kind name mismatch\nwant:%s\nhave:%s", want, have)
		}
	}

	if !diag.KIND_NO_OUTPUT_REQUESTED.IsWarning() {
		t.Fatal("NoOutputRequested should be a warning")
	}

	if diag.KIND_MISSING_SYMBOL.IsWarning() {
		t.Fatal("MissingSymbol should not be a warning")
	}
}

func TestFormat(t *testing.T) {
	want := "03: Undefined instruction signature\n\thave:FOO A"
	have := diag.Format(diag.Position{Line: 3, Text: "FOO A"}, "Undefined instruction signature")

	if have != want {
		t.Fatalf("Format mismatch\nwant:%q\nhave:%q", want, have)
	}

	if have := diag.Format(diag.Position{}, "msg"); have != "msg" {
		t.Fatalf("Format mismatch\nwant:%q\nhave:%q", "msg", have)
	}
}

func TestInvalidFileUnwrap(t *testing.T) {
	var err error = &diag.InvalidFileError{Err: fs.ErrNotExist}

	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatal("InvalidFileError should unwrap to its cause")
	}

	var lineErr diag.LineError
	if !errors.As(err, &lineErr) || lineErr.GetKind() != diag.KIND_INVALID_FILE {
		t.Fatalf("Unexpected kind\nwant:%v\nhave:%v", diag.KIND_INVALID_FILE, lineErr)
	}
}
