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

package architecture

import (
	"fmt"

	"github.com/lassandro/kasm/pkg/diag"
)

type OperandKind uint

// A single template argument: either a fixed identifier or a placeholder.
type Operand struct {
	Kind OperandKind
	Text string
}

func (op Operand) IsPlaceholder() bool {
	return op.Kind != OPERAND_LITERAL
}

func (op Operand) String() string {
	switch op.Kind {
	case OPERAND_ADDRESS:
		return PLACEHOLDER_ADDRESS
	case OPERAND_VALUE:
		return PLACEHOLDER_VALUE
	}

	return op.Text
}

type Signature struct {
	Opcode uint64
	Size   uint64
	Syntax string

	Name string
	Args []Operand
}

// Number of words an instruction with this template actually produces
func (sig *Signature) Words() uint64 {
	words := uint64(1)

	for _, arg := range sig.Args {
		if arg.IsPlaceholder() {
			words++
		}
	}

	return words
}

type Architecture struct {
	WordSize     uint
	Instructions []Signature
}

func (arch *Architecture) Lookup(opcode uint64) *Signature {
	for i := range arch.Instructions {
		if arch.Instructions[i].Opcode == opcode {
			return &arch.Instructions[i]
		}
	}

	return nil
}

type InvalidSpecSyntaxError struct {
	Position diag.Position
	Reason   string
}

func (err *InvalidSpecSyntaxError) GetPosition() diag.Position {
	return err.Position
}

func (err *InvalidSpecSyntaxError) GetKind() diag.Kind {
	return diag.KIND_INVALID_SPEC_SYNTAX
}

func (err *InvalidSpecSyntaxError) Error() string {
	msg := "Invalid syntax"

	if err.Reason != "" {
		msg += " (" + err.Reason + ")"
	}

	return diag.Format(err.Position, msg)
}

type DuplicateOpcodeError struct {
	Position diag.Position
	Opcode   uint64
}

func (err *DuplicateOpcodeError) GetPosition() diag.Position {
	return err.Position
}

func (err *DuplicateOpcodeError) GetKind() diag.Kind {
	return diag.KIND_DUPLICATE_OPCODE
}

func (err *DuplicateOpcodeError) Error() string {
	return diag.Format(
		err.Position,
		fmt.Sprintf("Duplicate opcode %d", err.Opcode),
	)
}
