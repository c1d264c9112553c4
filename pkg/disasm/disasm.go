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

// Package disasm turns an encoded word stream back into instruction text
// using the same architecture description it was assembled against.
package disasm

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lassandro/kasm/pkg/architecture"
)

type Instruction struct {
	Address   uint64
	Signature *architecture.Signature
	Words     []uint64
}

// Renders the instruction with its placeholders filled in. Words that do not
// start a known instruction render as a .word directive.
func (inst *Instruction) String() string {
	if inst.Signature == nil {
		return fmt.Sprintf(".word %d", inst.Words[0])
	}

	if len(inst.Signature.Args) == 0 {
		return inst.Signature.Name
	}

	operands := inst.Words[1:]
	args := make([]string, 0, len(inst.Signature.Args))

	for _, arg := range inst.Signature.Args {
		switch arg.Kind {
		case architecture.OPERAND_ADDRESS:
			args = append(args, fmt.Sprintf("0x%04x", operands[0]))
			operands = operands[1:]
		case architecture.OPERAND_VALUE:
			args = append(args, strconv.FormatUint(operands[0], 10))
			operands = operands[1:]
		default:
			args = append(args, arg.Text)
		}
	}

	return inst.Signature.Name + " " + strings.Join(args, ", ")
}

func Decode(words []uint64, arch *architecture.Architecture) []Instruction {
	var result []Instruction

	for addr := uint64(0); addr < uint64(len(words)); {
		sig := arch.Lookup(words[addr])

		if sig == nil ||
			sig.Words() != sig.Size ||
			addr+sig.Size > uint64(len(words)) {
			result = append(result, Instruction{addr, nil, words[addr : addr+1]})
			addr++
			continue
		}

		result = append(result, Instruction{addr, sig, words[addr : addr+sig.Size]})
		addr += sig.Size
	}

	return result
}

// Writes one "address: instruction" row per decoded instruction. Addresses
// are emboldened when highlight is set.
func Disassemble(w io.Writer, words []uint64, arch *architecture.Architecture, highlight bool) error {
	writer := bufio.NewWriter(w)

	for _, inst := range Decode(words, arch) {
		if highlight {
			fmt.Fprintf(writer, "\033[1m[0x%04x]\033[0m %s\n", inst.Address, inst.String())
		} else {
			fmt.Fprintf(writer, "[0x%04x] %s\n", inst.Address, inst.String())
		}
	}

	return writer.Flush()
}
