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

package encoding_test

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/lassandro/kasm/pkg/encoding"
)

func TestReplaceNumerals(t *testing.T) {
	tests := []struct {
		Name   string
		Input  string
		Output string
	}{
		{"Hex Simple", "0x0002", "2"},
		{"Hex Uppercase", "0XF3", "243"},
		{"Hex Lowercase", "0x1f", "31"},
		{"Hex Mixedcase", "0xaF", "175"},
		{"Hex Position", "FIERO0x45 VERY FIERO", "FIERO69 VERY FIERO"},
		{"Hex Multiple", "FIERO0x45 SPACE VERY FIERO 0X54", "FIERO69 SPACE VERY FIERO 84"},
		{"Binary Leading Zeroes", "0b0001", "1"},
		{"Binary Trailing Zeroes", "0b100", "4"},
		{"Binary Uppercase", "0B110", "6"},
		{"Binary Position", "FIERO0b1000101 VERY FIERO", "FIERO69 VERY FIERO"},
		{"Binary Multiple", "FIERO0b01 SPACE VERY FIERO 0b10", "FIERO1 SPACE VERY FIERO 2"},
		{"Binary Before Hex", "LD 0b11, 0xFF", "LD 3, 255"},
		{"Hex Containing Binary", "0x0b1", "177"},
		{"Decimal", "INSTRUCTION(12, 2, 'LD A,_$literal')", "INSTRUCTION(12, 2, 'LD A,_$literal')"},
		{"Oversized", "0x10000000000000000", "18446744073709551616"},
		{"Empty", "", ""},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			have := encoding.ReplaceNumerals(test.Input)

			if have != test.Output {
				t.Fatalf("Numeral mismatch\nwant:%q\nhave:%q", test.Output, have)
			}

			if again := encoding.ReplaceNumerals(have); again != have {
				t.Fatalf("Replacement not idempotent\nwant:%q\nhave:%q", have, again)
			}
		})
	}
}

func TestFormatWord(t *testing.T) {
	if have, err := encoding.FormatWord(2, 4); err != nil || have != "0010" {
		t.Fatalf("Word mismatch\nwant:0010\nhave:%s (%v)", have, err)
	}

	if have, err := encoding.FormatWord(0, 1); err != nil || have != "0" {
		t.Fatalf("Word mismatch\nwant:0\nhave:%s (%v)", have, err)
	}

	if _, err := encoding.FormatWord(16, 4); err == nil {
		t.Fatal("Oversized word produced no error")
	} else if _, ok := err.(*encoding.OversizedWordError); !ok {
		t.Fatalf("Unexpected error type\nwant:%T\nhave:%T", &encoding.OversizedWordError{}, err)
	}

	if have, err := encoding.FormatWord(1<<63, 64); err != nil || len(have) != 64 {
		t.Fatalf("Unexpected 64-bit rendering %s (%v)", have, err)
	}
}

func TestWriteObject(t *testing.T) {
	tests := []struct {
		Name     string
		Words    []uint64
		WordSize uint
		Output   string
	}{
		{"Short", []uint64{2}, 4, "0010\n"},
		{"Large", []uint64{2, 3, 255, 7}, 8, "00000010\n00000011\n11111111\n00000111\n"},
		{"Empty", nil, 8, ""},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			var buffer bytes.Buffer

			if err := encoding.WriteObject(&buffer, test.Words, test.WordSize); err != nil {
				t.Fatal(err)
			}

			if have := buffer.String(); have != test.Output {
				t.Fatalf("Object mismatch\nwant:%q\nhave:%q", test.Output, have)
			}

			words, err := encoding.ReadObject(&buffer, test.WordSize)

			if err != nil {
				t.Fatal(err)
			}

			if len(words) != len(test.Words) || (len(words) > 0 && !reflect.DeepEqual(words, test.Words)) {
				t.Fatalf("Object read mismatch\nwant:%v\nhave:%v", test.Words, words)
			}
		})
	}
}

func TestWriteBinary(t *testing.T) {
	tests := []struct {
		Name     string
		Words    []uint64
		WordSize uint
		Output   []byte
	}{
		{"Byte", []uint64{2, 3, 255, 7}, 8, []byte{2, 3, 255, 7}},
		{"Nibble", []uint64{0, 15}, 4, []byte{0, 15}},
		{"Word", []uint64{0x3000, 0x00FF}, 16, []byte{0x30, 0x00, 0x00, 0xFF}},
		{"Odd", []uint64{0x1FFF}, 13, []byte{0x1F, 0xFF}},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			var buffer bytes.Buffer

			if err := encoding.WriteBinary(&buffer, test.Words, test.WordSize); err != nil {
				t.Fatal(err)
			}

			if have := buffer.Bytes(); !bytes.Equal(have, test.Output) {
				t.Fatalf("Binary mismatch\nwant:%v\nhave:%v", test.Output, have)
			}

			words, err := encoding.ReadBinary(&buffer, test.WordSize)

			if err != nil {
				t.Fatal(err)
			}

			if !reflect.DeepEqual(words, test.Words) {
				t.Fatalf("Binary read mismatch\nwant:%v\nhave:%v", test.Words, words)
			}
		})
	}

	if err := encoding.WriteBinary(new(bytes.Buffer), []uint64{256}, 8); err == nil {
		t.Fatal("Oversized word produced no error")
	}
}

func TestReadFail(t *testing.T) {
	if _, err := encoding.ReadBinary(bytes.NewReader([]byte{1, 2, 3}), 16); err == nil {
		t.Fatal("Truncated binary produced no error")
	} else if _, ok := err.(*encoding.InvalidObjectError); !ok {
		t.Fatalf("Unexpected error type\nwant:%T\nhave:%T", &encoding.InvalidObjectError{}, err)
	}

	inputs := []string{"0010\n001\n", "0012\n", "00100\n"}

	for _, input := range inputs {
		if _, err := encoding.ReadObject(strings.NewReader(input), 4); err == nil {
			t.Fatalf("Malformed object %q produced no error", input)
		} else if _, ok := err.(*encoding.InvalidObjectError); !ok {
			t.Fatalf("Unexpected error type\nwant:%T\nhave:%T", &encoding.InvalidObjectError{}, err)
		}
	}
}

func TestInvalidWordSize(t *testing.T) {
	for _, wordSize := range []uint{0, 65} {
		errs := []error{
			encoding.WriteObject(new(bytes.Buffer), []uint64{0}, wordSize),
			encoding.WriteBinary(new(bytes.Buffer), []uint64{0}, wordSize),
		}

		_, err := encoding.FormatWord(0, wordSize)
		errs = append(errs, err)

		_, err = encoding.ReadBinary(bytes.NewReader([]byte{1, 2}), wordSize)
		errs = append(errs, err)

		_, err = encoding.ReadObject(strings.NewReader("0\n"), wordSize)
		errs = append(errs, err)

		for i, err := range errs {
			if _, ok := err.(*encoding.InvalidWordSizeError); !ok {
				t.Fatalf("Unexpected error for word size %d (call %d)\nwant:%T\nhave:%T", wordSize, i, &encoding.InvalidWordSizeError{}, err)
			}
		}
	}
}

func TestDecodeWord(t *testing.T) {
	if have, err := encoding.DecodeWord("42"); err != nil || have != 42 {
		t.Fatalf("Decode mismatch\nwant:42\nhave:%d (%v)", have, err)
	}

	for _, input := range []string{"", "A", "-1", ".5", "0x10"} {
		if _, err := encoding.DecodeWord(input); err == nil {
			t.Fatalf("Invalid word %q produced no error", input)
		}
	}
}
