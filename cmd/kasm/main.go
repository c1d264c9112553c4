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

package main

import (
	"bytes"
	"encoding/gob"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/golang/glog"
	"github.com/spf13/cobra"

	"github.com/lassandro/kasm/pkg/architecture"
	"github.com/lassandro/kasm/pkg/assembler"
	"github.com/lassandro/kasm/pkg/diag"
	"github.com/lassandro/kasm/pkg/encoding"
	"github.com/lassandro/kasm/pkg/preprocessor"
)

var inputvar string
var archvar string
var outvar string
var binaryvar bool
var objectvar bool
var debugvar bool

// Returned once a diagnostic has already been printed
var errReported = errors.New("compilation failed")

var rootCmd = &cobra.Command{
	Use:   "kasm -i source -a architecture -o name [-b] [-O] [--debug]",
	Short: "Assembles a source file against an arbitrary instruction set",
	Long: `kasm assembles a source file against the instruction set described by
an architecture file. The architecture file declares the word size and one
INSTRUCTION(opcode, size, 'syntax') statement per instruction; the assembler
picks the best matching signature for every source line.

Use -b to write a raw binary (<name>.kasm) and -O to write a textual object
(<name>.kobj) with one binary row per word.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return kasm()
	},
}

func init() {
	log.SetFlags(0)
	log.SetOutput(os.Stderr)
}

func init() {
	flags := rootCmd.Flags()

	flags.StringVarP(&inputvar, "input", "i", "", "The source file to assemble, or - for stdin")
	flags.StringVarP(&archvar, "architecture", "a", "", "The architecture file to assemble against")
	flags.StringVarP(&outvar, "output", "o", "", "The name of the output file(s), without extension")
	flags.BoolVarP(&binaryvar, "binary", "b", false, "Write a binary file")
	flags.BoolVarP(&objectvar, "object", "O", false, "Write a textual object file")
	flags.BoolVar(
		&debugvar, "debug", false,
		"Write a symbol table with label addresses and source lines. "+
			"The table uses the output name with extension '.kdb'",
	)

	rootCmd.MarkFlagRequired("input")
	rootCmd.MarkFlagRequired("architecture")

	// glog registers its flags (-v, -logtostderr, ...) on the Go flag set
	rootCmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)
}

type output struct {
	Filename string
	Data     []byte
}

// Renders every requested output in memory. Nothing is returned unless all
// of them encode, so a failure never leaves a partial result on disk.
func render(object *assembler.Object, symtable *assembler.SymTable) ([]output, error) {
	var outputs []output

	if binaryvar {
		buffer := new(bytes.Buffer)

		if err := encoding.WriteBinary(buffer, object.Words, object.WordSize); err != nil {
			log.Println("Error writing binary file")
			return nil, err
		}

		outputs = append(outputs, output{outvar + ".kasm", buffer.Bytes()})
	}

	if objectvar {
		buffer := new(bytes.Buffer)

		if err := encoding.WriteObject(buffer, object.Words, object.WordSize); err != nil {
			log.Println("Error writing object file")
			return nil, err
		}

		outputs = append(outputs, output{outvar + ".kobj", buffer.Bytes()})
	}

	if symtable != nil {
		buffer := new(bytes.Buffer)

		if err := gob.NewEncoder(buffer).Encode(symtable); err != nil {
			log.Println("Error writing symbol table")
			return nil, err
		}

		outputs = append(outputs, output{outvar + ".kdb", buffer.Bytes()})
	}

	return outputs, nil
}

func kasm() error {
	start := time.Now()

	log.SetPrefix(prefix(archvar))

	arch, err := architecture.LoadFile(archvar)

	if err != nil {
		report(err)
		return errReported
	}

	glog.V(1).Infof(
		"Done parsing the processor architecture file. (%.3fs)",
		time.Since(start).Seconds(),
	)

	var source *preprocessor.Source
	var infile string

	phase := time.Now()

	if inputvar == "-" {
		log.SetPrefix(prefix("<stdin>"))
		source, err = preprocessor.Preprocess(os.Stdin)
	} else {
		log.SetPrefix(prefix(inputvar))
		infile = inputvar
		source, err = preprocessor.PreprocessFile(inputvar)
	}

	if err != nil {
		report(err)
		return errReported
	}

	glog.V(1).Infof(
		"Done preprocessing the source file. (%.3fs)",
		time.Since(phase).Seconds(),
	)

	if outvar == "" || (!binaryvar && !objectvar) {
		warn(
			diag.KIND_NO_OUTPUT_REQUESTED,
			"No output filename specified or no output flags set. Won't do anything.",
		)
		return nil
	}

	var symtable *assembler.SymTable

	if debugvar {
		symtable = assembler.NewSymTable()

		if infile != "" {
			if symtable.Source, err = filepath.Abs(infile); err != nil {
				log.Println(err)
				symtable.Source = ""
			}
		}
	}

	phase = time.Now()

	object, err := assembler.Assemble(source, arch, symtable)

	if err != nil {
		report(err)
		return errReported
	}

	glog.V(1).Infof("Done compiling. (%.3fs)", time.Since(phase).Seconds())

	outputs, err := render(object, symtable)

	if err != nil {
		log.Println(err)
		return errReported
	}

	for _, out := range outputs {
		if err := os.WriteFile(out.Filename, out.Data, 0666); err != nil {
			log.Println("Error writing output file")
			log.Println(err)
			return errReported
		}
	}

	glog.V(1).Infof(
		"ALL DONE. Program execution took %.3f seconds.",
		time.Since(start).Seconds(),
	)

	return nil
}

func main() {
	// Log to stderr unless overridden on the command line
	flag.Set("logtostderr", "true")

	err := rootCmd.Execute()
	glog.Flush()

	if err != nil {
		if err != errReported {
			fmt.Fprintln(os.Stderr, err)
		}

		os.Exit(1)
	}
}
