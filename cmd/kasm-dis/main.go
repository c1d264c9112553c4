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
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/golang/glog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/lassandro/kasm/pkg/architecture"
	"github.com/lassandro/kasm/pkg/disasm"
	"github.com/lassandro/kasm/pkg/encoding"
)

var archvar string
var objectvar bool

var errReported = errors.New("disassembly failed")

var rootCmd = &cobra.Command{
	Use:   "kasm-dis -a architecture [-O] filename",
	Short: "Lists the instructions of an assembled kasm file",
	Long: `kasm-dis decodes a binary (.kasm) or, with -O, a textual object (.kobj)
file against the architecture it was assembled with and prints one
instruction per line, prefixed with its word address.`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return kasmdis(args[0])
	},
}

func init() {
	log.SetFlags(0)
	log.SetOutput(os.Stderr)
}

func init() {
	rootCmd.Flags().StringVarP(&archvar, "architecture", "a", "", "The architecture file the input was assembled against")
	rootCmd.Flags().BoolVarP(&objectvar, "object", "O", false, "Read a textual object file instead of a binary")
	rootCmd.MarkFlagRequired("architecture")
	rootCmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)
}

func kasmdis(filename string) error {
	log.SetPrefix(fmt.Sprintf("%s: ", filepath.Base(filename)))

	arch, err := architecture.LoadFile(archvar)

	if err != nil {
		log.Println(err)
		return errReported
	}

	file, err := os.Open(filename)

	if err != nil {
		log.Println(err)
		return errReported
	}

	defer file.Close()

	var words []uint64

	if objectvar {
		words, err = encoding.ReadObject(file, arch.WordSize)
	} else {
		words, err = encoding.ReadBinary(file, arch.WordSize)
	}

	if err != nil {
		log.Println(err)
		return errReported
	}

	glog.V(1).Infof("read %d words from %s", len(words), filename)

	highlight := term.IsTerminal(int(os.Stdout.Fd()))

	if err := disasm.Disassemble(os.Stdout, words, arch, highlight); err != nil {
		log.Println(err)
		return errReported
	}

	return nil
}

func main() {
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
