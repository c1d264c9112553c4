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
	"log"
	"os"
	"path/filepath"

	"golang.org/x/term"

	"github.com/lassandro/kasm/pkg/diag"
)

var styled = term.IsTerminal(int(os.Stderr.Fd()))

func style(code, s string) string {
	if !styled {
		return s
	}

	return "\033[" + code + "m" + s + "\033[0m"
}

func prefix(filename string) string {
	return style("1", filepath.Base(filename)+":")
}

// Prints a fatal diagnostic naming the error kind, line and offending text
func report(err error) {
	var lineErr diag.LineError

	if !errors.As(err, &lineErr) {
		log.Println(err)
		return
	}

	kind := style("31", lineErr.GetKind().String())
	log.Printf("%s: %s", kind, err)
}

func warn(kind diag.Kind, msg string) {
	log.Printf("%s: %s", style("33", kind.String()), msg)
}
