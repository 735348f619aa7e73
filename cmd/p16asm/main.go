/*
 * p16sim - assembler/disassembler CLI.
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"p16sim/assembler"
	"p16sim/disassembler"
	"p16sim/isa"
	"p16sim/util/hexfmt"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "p16asm",
		Short: "Assembler and disassembler for the 16-bit pipeline simulator ISA",
	}

	assembleCmd := &cobra.Command{
		Use:   "assemble [file]",
		Short: "Assemble a source file and print its machine-code listing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			rows, errs := assembler.Listing(string(src))
			for _, row := range rows {
				if row.HasWord {
					fmt.Printf("%4d  %-10s  %s  %s\n", row.Line, hexfmt.Word(uint16(row.PC)), row.Hex, row.Asm)
				} else {
					fmt.Printf("%4d  %-10s  %s\n", row.Line, "", row.Asm)
				}
			}
			if len(errs) != 0 {
				fmt.Fprintln(os.Stderr)
				for _, e := range errs {
					fmt.Fprintln(os.Stderr, e.Error())
				}
				return fmt.Errorf("%d assembly error(s)", len(errs))
			}
			return nil
		},
	}

	disassembleCmd := &cobra.Command{
		Use:   "disassemble [file]",
		Short: "Disassemble a file of whitespace-separated 16-bit hex words",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			words, err := parseHexWords(string(src))
			if err != nil {
				return err
			}
			for _, line := range disassembler.DisassembleProgram(words) {
				fmt.Printf("%04x: %s  %s\n", line.PC, line.Hex, line.Asm)
			}
			return nil
		},
	}

	rootCmd.AddCommand(assembleCmd, disassembleCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func parseHexWords(text string) ([]isa.Word, error) {
	var words []isa.Word
	field := ""
	flush := func() error {
		if field == "" {
			return nil
		}
		var v uint16
		if _, err := fmt.Sscanf(field, "%x", &v); err != nil {
			return fmt.Errorf("invalid hex word %q: %w", field, err)
		}
		words = append(words, isa.Word(v))
		field = ""
		return nil
	}
	for _, r := range text {
		switch r {
		case ' ', '\t', '\n', '\r':
			if err := flush(); err != nil {
				return nil, err
			}
		default:
			field += string(r)
		}
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return words, nil
}
