package main

import (
	"fmt"
	"os"

	"toycc/src/backend/llvm"
	"toycc/src/backend/x86"
	"toycc/src/frontend"
	"toycc/src/sema"
	"toycc/src/util"
)

func main() {
	// Parse command line arguments.
	opt, err := util.ParseArgs()
	if err != nil {
		fmt.Printf("Command line argument error: %s\n", err)
		os.Exit(1)
	}

	// Read source code.
	src, err := util.ReadSource(opt)
	if err != nil {
		fmt.Printf("Could not read source code: %s\n", err)
		os.Exit(1)
	}

	// If -ts flag was passed: output token stream and exit.
	if opt.TokenStream {
		out, err := frontend.TokenStream(src)
		if err != nil {
			fmt.Printf("Syntax error: %s\n", err)
			os.Exit(1)
		}
		fmt.Print(out)
		os.Exit(0)
	}

	// Parse source code into a syntax tree.
	prog, err := frontend.Parse(src)
	if err != nil {
		fmt.Printf("Parse error: %s\n", err)
		os.Exit(1)
	}

	// Validate semantic invariants the code generator relies on.
	if err := sema.Validate(prog); err != nil {
		fmt.Printf("Source code error: %s\n", err)
		os.Exit(1)
	}

	if opt.LLVM {
		defer func() {
			if r := recover(); r != nil {
				fmt.Println(r)
				os.Exit(1)
			}
		}()
		ir, err := llvm.Generate(opt, prog)
		if err != nil {
			fmt.Printf("Error reported by LLVM: %s\n", err)
			os.Exit(1)
		}
		if err := util.WriteOutput(opt, ir); err != nil {
			fmt.Printf("Could not write output: %s\n", err)
			os.Exit(1)
		}
		return
	}

	// Generate assembler and write it to the output file.
	out := x86.Generate(prog)
	if err := util.WriteOutput(opt, out); err != nil {
		fmt.Printf("Could not write output: %s\n", err)
		os.Exit(1)
	}
}
