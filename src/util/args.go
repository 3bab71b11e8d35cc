package util

import (
	"fmt"
	"os"
	"text/tabwriter"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// Options holds the parsed command line configuration for one compile.
type Options struct {
	Src         string // Path to source file.
	Out         string // Path to output file.
	LLVM        bool   // Set true if compiler should emit LLVM IR instead of NASM assembly.
	TokenStream bool   // Set true if compiler should output the token stream and exit.
}

// ---------------------
// ----- Constants -----
// ---------------------

const appVersion = "toycc 1.0"

// ---------------------
// ----- functions -----
// ---------------------

// ParseArgs parses command line arguments. The compiler always targets
// freestanding x86-64 Linux, so unlike a retargetable compiler there is no
// architecture, vendor or OS selection; positional arguments give the
// source and output file paths: "toycc <source.toy> <output.asm>".
func ParseArgs() (Options, error) {
	opt := Options{}
	args := os.Args[1:]
	var positional []string
	for i1 := 0; i1 < len(args); i1++ {
		switch args[i1] {
		case "-h", "--h", "-help", "--help":
			printHelp()
			os.Exit(0)
		case "-ll":
			// Emit LLVM IR and use the LLVM code generator instead of NASM.
			opt.LLVM = true
		case "-ts":
			// Output the token stream and exit.
			opt.TokenStream = true
		case "-v", "--v", "-version", "--version":
			fmt.Println(appVersion)
			os.Exit(0)
		default:
			if len(args[i1]) > 0 && args[i1][0] == '-' {
				return opt, fmt.Errorf("unexpected flag: %s", args[i1])
			}
			positional = append(positional, args[i1])
		}
	}
	if len(positional) > 0 {
		opt.Src = positional[0]
	}
	if len(positional) > 1 {
		opt.Out = positional[1]
	}
	if opt.Src == "" {
		return opt, fmt.Errorf("usage: toycc <source.toy> <output.asm>")
	}
	if opt.Out == "" && !opt.TokenStream {
		return opt, fmt.Errorf("usage: toycc <source.toy> <output.asm>")
	}
	return opt, nil
}

// printHelp prints a helpful usage message to stdout.
func printHelp() {
	fmt.Println("usage: toycc [flags] <source.toy> <output.asm>")
	w := tabwriter.NewWriter(os.Stdout, 6, 1, 1, 0, 0)
	_, _ = fmt.Fprintln(w, "-h, -help\tPrints this help message and exits the application.")
	_, _ = fmt.Fprintln(w, "-ll\tEmit LLVM IR and use the LLVM code generator instead of NASM.")
	_, _ = fmt.Fprintln(w, "-ts\tOutput the tokens of the source code and exit.")
	_, _ = fmt.Fprintln(w, "-v, -version\tPrints application version and exits the application.")
	_ = w.Flush()
}
