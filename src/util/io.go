package util

import "os"

// ReadSource reads the source file named by opt.Src.
func ReadSource(opt Options) (string, error) {
	b, err := os.ReadFile(opt.Src)
	return string(b), err
}

// WriteOutput writes generated text to the file named by opt.Out.
func WriteOutput(opt Options, text string) error {
	return os.WriteFile(opt.Out, []byte(text), 0644)
}
