// qrgenmk builds the QRGenerator library for one target language.
package main

import (
	"os"

	"git.fractalqb.de/fractalqb/qrgenmk/cmd/qrgenmk/cmd"
	"git.fractalqb.de/fractalqb/qrgenmk/haxe"
)

func main() {
	if err := cmd.Execute(); err != nil {
		if code := haxe.ExitCode(err); code > 0 {
			os.Exit(code)
		}
		os.Exit(1)
	}
}
