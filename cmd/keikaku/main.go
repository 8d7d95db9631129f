// Command keikaku runs programs written in the Keikaku scripting language.
package main

import (
	"fmt"
	"os"

	"github.com/noobforanonymous/keikaku-programming-language/cmd/keikaku/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
