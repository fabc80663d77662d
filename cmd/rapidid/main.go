// rapidid CLI - generate and inspect unique identifiers
package main

import "github.com/Lzww0608/rapidid/internal/cli"

func main() {
	cli.Main()
}
