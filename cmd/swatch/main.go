package main

import "github.com/amterp/swatch/internal/cli"

func main() {
	cli.Run()
}
