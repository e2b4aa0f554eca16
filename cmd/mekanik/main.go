package main

import "github.com/andrescamacho/mekanik-go/internal/adapters/cli"

func main() {
	cli.Execute()
}
