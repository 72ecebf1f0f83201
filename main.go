package main

import "github.com/rook-computer/deckgfx/internal/cli"

func main() {
	cli.Execute()
}
