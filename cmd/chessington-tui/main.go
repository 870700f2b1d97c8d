package main

import (
	"flag"
	"fmt"
	"os"

	"chessington/internal/server/game"
	"chessington/internal/tui"
)

func main() {
	fen := flag.String("fen", "", "start from this position instead of the initial one")
	flag.Parse()

	if err := tui.Run(game.NewManager(nil), *fen); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
