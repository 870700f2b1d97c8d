package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/davecgh/go-spew/spew"

	"chessington/internal/chessington"
)

func main() {
	fen := flag.String("fen", chessington.StartingFEN, "position to inspect")
	flag.Parse()

	b, err := chessington.DecodeFEN(*fen)
	if err != nil {
		log.Fatalf("decode %q: %v", *fen, err)
	}
	fmt.Println("FEN:", b.EncodeFEN())
	fmt.Printf("Hash: %016x\n", b.Hash())
	fmt.Print(b)

	moves, err := b.AvailableMovesForSide(b.CurrentPlayer)
	if err != nil {
		log.Fatalf("generate: %v", err)
	}
	fmt.Printf("%v available moves: %d\n", b.CurrentPlayer, len(moves))
	spew.Dump(moves)
}
