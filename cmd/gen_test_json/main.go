package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"

	"chessington/internal/chessington"
)

// TestCase is one position and the available squares of one piece in it.
type TestCase struct {
	FEN    string               `json:"fen"`
	Square chessington.Square   `json:"square"`
	Kind   string               `json:"kind"`
	Player string               `json:"player"`
	Moves  []chessington.Square `json:"moves"`
}

func main() {
	numGames := flag.Int("games", 10, "random games to sample")
	maxPlies := flag.Int("plies", 60, "ply limit per game")
	seed := flag.Int64("seed", 1, "random seed")
	out := flag.String("out", "move_gen_test_data.json", "output file")
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))
	var cases []TestCase
	for g := 0; g < *numGames; g++ {
		b := chessington.NewStartingBoard()
		for ply := 0; ply < *maxPlies; ply++ {
			cases = append(cases, sample(b)...)

			legal, err := b.AvailableMovesForSide(b.CurrentPlayer)
			if err != nil {
				log.Fatalf("game %d ply %d: %v", g, ply, err)
			}
			if len(legal) == 0 {
				break
			}
			mv := legal[rng.Intn(len(legal))]
			if err := b.PieceAt(mv.From).MoveTo(b, mv.To); err != nil {
				log.Fatalf("game %d ply %d: %v", g, ply, err)
			}
		}
	}

	data, err := json.MarshalIndent(cases, "", "  ")
	if err != nil {
		log.Fatal(err)
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Generated %d test cases from %d random games to %s\n", len(cases), *numGames, *out)
}

// sample records every piece of the side to move.
func sample(b *chessington.Board) []TestCase {
	fen := b.EncodeFEN()
	var out []TestCase
	for _, pl := range b.Placements() {
		if pl.Player != b.CurrentPlayer {
			continue
		}
		p := b.PieceAt(pl.Square)
		moves, err := p.AvailableMoves(b)
		if err != nil {
			log.Fatalf("%v at %v: %v", p, pl.Square, err)
		}
		out = append(out, TestCase{
			FEN:    fen,
			Square: pl.Square,
			Kind:   pl.Kind.String(),
			Player: pl.Player.String(),
			Moves:  moves,
		})
	}
	return out
}
