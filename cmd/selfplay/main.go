package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/pkg/profile"
	"golang.org/x/sync/errgroup"

	"chessington/internal/chessington"
)

func main() {
	totalGames := flag.Int("games", 100, "number of random games to play")
	maxPlies := flag.Int("plies", 200, "ply limit per game")
	seed := flag.Int64("seed", 1, "random seed; game i uses seed+i")
	workers := flag.Int("workers", 4, "games played in parallel")
	prof := flag.String("profile", "", "write a cpu or mem profile to the working directory")
	flag.Parse()

	switch *prof {
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath(".")).Stop()
	}

	var stats benchStats
	start := time.Now()

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(*workers)
	for i := 0; i < *totalGames; i++ {
		rng := rand.New(rand.NewSource(*seed + int64(i)))
		g.Go(func() error {
			return playGame(ctx, rng, *maxPlies, &stats)
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatalf("selfplay: %v", err)
	}
	stats.report(time.Since(start))
}

type benchStats struct {
	games, stuck, plies, generated atomic.Int64
}

func (s *benchStats) report(d time.Duration) {
	fmt.Printf("games: %d (no moves left: %d)\n", s.games.Load(), s.stuck.Load())
	fmt.Printf("plies: %d, generated moves: %d\n", s.plies.Load(), s.generated.Load())
	if secs := d.Seconds(); secs > 0 {
		fmt.Printf("time: %v, %.0f plies/s\n", d.Round(time.Millisecond), float64(s.plies.Load())/secs)
	}
}

// playGame picks uniformly among the side to move's available moves until
// nothing is available or the ply limit is hit.
func playGame(ctx context.Context, rng *rand.Rand, maxPlies int, stats *benchStats) error {
	b := chessington.NewStartingBoard()
	defer stats.games.Add(1)

	for ply := 0; ply < maxPlies; ply++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		moves, err := b.AvailableMovesForSide(b.CurrentPlayer)
		if err != nil {
			return fmt.Errorf("ply %d: %w", ply, err)
		}
		stats.generated.Add(int64(len(moves)))
		if len(moves) == 0 {
			stats.stuck.Add(1)
			return nil
		}
		mv := moves[rng.Intn(len(moves))]
		p := b.PieceAt(mv.From)
		if err := p.MoveTo(b, mv.To); err != nil {
			return fmt.Errorf("ply %d %v: %w", ply, mv, err)
		}
		stats.plies.Add(1)
	}
	return nil
}
