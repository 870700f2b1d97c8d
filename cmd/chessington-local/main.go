package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/pkg/profile"

	"chessington/internal/server/game"
	httpserver "chessington/internal/server/http"
	"chessington/internal/server/store"
)

func main() {
	addr := flag.String("addr", ":2888", "listen address")
	dbPath := flag.String("db", "chessington.db", "SQLite database file; empty keeps games in memory only")
	prof := flag.String("profile", "", "write a cpu or mem profile to the working directory")
	flag.Parse()

	switch *prof {
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath(".")).Stop()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var (
		m    *game.Manager
		arch httpserver.Archiver
	)
	if *dbPath != "" {
		st, err := store.Open(*dbPath)
		if err != nil {
			log.Fatalf("open database %s: %v", *dbPath, err)
		}
		defer st.Close()
		m = game.NewManager(st)
		arch = st

		n, err := m.Restore(ctx)
		if err != nil {
			log.Fatalf("restore games: %v", err)
		}
		log.Printf("restored %d games from %s", n, *dbPath)
	} else {
		m = game.NewManager(nil)
	}

	srv := &http.Server{
		Addr:              *addr,
		Handler:           httpserver.NewMux(httpserver.NewHandler(m, arch)),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("listening on %s", *addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}
