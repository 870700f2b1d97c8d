package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"chessington/internal/chessington"
	"chessington/internal/server/game"
	"chessington/internal/server/store"
)

// Archiver streams a stored game's move log.
type Archiver interface {
	ExportArchive(ctx context.Context, w io.Writer, id string) error
}

// Handler 实现 http.Handler，用于 /api/* 路由
type Handler struct {
	games    *game.Manager
	archiver Archiver
}

// NewHandler serves games from m. archiver may be nil, in which case
// /api/export answers 501.
func NewHandler(m *game.Manager, archiver Archiver) *Handler {
	return &Handler{games: m, archiver: archiver}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/api/new_game":
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.handleNewGame(w, r)

	case "/api/state":
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.handleState(w, r)

	case "/api/moves":
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.handleMoves(w, r)

	case "/api/play":
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.handlePlay(w, r)

	case "/api/games":
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, GamesResponse{Games: h.games.List()})

	case "/api/export":
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.handleExport(w, r)

	default:
		http.NotFound(w, r)
	}
}

func (h *Handler) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req NewGameRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
	}

	var (
		g   *game.GameState
		err error
	)
	if req.FEN == "" {
		g, err = h.games.NewGame(r.Context())
	} else {
		g, err = h.games.NewGameFromFEN(r.Context(), req.FEN)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	st, err := stateOf(g.Snapshot())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, NewGameResponse{GameID: g.ID, StateResponse: st})
}

func (h *Handler) handleState(w http.ResponseWriter, r *http.Request) {
	var req StateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	g, err := h.games.Get(req.GameID)
	if err != nil {
		writeError(w, err)
		return
	}
	st, err := stateOf(g.Snapshot())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, st)
}

func (h *Handler) handleMoves(w http.ResponseWriter, r *http.Request) {
	var req MovesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	moves, err := h.games.AvailableMoves(req.GameID, dtoToSquare(req.Square))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, MovesResponse{Square: req.Square, Moves: squaresToDTO(moves)})
}

func (h *Handler) handlePlay(w http.ResponseWriter, r *http.Request) {
	var req PlayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	rec, snap, err := h.games.Play(r.Context(), req.GameID, dtoToSquare(req.Move.From), dtoToSquare(req.Move.To))
	if err != nil {
		writeError(w, err)
		return
	}
	st, err := stateOf(snap)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, PlayResponse{Ply: rec.Ply, StateResponse: st})
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	if h.archiver == nil {
		http.Error(w, "export needs a database", http.StatusNotImplemented)
		return
	}
	id := r.URL.Query().Get("game_id")
	if _, err := h.games.Get(id); err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/zstd")
	w.Header().Set("Content-Disposition", `attachment; filename="`+id+`.jsonl.zst"`)
	if err := h.archiver.ExportArchive(r.Context(), w, id); err != nil {
		// 头已经写出，只能记日志
		log.Printf("export %s: %v", id, err)
	}
}

// stateOf describes one snapshot; the legal moves are generated on a copy
// rebuilt from its placements so the live board is never touched.
func stateOf(snap game.Snapshot) (StateResponse, error) {
	b, err := chessington.BoardFromPlacements(snap.Placements, snap.ToMove)
	if err != nil {
		return StateResponse{}, err
	}
	moves, err := b.AvailableMovesForSide(snap.ToMove)
	if err != nil {
		return StateResponse{}, err
	}
	return StateResponse{
		Position:   snap.FEN,
		Hash:       hashString(snap.Hash),
		ToMove:     snap.ToMove.String(),
		Plies:      len(snap.Moves),
		LegalMoves: movesToDTO(moves),
	}, nil
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, game.ErrGameNotFound), errors.Is(err, store.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, game.ErrNoPiece),
		errors.Is(err, game.ErrNotYourTurn),
		errors.Is(err, game.ErrIllegalMove),
		errors.Is(err, chessington.ErrInvalidFEN),
		errors.Is(err, chessington.ErrOffBoard):
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		log.Printf("request failed: %v", err)
	}
	http.Error(w, err.Error(), status)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Println("writeJSON error:", err)
	}
}
