package httpserver

import (
	"strconv"

	"chessington/internal/chessington"
)

// NewGameRequest 可选 FEN；为空则为标准开局
type NewGameRequest struct {
	FEN string `json:"fen"`
}

type NewGameResponse struct {
	GameID string `json:"game_id"`
	StateResponse
}

type StateRequest struct {
	GameID string `json:"game_id"`
}

type StateResponse struct {
	Position   string    `json:"position"` // FEN
	Hash       string    `json:"hash"`
	ToMove     string    `json:"to_move"`
	Plies      int       `json:"plies"`
	LegalMoves []MoveDTO `json:"legal_moves"` // 走子方所有可走棋（未做王安全过滤）
}

type MovesRequest struct {
	GameID string    `json:"game_id"`
	Square SquareDTO `json:"square"`
}

type MovesResponse struct {
	Square SquareDTO   `json:"square"`
	Moves  []SquareDTO `json:"moves"`
}

type PlayRequest struct {
	GameID string  `json:"game_id"`
	Move   MoveDTO `json:"move"`
}

type PlayResponse struct {
	Ply int `json:"ply"`
	StateResponse
}

type GamesResponse struct {
	Games []string `json:"games"`
}

type SquareDTO struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

type MoveDTO struct {
	From SquareDTO `json:"from"`
	To   SquareDTO `json:"to"`
}

func dtoToSquare(s SquareDTO) chessington.Square {
	return chessington.At(s.Row, s.Col)
}

func squareToDTO(s chessington.Square) SquareDTO {
	return SquareDTO{Row: s.Row, Col: s.Col}
}

func squaresToDTO(ss []chessington.Square) []SquareDTO {
	out := make([]SquareDTO, len(ss))
	for i, s := range ss {
		out[i] = squareToDTO(s)
	}
	return out
}

func movesToDTO(ms []chessington.Move) []MoveDTO {
	out := make([]MoveDTO, len(ms))
	for i, m := range ms {
		out[i] = MoveDTO{From: squareToDTO(m.From), To: squareToDTO(m.To)}
	}
	return out
}

func hashString(h uint64) string {
	return strconv.FormatUint(h, 16)
}
