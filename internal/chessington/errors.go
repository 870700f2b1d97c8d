package chessington

import "errors"

var (
	ErrPieceNotFound = errors.New("piece not on board")
	ErrOffBoard      = errors.New("square off board")
	ErrEmptySquare   = errors.New("no piece on square")
	ErrPieceOnBoard  = errors.New("piece already on board")
	ErrUnknownKind   = errors.New("unknown piece kind")
	ErrInvalidFEN    = errors.New("invalid FEN")
)
