package store

import (
	"context"
	"encoding/json"
	"io"
	"log"

	"github.com/inhies/go-bytesize"
	"github.com/klauspost/compress/zstd"
)

type archiveHeader struct {
	GameID string `json:"game_id"`
	FEN    string `json:"fen"`
	Plies  int    `json:"plies"`
}

type countingWriter struct {
	w io.Writer
	n bytesize.ByteSize
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += bytesize.ByteSize(uint64(n))
	return n, err
}

// ExportArchive writes a zstd-compressed JSON-lines stream: one header line
// with the current FEN, then one line per applied move.
func (s *Store) ExportArchive(ctx context.Context, w io.Writer, id string) error {
	snap, err := s.LoadGame(ctx, id)
	if err != nil {
		return err
	}

	cw := &countingWriter{w: w}
	enc, err := zstd.NewWriter(cw)
	if err != nil {
		return err
	}
	je := json.NewEncoder(enc)
	if err := je.Encode(archiveHeader{GameID: snap.ID, FEN: snap.FEN, Plies: len(snap.Moves)}); err != nil {
		enc.Close()
		return err
	}
	for _, mv := range snap.Moves {
		if err := ctx.Err(); err != nil {
			enc.Close()
			return err
		}
		if err := je.Encode(mv); err != nil {
			enc.Close()
			return err
		}
	}
	if err := enc.Close(); err != nil {
		return err
	}
	log.Printf("exported game %s: %d plies, %s", snap.ID, len(snap.Moves), cw.n)
	return nil
}
