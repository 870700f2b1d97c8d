package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"chessington/internal/server/game"
	"chessington/internal/server/store"
)

func newTestServer(t *testing.T, withStore bool) *httptest.Server {
	t.Helper()
	var (
		st  *store.Store
		err error
	)
	m := game.NewManager(nil)
	var arch Archiver
	if withStore {
		st, err = store.Open(filepath.Join(t.TempDir(), "api.db"))
		if err != nil {
			t.Fatal(err)
		}
		t.Cleanup(func() { st.Close() })
		m = game.NewManager(st)
		arch = st
	}
	srv := httptest.NewServer(NewMux(NewHandler(m, arch)))
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, srv *httptest.Server, path string, body, out any) int {
	t.Helper()
	buf, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.Post(srv.URL+path, "application/json", bytes.NewReader(buf))
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	defer resp.Body.Close()
	if out != nil && resp.StatusCode == http.StatusOK {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s: %v", path, err)
		}
	}
	return resp.StatusCode
}

func TestNewGameAndPlay(t *testing.T) {
	srv := newTestServer(t, false)

	var ng NewGameResponse
	if code := post(t, srv, "/api/new_game", NewGameRequest{}, &ng); code != http.StatusOK {
		t.Fatalf("new_game status %d", code)
	}
	if ng.GameID == "" || ng.ToMove != "white" || len(ng.LegalMoves) != 16 {
		t.Fatalf("new game: id=%q to_move=%s legal=%d", ng.GameID, ng.ToMove, len(ng.LegalMoves))
	}

	var mv MovesResponse
	code := post(t, srv, "/api/moves", MovesRequest{GameID: ng.GameID, Square: SquareDTO{Row: 1, Col: 4}}, &mv)
	if code != http.StatusOK || len(mv.Moves) != 2 {
		t.Fatalf("moves: status %d, %+v", code, mv)
	}

	var pr PlayResponse
	play := PlayRequest{GameID: ng.GameID, Move: MoveDTO{From: SquareDTO{1, 4}, To: SquareDTO{3, 4}}}
	if code := post(t, srv, "/api/play", play, &pr); code != http.StatusOK {
		t.Fatalf("play status %d", code)
	}
	if pr.Ply != 1 || pr.Plies != pr.Ply || pr.ToMove != "black" || pr.Hash == ng.Hash {
		t.Fatalf("after play: %+v", pr)
	}

	var st StateResponse
	if code := post(t, srv, "/api/state", StateRequest{GameID: ng.GameID}, &st); code != http.StatusOK {
		t.Fatalf("state status %d", code)
	}
	if st.Position != pr.Position || st.Plies != 1 {
		t.Fatalf("state %+v differs from play %+v", st, pr.StateResponse)
	}
}

func TestErrorStatuses(t *testing.T) {
	srv := newTestServer(t, false)
	var ng NewGameResponse
	post(t, srv, "/api/new_game", NewGameRequest{}, &ng)

	cases := []struct {
		name string
		path string
		body any
		want int
	}{
		{"unknown game", "/api/state", StateRequest{GameID: "x"}, http.StatusNotFound},
		{"bad fen", "/api/new_game", NewGameRequest{FEN: "8/8 w"}, http.StatusBadRequest},
		{"bad en passant", "/api/new_game", NewGameRequest{FEN: "4k3/8/8/8/8/8/4P3/4K3 w - e9 0 1"}, http.StatusBadRequest},
		{"empty square", "/api/moves", MovesRequest{GameID: ng.GameID, Square: SquareDTO{4, 4}}, http.StatusBadRequest},
		{"wrong side", "/api/play", PlayRequest{GameID: ng.GameID, Move: MoveDTO{SquareDTO{6, 0}, SquareDTO{5, 0}}}, http.StatusBadRequest},
		{"illegal", "/api/play", PlayRequest{GameID: ng.GameID, Move: MoveDTO{SquareDTO{0, 6}, SquareDTO{2, 5}}}, http.StatusBadRequest},
		{"bad json", "/api/play", "not an object", http.StatusBadRequest},
	}
	for _, tc := range cases {
		if code := post(t, srv, tc.path, tc.body, nil); code != tc.want {
			t.Fatalf("%s: status %d, want %d", tc.name, code, tc.want)
		}
	}

	resp, err := http.Get(srv.URL + "/api/play")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("GET /api/play: status %d", resp.StatusCode)
	}

	resp, err = http.Get(srv.URL + "/api/export?game_id=" + ng.GameID)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotImplemented {
		t.Fatalf("export without store: status %d", resp.StatusCode)
	}
}

func TestGamesAndExport(t *testing.T) {
	srv := newTestServer(t, true)
	var ng NewGameResponse
	if code := post(t, srv, "/api/new_game", NewGameRequest{FEN: "4k3/8/8/8/8/8/4P3/4K3 w"}, &ng); code != http.StatusOK {
		t.Fatalf("new_game status %d", code)
	}
	if len(ng.LegalMoves) != 2+4 {
		t.Fatalf("legal moves: %+v", ng.LegalMoves)
	}

	resp, err := http.Get(srv.URL + "/api/games")
	if err != nil {
		t.Fatal(err)
	}
	var gr GamesResponse
	err = json.NewDecoder(resp.Body).Decode(&gr)
	resp.Body.Close()
	if err != nil || len(gr.Games) != 1 || gr.Games[0] != ng.GameID {
		t.Fatalf("games: %+v err=%v", gr, err)
	}

	resp, err = http.Get(srv.URL + "/api/export?game_id=" + ng.GameID)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || resp.Header.Get("Content-Type") != "application/zstd" {
		t.Fatalf("export: status %d type %q", resp.StatusCode, resp.Header.Get("Content-Type"))
	}
}
