// Chesscore - an interactive chess rules engine for the terminal.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/nadi726/chesscore/internal/board"
	"github.com/nadi726/chesscore/internal/config"
	"github.com/nadi726/chesscore/internal/notation"
	"github.com/nadi726/chesscore/internal/session"
	"github.com/nadi726/chesscore/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	db, err := openStore(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer db.Close()

	app := &app{
		logger: logger,
		db:     db,
		sess:   session.New(logger),
	}
	app.run()
}

func newLogger(level, format string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("bad log level %q: %w", level, err)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.Encoding = format
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

func openStore(cfg *config.Config) (*store.Store, error) {
	if cfg.DataDir != "" {
		return store.Open(cfg.DataDir)
	}
	return store.OpenDefault()
}

type app struct {
	logger *zap.Logger
	db     *store.Store
	sess   *session.Session
	// saved is the record ID of the current session, set after save/load.
	saved string
}

func (a *app) run() {
	fmt.Println("chesscore - type a move in algebraic notation, or 'help'")
	a.printBoard()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		switch parts[0] {
		case "quit", "exit":
			return
		case "help":
			a.printHelp()
		case "board":
			a.printBoard()
		case "fen":
			fmt.Println(a.sess.Position().ToFEN())
		case "moves":
			a.printLegalMoves()
		case "history":
			fmt.Println(strings.Join(a.sess.Moves(), " "))
		case "new":
			a.newGame(parts[1:])
		case "resign":
			a.resign()
		case "draw":
			a.claimDraw()
		case "save":
			a.save()
		case "load":
			a.load(parts[1:])
		case "games":
			a.listGames()
		case "delete":
			a.deleteGame(parts[1:])
		default:
			a.playMove(line)
		}
	}
}

func (a *app) printHelp() {
	fmt.Println(`Enter a move in algebraic notation (e4, Nf3, exd5, O-O, e8=Q).
Commands:
  board          show the board
  fen            show the current position as FEN
  moves          list all legal moves
  history        show the moves played so far
  new [fen]      start a new game, optionally from a FEN position
  resign         resign the game for the side to move
  draw           claim a draw (fifty-move rule or threefold repetition)
  save           save the game
  load <id>      load a saved game
  games          list saved games
  delete <id>    delete a saved game
  quit           exit`)
}

func (a *app) printBoard() {
	pos := a.sess.Position()
	for rank := 7; rank >= 0; rank-- {
		fmt.Printf("%d ", rank+1)
		for file := 0; file < 8; file++ {
			c := pos.PieceAt(board.NewSquare(file, rank)).String()
			if c == " " {
				c = "."
			}
			fmt.Printf("%s ", c)
		}
		fmt.Println()
	}
	fmt.Println("  a b c d e f g h")
	fmt.Printf("%s to move\n", pos.SideToMove())
}

func (a *app) printLegalMoves() {
	pos := a.sess.Position()
	var sans []string
	for ev := range pos.LegalMoves() {
		san, err := notation.Format(pos, ev)
		if err != nil {
			a.logger.Warn("formatting legal move", zap.Error(err))
			continue
		}
		sans = append(sans, san)
	}
	fmt.Println(strings.Join(sans, " "))
}

func (a *app) playMove(text string) {
	san, err := a.sess.Play(text)
	if err != nil {
		fmt.Println("rejected:", err)
		return
	}
	fmt.Println("played", san)
	a.printBoard()
	a.reportEnd()
	if reason, ok := a.sess.CanClaimDraw(); ok {
		fmt.Printf("draw claim available (%s): type 'draw' to claim\n", reason)
	}
}

func (a *app) reportEnd() {
	if !a.sess.Over() {
		return
	}
	outcome, reason := a.sess.Outcome()
	fmt.Printf("game over: %s (%s)\n", outcome, reason)
}

func (a *app) newGame(args []string) {
	if len(args) == 0 {
		a.sess = session.New(a.logger)
	} else {
		fen := strings.Join(args, " ")
		s, err := session.NewFromFEN(a.logger, fen)
		if err != nil {
			fmt.Println("rejected:", err)
			return
		}
		a.sess = s
	}
	a.saved = ""
	a.printBoard()
}

func (a *app) resign() {
	if err := a.sess.Resign(a.sess.Position().SideToMove()); err != nil {
		fmt.Println("rejected:", err)
		return
	}
	a.reportEnd()
}

func (a *app) claimDraw() {
	if err := a.sess.ClaimDraw(); err != nil {
		fmt.Println("rejected:", err)
		return
	}
	a.reportEnd()
}

func (a *app) save() {
	outcome, _ := a.sess.Outcome()
	rec := store.Record{
		ID:       a.saved,
		StartFEN: a.sess.StartFEN(),
		Moves:    a.sess.Moves(),
		FinalFEN: a.sess.Position().ToFEN(),
		Outcome:  outcome.String(),
	}
	saved, err := a.db.Save(rec)
	if err != nil {
		fmt.Println("save failed:", err)
		return
	}
	a.saved = saved.ID
	fmt.Println("saved as", saved.ID)
}

func (a *app) load(args []string) {
	if len(args) != 1 {
		fmt.Println("usage: load <id>")
		return
	}
	rec, err := a.db.Load(args[0])
	if err != nil {
		fmt.Println("load failed:", err)
		return
	}
	s, err := session.Resume(a.logger, rec.StartFEN, rec.Moves)
	if err != nil {
		fmt.Println("load failed:", err)
		return
	}
	a.sess = s
	a.saved = rec.ID
	a.printBoard()
	a.reportEnd()
}

func (a *app) listGames() {
	records, err := a.db.List()
	if err != nil {
		fmt.Println("list failed:", err)
		return
	}
	if len(records) == 0 {
		fmt.Println("no saved games")
		return
	}
	for _, rec := range records {
		fmt.Printf("%s  %s  %d moves  %s\n",
			rec.ID, rec.Outcome, len(rec.Moves), rec.UpdatedAt.Format("2006-01-02 15:04"))
	}
}

func (a *app) deleteGame(args []string) {
	if len(args) != 1 {
		fmt.Println("usage: delete <id>")
		return
	}
	if err := a.db.Delete(args[0]); err != nil {
		fmt.Println("delete failed:", err)
		return
	}
	if a.saved == args[0] {
		a.saved = ""
	}
	fmt.Println("deleted", args[0])
}
