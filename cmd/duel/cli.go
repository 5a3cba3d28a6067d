package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/cory-johannsen/robotduel/internal/game/ai"
	"github.com/cory-johannsen/robotduel/internal/game/combat"
	"github.com/cory-johannsen/robotduel/internal/game/command"
	"github.com/cory-johannsen/robotduel/internal/game/dice"
	"github.com/cory-johannsen/robotduel/internal/game/match"
)

// errQuit ends the duel at the player's request.
var errQuit = errors.New("quit")

// Action is one decision from the player.
type Action struct {
	Move    combat.Move
	Upgrade string
	Skip    bool
	Help    bool
	Status  bool
}

// Player supplies commands for the human side of a match.
type Player interface {
	// Next returns the action for the current status, or errQuit / io.EOF to
	// stop. It returns ctx.Err() once ctx is done.
	Next(ctx context.Context, st match.Status) (Action, error)
	// Rejected reports a command the match refused.
	Rejected(err error)
}

// Play drives m until it is over, the player stops or ctx is done, printing
// the battle log to out.
//
// Postcondition: Returns nil when the match ended, the player quit or ctx was cancelled.
func Play(ctx context.Context, m *match.Match, p Player, out io.Writer) error {
	flush(m, out)
	for ctx.Err() == nil {
		st := m.Status()
		if st.Phase.Over() {
			return nil
		}
		printStatus(out, st)

		act, err := p.Next(ctx, st)
		if errors.Is(err, errQuit) || errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
			return nil
		}
		if err != nil {
			return err
		}

		switch {
		case st.Phase == match.PhaseUpgradeSelect && act.Skip:
			err = m.SkipUpgrade()
		case st.Phase == match.PhaseUpgradeSelect:
			err = m.ChooseUpgrade(act.Upgrade)
		default:
			_, err = m.Submit(act.Move)
		}
		if err != nil {
			p.Rejected(err)
		}
		flush(m, out)
	}
	return nil
}

func flush(m *match.Match, out io.Writer) {
	for _, ev := range m.Feed().Drain() {
		fmt.Fprintln(out, ev.Text)
	}
}

func printStatus(out io.Writer, st match.Status) {
	if st.Phase == match.PhaseUpgradeSelect {
		fmt.Fprintln(out, "Choose an upgrade (upgrade <n|id>) or skip:")
		for i, u := range st.Offers {
			fmt.Fprintf(out, "  %d) %s [%s]: %s\n", i+1, u.Name, u.ID, u.Description)
		}
		return
	}
	fmt.Fprintf(out, "Round %d | You %d/%dHP %dEN | %s %d/%dHP %dEN\n",
		st.Round,
		st.Player.HP, st.Player.MaxHP, int(math.Floor(st.Player.Energy)),
		st.Enemy.Type, st.Enemy.HP, st.Enemy.MaxHP, int(math.Floor(st.Enemy.Energy)),
	)
	var opts []string
	for i, mv := range combat.Moves {
		if !combat.Allowed(&st.Player, mv) {
			continue
		}
		mark := ""
		if !combat.Affordable(&st.Player, mv) {
			mark = "*"
		}
		opts = append(opts, fmt.Sprintf("%d=%s(%d)%s", i+1, mv, combat.Cost(&st.Player, mv), mark))
	}
	fmt.Fprintf(out, "Moves: %s\n", strings.Join(opts, " "))
}

// ConsolePlayer reads commands line by line. Input is read on its own
// goroutine so a blocked read never holds up cancellation.
type ConsolePlayer struct {
	lines    chan string
	readErr  error
	out      io.Writer
	commands *command.Registry
}

// NewConsolePlayer creates a ConsolePlayer reading from in and prompting on out.
func NewConsolePlayer(in io.Reader, out io.Writer) *ConsolePlayer {
	c := &ConsolePlayer{lines: make(chan string), out: out, commands: command.DefaultRegistry()}
	go c.read(in)
	return c
}

// read feeds c.lines until in is exhausted. readErr is written before the
// channel closes, so Next may read it once it sees the close.
func (c *ConsolePlayer) read(in io.Reader) {
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		c.lines <- sc.Text()
	}
	c.readErr = sc.Err()
	close(c.lines)
}

// Next implements Player. Help and status requests are answered locally.
func (c *ConsolePlayer) Next(ctx context.Context, st match.Status) (Action, error) {
	for {
		fmt.Fprint(c.out, "> ")
		var line string
		select {
		case <-ctx.Done():
			return Action{}, ctx.Err()
		case l, ok := <-c.lines:
			if !ok {
				if c.readErr != nil {
					return Action{}, c.readErr
				}
				return Action{}, io.EOF
			}
			line = l
		}
		act, err := ParseCommand(c.commands, line, st)
		switch {
		case errors.Is(err, errQuit):
			return Action{}, err
		case err != nil:
			fmt.Fprintln(c.out, err)
		case act.Help:
			printHelp(c.out, c.commands)
		case act.Status:
			printStatus(c.out, st)
		default:
			return act, nil
		}
	}
}

// Rejected implements Player.
func (c *ConsolePlayer) Rejected(err error) {
	fmt.Fprintf(c.out, "Rejected: %v\n", err)
}

var helpSections = []string{command.CategoryCombat, command.CategoryUpgrade, command.CategorySystem}

func printHelp(out io.Writer, commands *command.Registry) {
	groups := commands.CommandsByCategory()
	for _, cat := range helpSections {
		if len(groups[cat]) == 0 {
			continue
		}
		fmt.Fprintf(out, "%s:\n", cat)
		for _, cmd := range groups[cat] {
			fmt.Fprintf(out, "  %s\n", cmd.Usage())
		}
	}
}

// ParseCommand interprets one input line for the current status.
func ParseCommand(commands *command.Registry, line string, st match.Status) (Action, error) {
	cmd, parsed, err := commands.Lookup(line)
	if err != nil {
		return Action{}, err
	}

	switch cmd.Handler {
	case command.HandlerQuit:
		return Action{}, errQuit
	case command.HandlerHelp:
		return Action{Help: true}, nil
	case command.HandlerStatus:
		return Action{Status: true}, nil
	}

	if st.Phase == match.PhaseUpgradeSelect {
		switch cmd.Handler {
		case command.HandlerSkip:
			return Action{Skip: true}, nil
		case command.HandlerUpgrade:
			arg, ok := parsed.Arg(0)
			if !ok || len(parsed.Args) != 1 {
				return Action{}, errors.New("usage: upgrade <n|id>")
			}
			if n, err := strconv.Atoi(arg); err == nil {
				if n < 1 || n > len(st.Offers) {
					return Action{}, fmt.Errorf("no offer %d", n)
				}
				return Action{Upgrade: st.Offers[n-1].ID}, nil
			}
			return Action{Upgrade: strings.ToUpper(arg)}, nil
		}
		return Action{}, fmt.Errorf("expected 'upgrade <n|id>' or 'skip', got %q", line)
	}

	if cmd.Handler != command.HandlerMove {
		return Action{}, fmt.Errorf("%s is only available after a boss kill", cmd.Name)
	}
	mv, err := combat.ParseMove(cmd.Name)
	if err != nil {
		return Action{}, err
	}
	return Action{Move: mv}, nil
}

// AutoPlayer lets the enemy policy play the player's side, taking the first
// upgrade offered.
type AutoPlayer struct {
	src       dice.Source
	maxRounds int
	played    int
}

// NewAutoPlayer creates an AutoPlayer that stops after maxRounds rounds.
func NewAutoPlayer(src dice.Source, maxRounds int) *AutoPlayer {
	return &AutoPlayer{src: src, maxRounds: maxRounds}
}

// Next implements Player.
func (a *AutoPlayer) Next(ctx context.Context, st match.Status) (Action, error) {
	if err := ctx.Err(); err != nil {
		return Action{}, err
	}
	if st.Phase == match.PhaseUpgradeSelect {
		return Action{Upgrade: st.Offers[0].ID}, nil
	}
	if a.played >= a.maxRounds {
		return Action{}, errQuit
	}
	a.played++
	progress := st.Score
	if st.Mode == match.ModeCampaign {
		progress = st.Level
	}
	player, enemy := st.Player, st.Enemy
	return Action{Move: ai.ChooseEnemyMove(&player, &enemy, progress, combat.None, a.src)}, nil
}

// Rejected implements Player.
func (a *AutoPlayer) Rejected(error) {}
