// Package main provides the duel binary: a line-oriented robot duel played
// against the enemy policy in campaign or endless mode.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/robotduel/internal/config"
	"github.com/cory-johannsen/robotduel/internal/game/ai"
	"github.com/cory-johannsen/robotduel/internal/game/dice"
	"github.com/cory-johannsen/robotduel/internal/game/match"
	"github.com/cory-johannsen/robotduel/internal/game/ruleset"
	"github.com/cory-johannsen/robotduel/internal/lifecycle"
	"github.com/cory-johannsen/robotduel/internal/observability"
	"github.com/cory-johannsen/robotduel/internal/scripting"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	mode := flag.String("mode", "", "match mode (campaign|endless); empty uses config")
	character := flag.String("character", "", "player character ID; empty uses config")
	seed := flag.Uint64("seed", 0, "deterministic random seed; 0 uses config")
	auto := flag.Bool("auto", false, "let the policy play the player's side")
	maxRounds := flag.Int("max-rounds", 1000, "round cap for -auto")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if *mode != "" {
		cfg.Match.Mode = *mode
	}
	if *character != "" {
		cfg.Match.Character = *character
	}
	if *seed != 0 {
		cfg.Match.Seed = *seed
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	var src dice.Source
	if cfg.Match.Seed != 0 {
		src = dice.NewSeededSource(cfg.Match.Seed)
	} else {
		src = dice.NewCryptoSource()
	}
	roller := dice.NewLoggedRoller(src, logger)

	contentStart := time.Now()
	reg, err := ruleset.LoadRegistry(cfg.Content.Dir)
	if err != nil {
		logger.Fatal("loading content", zap.String("dir", cfg.Content.Dir), zap.Error(err))
	}
	logger.Info("content loaded",
		zap.Int("characters", len(reg.Characters())),
		zap.Int("upgrades", len(reg.Upgrades())),
		zap.Int("levels", reg.Levels()),
		zap.Duration("elapsed", time.Since(contentStart)),
	)

	var hooks ai.HookCaller
	hookDefined := func(string) bool { return false }
	if cfg.Content.ScriptDir != "" {
		scriptMgr := scripting.NewManager(roller, logger)
		if err := scriptMgr.Load(cfg.Content.ScriptDir, cfg.Content.InstructionLimit); err != nil {
			logger.Fatal("loading AI scripts", zap.String("dir", cfg.Content.ScriptDir), zap.Error(err))
		}
		defer scriptMgr.Close()
		hooks = scriptMgr
		hookDefined = scriptMgr.HasHook
	}
	if err := reg.CheckHooks(hookDefined); err != nil {
		logger.Fatal("validating AI hooks", zap.String("dir", cfg.Content.ScriptDir), zap.Error(err))
	}
	logger.Info("AI hooks resolved", zap.Strings("hooks", reg.AIHooks()))

	mgr := match.NewManager(reg, roller, hooks, cfg.Match.UpgradeOffers, logger)
	m, err := mgr.Start(match.Mode(cfg.Match.Mode), cfg.Match.Character)
	if err != nil {
		logger.Fatal("starting match", zap.Error(err))
	}

	logger.Info("duel ready",
		zap.String("match", m.ID()),
		zap.String("mode", cfg.Match.Mode),
		zap.String("character", cfg.Match.Character),
		zap.Bool("auto", *auto),
		zap.Duration("startup", time.Since(start)),
	)

	var player Player = NewConsolePlayer(os.Stdin, os.Stdout)
	if *auto {
		player = NewAutoPlayer(roller, *maxRounds)
	}

	playCtx, stopPlay := context.WithCancel(context.Background())
	lc := lifecycle.New(logger)
	lc.Add("duel", &lifecycle.FuncService{
		StartFn: func() error { return Play(playCtx, m, player, os.Stdout) },
		StopFn:  stopPlay,
	})
	runErr := lc.Run(context.Background())

	st := m.Status()
	logger.Info("duel closed",
		zap.Stringer("phase", st.Phase),
		zap.Int("level", st.Level),
		zap.Int("score", st.Score),
		zap.Int("matches_ended", mgr.EndAll()),
	)
	if runErr != nil {
		logger.Error("duel aborted", zap.Error(runErr))
		os.Exit(1)
	}
}
