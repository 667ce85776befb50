// Package main provides the fight simulator binary: it loads an arena map and
// lets two teams of AI-driven monsters fight on it until one team is left.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/tactics/internal/config"
	"github.com/cory-johannsen/tactics/internal/game/ai"
	"github.com/cory-johannsen/tactics/internal/game/battlefield"
	"github.com/cory-johannsen/tactics/internal/game/fight"
	"github.com/cory-johannsen/tactics/internal/game/fight/fighter"
	"github.com/cory-johannsen/tactics/internal/game/fight/listener"
	"github.com/cory-johannsen/tactics/internal/observability"
	"github.com/cory-johannsen/tactics/internal/server"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	perTeam := flag.Int("monsters", 2, "number of monsters per team")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	topologies, err := battlefield.LoadTopologiesFromDir(cfg.Arena.MapsDir)
	if err != nil {
		logger.Fatal("loading maps", zap.Error(err))
	}
	topology, ok := topologies[cfg.Arena.Map]
	if !ok {
		logger.Fatal("unknown map", zap.String("map", cfg.Arena.Map), zap.Int("loaded", len(topologies)))
	}
	logger.Info("map loaded",
		zap.String("map", topology.ID),
		zap.Int("width", topology.Dimensions.Width),
		zap.Int("height", topology.Dimensions.Height),
	)

	registry := fight.NewRegistry(fight.Settings{
		TurnDuration:     cfg.Fight.TurnDuration,
		MoveStepDuration: cfg.Fight.MoveStepDuration,
		AttackDuration:   cfg.Fight.AttackDuration,
	}, logger)

	brain := ai.NewBrain(ai.Options{Workers: cfg.AI.Workers, ThinkDelay: cfg.AI.ThinkDelay}, logger)
	if cfg.AI.Enabled {
		registry.OnCreate(func(f *fight.Fight) { brain.Attach(f) })
	}
	registry.OnCreate(func(f *fight.Fight) {
		packets := observability.FightLogger(logger, f.ID()).Named("packets")
		listener.SendFightAction(f, listener.SenderFunc(func(p string) {
			packets.Debug("send", zap.String("packet", p))
		}))
		listener.LogFightEvents(f, logger)
	})

	teams, err := skirmish(topology, *perTeam)
	if err != nil {
		logger.Fatal("building teams", zap.Error(err))
	}

	lc := server.NewLifecycle(logger)
	lc.Add("fight", &server.FuncService{
		StartFn: func() error {
			f, err := registry.Create(topology, teams)
			if err != nil {
				return err
			}
			if err := f.Start(); err != nil {
				return fmt.Errorf("starting fight %s: %w", f.ID(), err)
			}
			<-f.Done()
			brain.Wait()
			return f.Err()
		},
		StopFn: registry.StopAll,
	})

	logger.Info("fight simulator initialized", zap.Duration("startup", time.Since(start)))
	if err := lc.Run(context.Background()); err != nil {
		logger.Error("fight simulator failed", zap.Error(err))
	}
}

// skirmish builds one team of monsters per team of start places of topology.
// Initiative decreases with creation order so turns alternate predictably.
func skirmish(topology *battlefield.Topology, perTeam int) ([]*fighter.Team, error) {
	if len(topology.StartPlaces) < 2 {
		return nil, fmt.Errorf("map %q has %d teams of start places, want at least 2", topology.ID, len(topology.StartPlaces))
	}
	teams := make([]*fighter.Team, 0, len(topology.StartPlaces))
	id := 1
	for number := range len(topology.StartPlaces) {
		places, ok := topology.StartPlaces[number]
		if !ok {
			return nil, fmt.Errorf("map %q has no start places for team %d", topology.ID, number)
		}
		if perTeam > len(places) {
			return nil, fmt.Errorf("team %d needs %d start places, map %q has %d", number, perTeam, topology.ID, len(places))
		}
		members := make([]*fighter.Fighter, 0, perTeam)
		for range perTeam {
			members = append(members, fighter.New(id, fmt.Sprintf("monster-%d", id), fighter.KindMonster, fighter.Characteristics{
				Initiative:     1000 - id,
				ActionPoints:   6,
				MovementPoints: 3,
				Damage:         4,
			}, 12))
			id++
		}
		teams = append(teams, fighter.NewTeam(number, places, members...))
	}
	return teams, nil
}
