package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"alien/internal/actions"
	"alien/internal/config"
	"alien/internal/eventbus"
	"alien/internal/monitor"
	"alien/internal/random"
	"alien/internal/repository"
	"alien/internal/serializer"
	"alien/internal/session"
	"alien/internal/ui"
)

func runEditor(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	dir, _ := cmd.Flags().GetString("dir")
	load, _ := cmd.Flags().GetString("load")
	logPath, _ := cmd.Flags().GetString("log")

	// Set up logging
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Could not open log file: %v", err)
	} else {
		defer logFile.Close()
		log.SetOutput(logFile)
	}

	bus := eventbus.New()

	configSvc := config.NewConfigServiceWithBus(configPath, bus)
	cfg, err := configSvc.Load()
	if err != nil {
		log.Printf("Error loading config: %v", err)
		cfg = config.DefaultConfig()
	}
	if dir != "" {
		absDir, err := filepath.Abs(config.ExpandPath(dir))
		if err != nil {
			return fmt.Errorf("failed to resolve %s: %w", dir, err)
		}
		cfg.WorkDir = absDir
	}

	sess := session.New(bus, cfg.Simulation)
	defer sess.Close()

	rng := random.New(cfg.Seed)
	store := repository.NewStore(repository.Options{
		UniverseSize: cfg.Simulation.UniverseSize,
		Parameters:   sess.Parameters,
		Rand:         rng,
	})
	mon := monitor.New(bus, store)
	defer mon.Close()

	dialogs := ui.NewPromptDialogs(cfg)
	ctrl := actions.NewController(actions.Deps{
		Repository: store,
		Bus:        bus,
		Serializer: serializer.New(),
		Session:    sess,
		Dialogs:    dialogs,
		Rand:       rng,
		Model:      actions.NewModel(cfg.Editor.PasteStep, cfg.Editor.PasteMax),
	})
	defer ctrl.Close()

	if cfg.Editor.StartInEditMode {
		ctrl.ToggleEditMode(true)
	}
	if cfg.Editor.ShowMonitor {
		ctrl.ToggleMonitor(true)
	}

	uiModel := ui.NewModel(ui.Deps{
		Bus:           bus,
		Controller:    ctrl,
		Store:         store,
		Session:       sess,
		Monitor:       mon,
		Dialogs:       dialogs,
		Config:        cfg,
		ConfigService: configSvc,
	})

	p := tea.NewProgram(uiModel, tea.WithAltScreen())
	uiModel.SetProgram(p)

	// Set up event forwarding to UI
	eventChan := make(chan eventbus.DomainEvent, 100)
	defer close(eventChan)
	for _, eventType := range ui.Events {
		unsubscribe := bus.Subscribe(eventType, func(e eventbus.DomainEvent) {
			select {
			case eventChan <- e:
			default:
				log.Println("Event channel full, dropping event")
			}
		})
		defer unsubscribe()
	}
	go func() {
		for event := range eventChan {
			p.Send(ui.EventMsg{Event: event})
		}
	}()

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		if _, ok := <-sigChan; ok {
			p.Quit()
		}
	}()

	if load != "" {
		dialogs.Answer(load)
		ctrl.Run(actions.LoadSimulation)
		dialogs.Clear()
	}

	log.Printf("Editor: starting in %s", cfg.WorkDir)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}
