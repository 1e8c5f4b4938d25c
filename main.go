/*
GDML Studio: a terminal viewer for detector geometry documents.

	gdmlstudio [document.json]

Without a document the built-in sample is shown. Settings are read from
gdmlstudio.toml in the working directory, or from $GDMLSTUDIO_CONFIG.
*/
package main

import (
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/davsar89/GDML-Studio/engine"
	"github.com/davsar89/GDML-Studio/engine/core"
	"github.com/davsar89/GDML-Studio/engine/renderer/terminal"
	"github.com/davsar89/GDML-Studio/internal/tui"
	"github.com/davsar89/GDML-Studio/testbed"
)

func main() {
	configPath := os.Getenv("GDMLSTUDIO_CONFIG")
	if configPath == "" {
		configPath = engine.DefaultConfigFile
	}
	config, err := engine.LoadApplicationConfig(configPath)
	if err != nil {
		core.LogFatal("%s", err)
	}

	// The UI owns the terminal, logs go to a file.
	var logOut io.Writer = io.Discard
	if config.LogFile != "" {
		f, err := os.OpenFile(config.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			core.LogFatal("cannot open log file: %s", err)
		}
		defer f.Close()
		logOut = f
	}
	core.SetLogOutput(logOut)
	core.SetLogLevel(core.ParseLogLevel(config.LogLevel))

	backend := terminal.New()
	viewer, err := engine.New(config, backend)
	if err != nil {
		core.LogFatal("%s", err)
	}
	if err := viewer.Initialize(); err != nil {
		core.LogFatal("%s", err)
	}

	if len(os.Args) > 1 {
		err = viewer.LoadDocumentFile(os.Args[1])
	} else {
		err = viewer.LoadDocument(testbed.SampleDocument())
	}
	if err != nil {
		core.LogFatal("%s", err)
	}

	p := tea.NewProgram(tui.New(viewer, backend), tea.WithAltScreen(), tea.WithMouseCellMotion())

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		<-sigCh
		p.Quit()
	}()

	if _, err := p.Run(); err != nil {
		core.LogError("%s", err)
	}
	if err := viewer.Shutdown(); err != nil {
		core.LogError("%s", err)
	}
}
