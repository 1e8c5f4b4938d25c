//go:build mage

package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/magefile/mage/mg"
)

// binary is where build:viewer writes the viewer and run:viewer starts it.
const binary = "bin/gdmlstudio"

// cmdSpec collects how one external command is launched.
type cmdSpec struct {
	args   []string
	dir    string
	env    []string
	stream bool
}

type cmdOption func(*cmdSpec)

func withArgs(args ...string) cmdOption {
	return func(s *cmdSpec) {
		s.args = append(s.args, args...)
	}
}

// withDir runs the command inside dir instead of the module root.
func withDir(dir string) cmdOption {
	return func(s *cmdSpec) {
		s.dir = dir
	}
}

// withEnv adds KEY=VALUE pairs on top of the current environment.
func withEnv(kv ...string) cmdOption {
	return func(s *cmdSpec) {
		s.env = append(s.env, kv...)
	}
}

// withStream echoes the command output while it runs.
func withStream() cmdOption {
	return func(s *cmdSpec) {
		s.stream = true
	}
}

// raceEnv is what `go test -race` needs: the race runtime is cgo only.
func raceEnv() cmdOption {
	return withEnv("CGO_ENABLED=1")
}

// viewerEnv forwards $CONFIG to the viewer as its config path.
func viewerEnv() cmdOption {
	if path := os.Getenv("CONFIG"); path != "" {
		return withEnv("GDMLSTUDIO_CONFIG=" + path)
	}
	return func(*cmdSpec) {}
}

func executeCmd(command string, options ...cmdOption) (string, error) {
	spec := &cmdSpec{}
	for _, o := range options {
		o(spec)
	}

	line := strings.TrimSpace(strings.Join(spec.env, " ") + " " + command + " " + strings.Join(spec.args, " "))
	if spec.dir != "" {
		fmt.Printf("Executing in %s: %s\n", spec.dir, line)
	} else {
		fmt.Printf("Executing: %s\n", line)
	}

	cmd := exec.Command(command, spec.args...)
	cmd.Dir = spec.dir
	if len(spec.env) > 0 {
		cmd.Env = append(os.Environ(), spec.env...)
	}

	var out bytes.Buffer
	stream := mg.Verbose() || spec.stream
	if stream {
		cmd.Stdout = io.MultiWriter(&out, os.Stdout)
		cmd.Stderr = io.MultiWriter(&out, os.Stderr)
	} else {
		cmd.Stdout = &out
		cmd.Stderr = &out
	}
	if err := cmd.Run(); err != nil {
		if !stream {
			fmt.Printf("... %s failed:\n%s\n", command, out.String())
		}
		return "", fmt.Errorf("error executing %s: %w", command, err)
	}
	return out.String(), nil
}
