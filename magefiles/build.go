//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

// Builds the viewer binary into bin/.
func (Build) Viewer() error {
	if _, err := executeCmd("go", withArgs("build", "-o", binary, "."), withStream()); err != nil {
		return err
	}
	return nil
}

type Test mg.Namespace

// Runs every package test with the race detector.
func (Test) All() error {
	if _, err := executeCmd("go", withArgs("test", "-race", "./..."), raceEnv(), withStream()); err != nil {
		return err
	}
	return nil
}

// Runs the tests of one package directory, e.g. `mage test:package engine/systems`.
func (Test) Package(dir string) error {
	if _, err := executeCmd("go", withArgs("test", "-race", "."), withDir(dir), raceEnv(), withStream()); err != nil {
		return err
	}
	return nil
}
