//go:build mage

package main

import (
	"fmt"
	"os"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Runs the viewer on $DOCUMENT, or on the built-in sample when unset.
// $CONFIG overrides the config file.
func (Run) Viewer() error {
	mg.Deps(Build.Viewer)
	fmt.Println("Run viewer...")
	args := []string{}
	if doc := os.Getenv("DOCUMENT"); doc != "" {
		args = append(args, doc)
	}
	if _, err := executeCmd(binary, withArgs(args...), viewerEnv(), withStream()); err != nil {
		return err
	}
	return nil
}
