//go:build mage

package main

import (
	"fmt"
	"time"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Default target - build the binary
var Default = Build

const binPath = "bin/fuzzmerge"

// Build builds the fuzzmerge binary with version metadata.
func Build() error {
	version, _ := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	if version == "" {
		version = "dev"
	}
	commit, _ := sh.Output("git", "rev-parse", "--short", "HEAD")
	ldflags := fmt.Sprintf(
		"-X fuzzmerge/internal/version.Version=%s -X fuzzmerge/internal/version.CommitHash=%s -X fuzzmerge/internal/version.BuildDate=%s",
		version, commit, time.Now().UTC().Format("2006-01-02T15:04:05Z"),
	)
	return sh.RunV("go", "build", "-ldflags", ldflags, "-o", binPath, "./cmd/fuzzmerge")
}

// Test runs the full test suite.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Vet runs go vet.
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// QA runs vet then tests.
func QA() error {
	mg.Deps(Vet)
	return Test()
}

// Clean removes build artifacts.
func Clean() error {
	return sh.Rm("bin")
}
