//go:build mage

package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const binary = "phrasebook"

var Default = Build

// Build compiles the phrasebook binary into ./bin
func Build() error {
	return sh.RunV("go", "build", "-o", filepath.Join("bin", binary), "./cmd/phrasebook")
}

// Install installs the binary into $GOPATH/bin
func Install() error {
	return sh.RunV("go", "install", "./cmd/phrasebook")
}

// Test runs all unit tests
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Lint runs go vet
func Lint() error {
	return sh.RunV("go", "vet", "./...")
}

// Site rebuilds every lesson page and the index from ./lessons
func Site() error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join("bin", binary), "build")
}

// Dialogue regenerates the restaurant dialogue audio with concatenated clips
func Dialogue() error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join("bin", binary), "dialogue", "--strategy", "clips")
}

// Clean removes build artifacts
func Clean() error {
	return os.RemoveAll("bin")
}
