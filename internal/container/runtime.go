// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package container runs command-line PDF tools from container images
// through the docker or podman CLI. Every run streams the PDF over stdin
// and has networking disabled.
package container

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"slices"
	"strings"
)

// ErrNoRuntime is returned when no usable container CLI is found.
var ErrNoRuntime = errors.New("no container runtime available")

// engine describes one supported container CLI.
type engine struct {
	bin        string
	imageCheck []string
}

// engines lists the supported CLIs in detection order.
var engines = []engine{
	{bin: "docker", imageCheck: []string{"image", "inspect"}},
	{bin: "podman", imageCheck: []string{"image", "exists"}},
}

// isolationArgs are passed to every container run.
var isolationArgs = []string{"--network", "none"}

// Runtime is a container CLI able to run a one-shot tool over stdin.
type Runtime interface {
	// Name is the CLI binary, "docker" or "podman".
	Name() string

	// Available is true when the binary is on PATH and its daemon or
	// service answers "info".
	Available() bool

	// ImageExists returns nil when image is present locally.
	ImageExists(image string) error

	// Run executes args inside a throwaway container of image, feeding
	// stdin to the tool and copying its stdout to stdout.
	Run(image string, args []string, stdin io.Reader, stdout io.Writer) error
}

// executor is the process seam replaced in tests.
type executor interface {
	LookPath(file string) (string, error)
	RunSilent(name string, args ...string) error
	RunPiped(name string, args []string, stdin io.Reader, stdout, stderr io.Writer) error
}

type osExecutor struct{}

func (osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (osExecutor) RunSilent(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

func (osExecutor) RunPiped(name string, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cmd := exec.Command(name, args...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}

// cli is a Runtime backed by one engine.
type cli struct {
	engine
	exec executor
}

func (c *cli) Name() string { return c.bin }

func (c *cli) Available() bool {
	if _, err := c.exec.LookPath(c.bin); err != nil {
		return false
	}
	return c.exec.RunSilent(c.bin, "info") == nil
}

func (c *cli) ImageExists(image string) error {
	args := append(slices.Clone(c.imageCheck), image)
	if err := c.exec.RunSilent(c.bin, args...); err != nil {
		return fmt.Errorf("image %s not found in %s: %w", image, c.bin, err)
	}
	return nil
}

func (c *cli) Run(image string, args []string, stdin io.Reader, stdout io.Writer) error {
	runArgs := make([]string, 0, 4+len(isolationArgs)+len(args))
	runArgs = append(runArgs, "run", "--rm", "-i")
	runArgs = append(runArgs, isolationArgs...)
	runArgs = append(runArgs, image)
	runArgs = append(runArgs, args...)

	var stderr bytes.Buffer
	err := c.exec.RunPiped(c.bin, runArgs, stdin, stdout, &stderr)
	if err == nil {
		return nil
	}
	if msg := strings.TrimSpace(stderr.String()); msg != "" {
		return fmt.Errorf("running %s in %s: %w: %s", image, c.bin, err, msg)
	}
	return fmt.Errorf("running %s in %s: %w", image, c.bin, err)
}

var defaultExec executor = osExecutor{}

// DetectRuntime returns the first available CLI, docker before podman.
func DetectRuntime() (Runtime, error) {
	return detectRuntime(defaultExec)
}

func detectRuntime(exec executor) (Runtime, error) {
	names := make([]string, 0, len(engines))
	for _, e := range engines {
		c := &cli{engine: e, exec: exec}
		if c.Available() {
			return c, nil
		}
		names = append(names, e.bin)
	}
	return nil, fmt.Errorf("%w: tried %s", ErrNoRuntime, strings.Join(names, ", "))
}

// Select returns the named CLI, or detects one when name is empty.
func Select(name string) (Runtime, error) {
	return selectRuntime(name, defaultExec)
}

func selectRuntime(name string, exec executor) (Runtime, error) {
	if name == "" {
		return detectRuntime(exec)
	}
	for _, e := range engines {
		if e.bin != name {
			continue
		}
		c := &cli{engine: e, exec: exec}
		if !c.Available() {
			return nil, fmt.Errorf("%w: %s is not installed or not running", ErrNoRuntime, name)
		}
		return c, nil
	}
	return nil, fmt.Errorf("unsupported container runtime %q: use docker or podman", name)
}
