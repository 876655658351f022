// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package container

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testImage = "pdftotext:latest"

// mockExecutor records calls and returns configured responses.
type mockExecutor struct {
	availableBins map[string]bool // binary -> whether LookPath succeeds
	runnableCmds  map[string]bool // "bin arg1 arg2" -> whether RunSilent succeeds
	runPipedFunc  func(name string, args []string, stdin io.Reader, stdout, stderr io.Writer) error
}

func (m *mockExecutor) LookPath(file string) (string, error) {
	if m.availableBins[file] {
		return "/usr/bin/" + file, nil
	}
	return "", errors.New("not found: " + file)
}

func (m *mockExecutor) RunSilent(name string, args ...string) error {
	key := name + " " + strings.Join(args, " ")
	if m.runnableCmds[key] {
		return nil
	}
	return errors.New("command failed: " + key)
}

func (m *mockExecutor) RunPiped(name string, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	if m.runPipedFunc != nil {
		return m.runPipedFunc(name, args, stdin, stdout, stderr)
	}
	return nil
}

// newCLI returns the runtime for bin backed by exec.
func newCLI(t *testing.T, bin string, exec executor) Runtime {
	t.Helper()
	for _, e := range engines {
		if e.bin == bin {
			return &cli{engine: e, exec: exec}
		}
	}
	t.Fatalf("unknown engine %s", bin)
	return nil
}

func TestDetectRuntime(t *testing.T) {
	tests := []struct {
		name     string
		exec     *mockExecutor
		wantName string
		wantErr  bool
	}{
		{
			name: "docker available",
			exec: &mockExecutor{
				availableBins: map[string]bool{"docker": true},
				runnableCmds:  map[string]bool{"docker info": true},
			},
			wantName: "docker",
		},
		{
			name: "podman fallback when docker missing",
			exec: &mockExecutor{
				availableBins: map[string]bool{"podman": true},
				runnableCmds:  map[string]bool{"podman info": true},
			},
			wantName: "podman",
		},
		{
			name:    "neither available",
			exec:    &mockExecutor{},
			wantErr: true,
		},
		{
			name: "docker on PATH but info fails, podman works",
			exec: &mockExecutor{
				availableBins: map[string]bool{"docker": true, "podman": true},
				runnableCmds:  map[string]bool{"podman info": true},
			},
			wantName: "podman",
		},
		{
			name: "both available, docker preferred",
			exec: &mockExecutor{
				availableBins: map[string]bool{"docker": true, "podman": true},
				runnableCmds:  map[string]bool{"docker info": true, "podman info": true},
			},
			wantName: "docker",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt, err := detectRuntime(tt.exec)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrNoRuntime)
				assert.Contains(t, err.Error(), "tried docker, podman")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, rt.Name())
		})
	}
}

func TestSelectRuntime(t *testing.T) {
	both := &mockExecutor{
		availableBins: map[string]bool{"docker": true, "podman": true},
		runnableCmds:  map[string]bool{"docker info": true, "podman info": true},
	}
	dockerOnly := &mockExecutor{
		availableBins: map[string]bool{"docker": true},
		runnableCmds:  map[string]bool{"docker info": true},
	}

	tests := []struct {
		name       string
		runtime    string
		exec       *mockExecutor
		wantName   string
		wantNoRT   bool
		wantErrMsg string
	}{
		{name: "empty name detects", runtime: "", exec: both, wantName: "docker"},
		{name: "explicit podman over docker", runtime: "podman", exec: both, wantName: "podman"},
		{name: "explicit podman missing", runtime: "podman", exec: dockerOnly, wantNoRT: true, wantErrMsg: "podman is not installed"},
		{name: "unknown runtime", runtime: "containerd", exec: both, wantErrMsg: "unsupported container runtime"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt, err := selectRuntime(tt.runtime, tt.exec)
			if tt.wantErrMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrMsg)
				assert.Equal(t, tt.wantNoRT, errors.Is(err, ErrNoRuntime))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, rt.Name())
		})
	}
}

func TestImageExists(t *testing.T) {
	tests := []struct {
		name    string
		bin     string
		cmds    map[string]bool
		wantErr bool
	}{
		{
			name: "docker image exists",
			bin:  "docker",
			cmds: map[string]bool{"docker image inspect " + testImage: true},
		},
		{
			name:    "docker image not found",
			bin:     "docker",
			wantErr: true,
		},
		{
			name: "podman image exists",
			bin:  "podman",
			cmds: map[string]bool{"podman image exists " + testImage: true},
		},
		{
			name:    "podman image not found",
			bin:     "podman",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt := newCLI(t, tt.bin, &mockExecutor{runnableCmds: tt.cmds})
			err := rt.ImageExists(testImage)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), testImage)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestRun(t *testing.T) {
	var gotName string
	var gotArgs []string
	exec := &mockExecutor{
		runPipedFunc: func(name string, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
			gotName, gotArgs = name, args
			data, _ := io.ReadAll(stdin)
			_, _ = stdout.Write([]byte("text of " + string(data)))
			return nil
		},
	}

	var out bytes.Buffer
	err := newCLI(t, "podman", exec).Run(testImage, []string{"pdftotext", "-", "-"}, strings.NewReader("doc.pdf"), &out)
	require.NoError(t, err)

	assert.Equal(t, "podman", gotName)
	assert.Equal(t, []string{"run", "--rm", "-i", "--network", "none", testImage, "pdftotext", "-", "-"}, gotArgs)
	assert.Equal(t, "text of doc.pdf", out.String())
}

func TestRun_FailureIncludesStderr(t *testing.T) {
	exec := &mockExecutor{
		runPipedFunc: func(name string, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
			_, _ = stderr.Write([]byte("Syntax Error: Couldn't find trailer dictionary\n"))
			return errors.New("exit status 1")
		},
	}

	err := newCLI(t, "docker", exec).Run(testImage, nil, strings.NewReader(""), io.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exit status 1")
	assert.Contains(t, err.Error(), "trailer dictionary")
}

func TestRun_FailureWithoutStderr(t *testing.T) {
	exec := &mockExecutor{
		runPipedFunc: func(string, []string, io.Reader, io.Writer, io.Writer) error {
			return errors.New("container exited with code 1")
		},
	}

	err := newCLI(t, "docker", exec).Run(testImage, nil, strings.NewReader(""), io.Discard)
	require.Error(t, err)
	assert.True(t, strings.HasSuffix(err.Error(), "container exited with code 1"), err.Error())
}

func TestRuntimeName(t *testing.T) {
	exec := &mockExecutor{}
	assert.Equal(t, "docker", newCLI(t, "docker", exec).Name())
	assert.Equal(t, "podman", newCLI(t, "podman", exec).Name())
}
