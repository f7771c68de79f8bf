package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunMain_Version(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := runMain([]string{"--version"}, &stdout, &stderr)

	assert.Equal(t, 0, code)
	assert.Contains(t, stdout.String(), "fuzzmerge version")
}

func TestRunMain_UnknownFlag(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := runMain([]string{"--bogus"}, &stdout, &stderr)

	assert.Equal(t, 2, code)
	assert.Contains(t, stderr.String(), "bogus")
}

func TestRunMain_MissingRepoURL(t *testing.T) {
	t.Chdir(t.TempDir()) // away from any .fuzzmerge.yaml

	var stdout, stderr bytes.Buffer
	code := runMain([]string{}, &stdout, &stderr)

	assert.Equal(t, 2, code)
	assert.Contains(t, stderr.String(), "no repository URL configured")
}
