package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCmd_Output(t *testing.T) {
	cmd := newVersionCmd()

	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())

	version, revision, goVersion := buildDetails()
	assert.Contains(t, out.String(), "nbgrade "+version+"\n")
	assert.Contains(t, out.String(), "revision: "+revision+"\n")
	assert.Contains(t, out.String(), "go: "+goVersion+"\n")
}

func TestBuildDetails_NeverEmpty(t *testing.T) {
	version, revision, goVersion := buildDetails()

	assert.NotEmpty(t, version)
	assert.NotEmpty(t, revision)
	assert.NotEmpty(t, goVersion)
}
