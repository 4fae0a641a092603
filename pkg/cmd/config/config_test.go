package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Paintersrp/noted/pkg/cmd/cmdutil/cmdtest"
)

func TestShowPrintsEffectiveConfig(t *testing.T) {
	s := cmdtest.NewState(t, "http://notes.test", "")

	out, err := cmdtest.Run(NewCmdConfig(s), "show")
	require.NoError(t, err)
	assert.Contains(t, out, "api_url: http://notes.test")
	assert.Contains(t, out, "storage: memory")
	assert.Contains(t, out, s.Config.GetConfigPath())
}

func TestInitWritesDefaultsOnce(t *testing.T) {
	s := cmdtest.NewState(t, "http://notes.test", "")
	path := s.Config.GetConfigPath()

	out, err := cmdtest.Run(NewCmdConfig(s), "init")
	require.NoError(t, err)
	assert.Contains(t, out, path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "api_url: http://localhost:8000")

	_, err = cmdtest.Run(NewCmdConfig(s), "init")
	assert.Error(t, err)

	_, err = cmdtest.Run(NewCmdConfig(s), "init", "--force")
	assert.NoError(t, err)
}
