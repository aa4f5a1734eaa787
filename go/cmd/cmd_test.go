package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	c := NewSysemuCmd("<script>")
	args, err := c.Parse([]string{"sysemu run", "--arch", "arm64", "-s", "--max-steps=5", "script.txt"})
	require.NoError(t, err)
	require.Equal(t, []string{"script.txt"}, args)
	require.Equal(t, "arm64", c.Config.Arch)
	require.Equal(t, "linux", c.Config.OS)
	require.True(t, c.Config.TraceSys)
	require.False(t, c.Config.TraceReg)
	require.Equal(t, 5, c.Config.MaxSteps)

	p, err := c.NewProcess()
	require.NoError(t, err)
	require.Equal(t, "arm64", p.Arch.Name)
}

func TestBadArch(t *testing.T) {
	c := NewSysemuCmd("")
	_, err := c.Parse([]string{"sysemu", "--arch", "vax"})
	require.NoError(t, err)
	_, err = c.NewProcess()
	require.Error(t, err)

	var buf bytes.Buffer
	c.Stderr = &buf
	c.PrintError(err)
	require.Contains(t, buf.String(), "Arch 'vax' not found.")
}
