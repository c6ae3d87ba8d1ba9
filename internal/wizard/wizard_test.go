package wizard

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/conclave-dev/conclave/internal/config"
)

func TestGenerateConfigYAML_FullSpec(t *testing.T) {
	spec := &ProjectSpec{
		Repo:          "/srv/repo",
		MemoryDir:     "/var/lib/conclave/memory",
		TranscriptDir: "/var/lib/conclave/transcripts",
		GatewayAddr:   "127.0.0.1:9000",
		HookCommands:  []string{"git fetch --all", "npm ci"},
	}

	result, err := GenerateConfigYAML(spec)
	require.NoError(t, err)

	assert.Contains(t, result, "repo: /srv/repo")
	assert.Contains(t, result, "dir: /var/lib/conclave/memory")
	assert.Contains(t, result, "addr: 127.0.0.1:9000")
	assert.Contains(t, result, "- command: git fetch --all")
	assert.Contains(t, result, "- command: npm ci")
}

func TestGenerateConfigYAML_NoHooksOmitsSection(t *testing.T) {
	spec := &ProjectSpec{
		Repo:          ".",
		MemoryDir:     config.DefaultMemoryDir,
		TranscriptDir: config.DefaultTranscriptDir,
		GatewayAddr:   config.DefaultGatewayAddr,
	}

	result, err := GenerateConfigYAML(spec)
	require.NoError(t, err)
	assert.NotContains(t, result, "hooks:")
}

func TestGenerateConfigYAML_RoundTripsThroughLoader(t *testing.T) {
	spec := &ProjectSpec{
		Repo:          "/srv/repo",
		MemoryDir:     "mem/",
		TranscriptDir: "tr/",
		GatewayAddr:   "localhost:7463",
		HookCommands:  []string{"make deps"},
	}

	result, err := GenerateConfigYAML(spec)
	require.NoError(t, err)

	var cfg config.Config
	require.NoError(t, yaml.Unmarshal([]byte(result), &cfg))
	assert.Equal(t, "/srv/repo", cfg.Repo)
	assert.Equal(t, "mem/", cfg.Memory.Dir)
	require.Len(t, cfg.Hooks, 1)
	assert.Equal(t, "make deps", cfg.Hooks[0].Command)
}

func TestRunInitWizard_PipedAnswers(t *testing.T) {
	input := "/srv/repo\nmem/\ntr/\nlocalhost:9000\ngit fetch --all, npm ci\n"
	out := &bytes.Buffer{}

	spec, err := RunInitWizard(strings.NewReader(input), out)
	require.NoError(t, err)

	assert.Equal(t, "/srv/repo", spec.Repo)
	assert.Equal(t, "mem/", spec.MemoryDir)
	assert.Equal(t, "tr/", spec.TranscriptDir)
	assert.Equal(t, "localhost:9000", spec.GatewayAddr)
	assert.Equal(t, []string{"git fetch --all", "npm ci"}, spec.HookCommands)
}

func TestRunInitWizard_EmptyAnswersKeepDefaults(t *testing.T) {
	input := "\n\n\n\n\n"
	out := &bytes.Buffer{}

	spec, err := RunInitWizard(strings.NewReader(input), out)
	require.NoError(t, err)

	assert.Equal(t, config.DefaultRepo, spec.Repo)
	assert.Equal(t, config.DefaultMemoryDir, spec.MemoryDir)
	assert.Equal(t, config.DefaultGatewayAddr, spec.GatewayAddr)
	assert.Nil(t, spec.HookCommands)
}

func TestRunInitWizard_InvalidGatewayAddr(t *testing.T) {
	input := "/srv/repo\nmem/\ntr/\nnot-an-address\n\n"
	out := &bytes.Buffer{}

	_, err := RunInitWizard(strings.NewReader(input), out)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid gateway address")
}

func TestRunInitWizard_UnexpectedEOF(t *testing.T) {
	input := "/srv/repo\n"
	out := &bytes.Buffer{}

	_, err := RunInitWizard(strings.NewReader(input), out)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected end of input")
}

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"empty", "", nil},
		{"single", "hello", []string{"hello"}},
		{"multiple", "a, b, c", []string{"a", "b", "c"}},
		{"with blanks", "a,, b, ,c", []string{"a", "b", "c"}},
		{"whitespace only", "  ,  ,  ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := splitAndTrim(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}
