package wizard

import (
	"bufio"
	"fmt"
	"io"
	"net"
	"os"
	"strings"
	"text/template"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/conclave-dev/conclave/internal/config"
)

// ProjectSpec holds all fields collected during the interactive setup
// wizard for a new .conclave.yaml.
type ProjectSpec struct {
	Repo          string
	MemoryDir     string
	TranscriptDir string
	GatewayAddr   string
	HookCommands  []string
}

const configTemplate = `# conclave project configuration
repo: {{ .Repo }}

memory:
  dir: {{ .MemoryDir }}

transcripts:
  dir: {{ .TranscriptDir }}

gateway:
  addr: {{ .GatewayAddr }}
{{- if .HookCommands }}

hooks:
{{- range .HookCommands }}
  - command: {{ . }}
{{- end }}
{{- end }}
`

// RunInitWizard collects project settings interactively. On a TTY it
// presents a huh form; on piped input it falls back to plain line
// prompts so the same flow works in scripts and tests.
func RunInitWizard(in io.Reader, out io.Writer) (*ProjectSpec, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return runForm(in, out)
	}
	return runPrompts(in, out)
}

func runForm(in io.Reader, out io.Writer) (*ProjectSpec, error) {
	var (
		repo          = config.DefaultRepo
		memoryDir     = config.DefaultMemoryDir
		transcriptDir = config.DefaultTranscriptDir
		gatewayAddr   = config.DefaultGatewayAddr
		hooksRaw      string
	)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Repository path").
				Description("The working tree conclave operates on").
				Value(&repo).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("repository path is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Memory directory").
				Description("Where MEMORY.md, daily logs, and memory.db live").
				Value(&memoryDir),
			huh.NewInput().
				Title("Transcript directory").
				Description("Where session transcripts are written").
				Value(&transcriptDir),
			huh.NewInput().
				Title("Gateway address").
				Description("host:port for conclave serve").
				Value(&gatewayAddr).
				Validate(validateAddr),
			huh.NewInput().
				Title("Preflight hooks").
				Description("Comma-separated shell commands run before each session").
				Placeholder("git fetch --all, npm ci").
				Value(&hooksRaw),
		),
	).
		WithInput(in).
		WithOutput(out)

	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("wizard failed: %w", err)
	}

	return newSpec(repo, memoryDir, transcriptDir, gatewayAddr, hooksRaw)
}

// runPrompts is the non-TTY path: one line per answer, empty lines keep
// the defaults shown in the prompt.
func runPrompts(in io.Reader, out io.Writer) (*ProjectSpec, error) {
	scanner := bufio.NewScanner(in)
	ask := func(prompt, def string) (string, error) {
		fmt.Fprintf(out, "%s [%s]: ", prompt, def)
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return "", err
			}
			return "", fmt.Errorf("unexpected end of input")
		}
		answer := strings.TrimSpace(scanner.Text())
		if answer == "" {
			return def, nil
		}
		return answer, nil
	}

	repo, err := ask("Repository path", config.DefaultRepo)
	if err != nil {
		return nil, err
	}
	memoryDir, err := ask("Memory directory", config.DefaultMemoryDir)
	if err != nil {
		return nil, err
	}
	transcriptDir, err := ask("Transcript directory", config.DefaultTranscriptDir)
	if err != nil {
		return nil, err
	}
	gatewayAddr, err := ask("Gateway address", config.DefaultGatewayAddr)
	if err != nil {
		return nil, err
	}
	if err := validateAddr(gatewayAddr); err != nil {
		return nil, err
	}
	hooksRaw, err := ask("Preflight hooks (comma-separated)", "")
	if err != nil {
		return nil, err
	}

	return newSpec(repo, memoryDir, transcriptDir, gatewayAddr, hooksRaw)
}

func newSpec(repo, memoryDir, transcriptDir, gatewayAddr, hooksRaw string) (*ProjectSpec, error) {
	return &ProjectSpec{
		Repo:          strings.TrimSpace(repo),
		MemoryDir:     strings.TrimSpace(memoryDir),
		TranscriptDir: strings.TrimSpace(transcriptDir),
		GatewayAddr:   strings.TrimSpace(gatewayAddr),
		HookCommands:  splitAndTrim(hooksRaw),
	}, nil
}

func validateAddr(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("gateway address is required")
	}
	if _, _, err := net.SplitHostPort(strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("invalid gateway address: %v", err)
	}
	return nil
}

// GenerateConfigYAML renders a .conclave.yaml from the given spec.
func GenerateConfigYAML(spec *ProjectSpec) (string, error) {
	tmpl, err := template.New("conclaveyaml").Parse(configTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf strings.Builder
	if err := tmpl.Execute(&buf, spec); err != nil {
		return "", fmt.Errorf("failed to render template: %w", err)
	}
	return buf.String(), nil
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	var result []string
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
