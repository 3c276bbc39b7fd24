package runner

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sadewadee/vquest/internal/options"
	"github.com/sadewadee/vquest/internal/vquest"
)

func parse(t *testing.T, args ...string) (*Config, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cfg, err := ParseConfig(args, &stdout, &stderr)

	return cfg, stdout.String(), err
}

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestParseConfigNothingToDo(t *testing.T) {
	cfg, stdout, err := parse(t)

	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, ErrNothingToDo)
	assert.Equal(t, ExitFailure, ExitCode(err))
	assert.Contains(t, stdout, "Usage: vquest [flags] [config.yml ...]")
	assert.Contains(t, stdout, `V-QUEST options: "Main" section`)
	assert.Contains(t, stdout, "-species")
}

func TestParseConfigOnlyGeneralFlags(t *testing.T) {
	_, _, err := parse(t, "-v", "-outdir", "results")
	assert.ErrorIs(t, err, ErrNothingToDo)
}

func TestParseConfigVersion(t *testing.T) {
	cfg, _, err := parse(t, "-version")
	require.NoError(t, err)
	assert.True(t, cfg.ShowVersion)
}

func TestParseConfigHelp(t *testing.T) {
	_, stdout, err := parse(t, "-h")
	assert.Equal(t, ExitOK, ExitCode(err))
	assert.Contains(t, stdout, "Usage:")
}

func TestParseConfigFlags(t *testing.T) {
	cfg, _, err := parse(t,
		"-species", "rhesus-monkey",
		"-receptorOrLocusType", "IG",
		"-sequences", ">a\nACGT\n",
		"-xv_outputtype", "3",
		"-V_REGIONsearchIndel=false",
		"-nbD_GENE", "2",
	)
	require.NoError(t, err)

	assert.Equal(t, RunModeFile, cfg.RunMode)
	assert.True(t, cfg.Collapse)
	assert.Equal(t, ".", cfg.OutDir)
	assert.Equal(t, vquest.DefaultURL, cfg.URL)

	assert.Equal(t, map[string]any{
		"species":             "rhesus-monkey",
		"receptorOrLocusType": "IG",
		"sequences":           ">a\nACGT\n",
		"xv_outputtype":       3,
		"V_REGIONsearchIndel": false,
		"nbD_GENE":            2,
	}, cfg.VQuestArgs)

	// defaults fill in what was not given
	assert.Equal(t, "excel", cfg.Options["resultType"])
	assert.Equal(t, false, cfg.Options["V_REGIONsearchIndel"])
	assert.Equal(t, 2, cfg.Options["nbD_GENE"])

	vcfg, err := cfg.VQuestConfig()
	require.NoError(t, err)
	require.NoError(t, vcfg.ValidateRequired())
	require.NoError(t, vcfg.ValidateResultFormat())
}

func TestParseConfigInvalidOptionValue(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "Bad choice", args: []string{"-species", "unicorn"}},
		{name: "Bad int", args: []string{"-nbD_GENE", "two"}},
		{name: "Bad bool", args: []string{"-V_REGIONsearchIndel=maybe"}},
		{name: "Unknown flag", args: []string{"-nope"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := parse(t, tt.args...)
			require.Error(t, err)
			assert.Equal(t, ExitUsage, ExitCode(err))
		})
	}
}

func TestParseConfigLayering(t *testing.T) {
	first := writeConfig(t, "first.yml", "species: human\nreceptorOrLocusType: TR\nresultType: detailed\n")
	second := writeConfig(t, "second.yml", "species: mouse\n")
	empty := writeConfig(t, "empty.yml", "")

	cfg, _, err := parse(t, first, "-resultType", "excel", second, empty, "-v")
	require.NoError(t, err)

	assert.Equal(t, []string{first, second, empty}, cfg.ConfigFiles)
	assert.Equal(t, 1, cfg.Verbose)
	assert.Equal(t, "mouse", cfg.Options["species"])
	assert.Equal(t, "TR", cfg.Options["receptorOrLocusType"])
	assert.Equal(t, "excel", cfg.Options["resultType"])
	assert.Equal(t, 3, cfg.Options["xv_outputtype"])
}

func TestParseConfigBadConfigFile(t *testing.T) {
	_, _, err := parse(t, filepath.Join(t.TempDir(), "missing.yml"))
	assert.ErrorIs(t, err, options.ErrInvalidConfig)
	assert.Equal(t, ExitUsage, ExitCode(err))

	_, _, err = parse(t, writeConfig(t, "list.yml", "- species\n"))
	assert.ErrorIs(t, err, options.ErrInvalidConfig)
}

func TestParseConfigVerbosity(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected int
	}{
		{name: "None", args: nil, expected: 0},
		{name: "One", args: []string{"-v"}, expected: 1},
		{name: "Repeated", args: []string{"-v", "-v"}, expected: 2},
		{name: "Double", args: []string{"-vv"}, expected: 2},
		{name: "Mixed", args: []string{"-vv", "-v"}, expected: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, _, err := parse(t, append(tt.args, "-species", "human")...)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, cfg.Verbose)
		})
	}
}

func TestParseConfigCollapse(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected bool
	}{
		{name: "Default", args: nil, expected: true},
		{name: "No collapse", args: []string{"-no-collapse"}, expected: false},
		{name: "Collapse wins when last", args: []string{"-no-collapse", "-collapse"}, expected: true},
		{name: "No collapse wins when last", args: []string{"-collapse", "-no-collapse"}, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, _, err := parse(t, append(tt.args, "-species", "human")...)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, cfg.Collapse)
		})
	}
}

func TestParseConfigRunModes(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected int
	}{
		{name: "File", args: []string{"-species", "human"}, expected: RunModeFile},
		{name: "Align", args: []string{"-species", "human", "-align"}, expected: RunModeAlign},
		{name: "S3", args: []string{"-species", "human", "-s3-bucket", "results", "-aws-region", "eu-west-1"}, expected: RunModeS3},
		{name: "Lambda without options", args: []string{"-aws-lambda"}, expected: RunModeAwsLambda},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, _, err := parse(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, cfg.RunMode)

			if tt.expected == RunModeS3 {
				assert.NotNil(t, cfg.S3Uploader)
			}
		})
	}
}

func TestParseConfigConflicts(t *testing.T) {
	_, _, err := parse(t, "-species", "human", "-align", "-s3-bucket", "results")
	assert.ErrorIs(t, err, ErrUsage)

	_, _, err = parse(t, "-species", "human", "-xlsx", "-no-collapse")
	assert.ErrorIs(t, err, ErrUsage)
}

func TestParseConfigAwsEnvFallback(t *testing.T) {
	t.Setenv("MY_AWS_ACCESS_KEY", "env-key")
	t.Setenv("MY_AWS_SECRET_KEY", "env-secret")
	t.Setenv("MY_AWS_REGION", "eu-central-1")

	cfg, _, err := parse(t, "-species", "human", "-aws-region", "us-east-1")
	require.NoError(t, err)

	assert.Equal(t, "env-key", cfg.AwsAccessKey)
	assert.Equal(t, "env-secret", cfg.AwsSecretKey)
	assert.Equal(t, "us-east-1", cfg.AwsRegion)
}

func TestNewClientInvalidProxy(t *testing.T) {
	cfg := &Config{ProxyURL: "://bad"}

	_, err := cfg.NewClient()
	assert.ErrorIs(t, err, ErrUsage)
}

func TestBanner(t *testing.T) {
	var buf bytes.Buffer
	Banner(&buf, 40)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.GreaterOrEqual(t, len(lines), 3)

	assert.True(t, strings.HasPrefix(lines[0], "╔"))
	assert.True(t, strings.HasPrefix(lines[len(lines)-1], "╚"))

	assert.Equal(t, 40, utf8.RuneCountInString(lines[0]))
	assert.Equal(t, 40, utf8.RuneCountInString(lines[len(lines)-1]))

	assert.Contains(t, buf.String(), "v"+Version)
}

func TestWrapText(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		width    int
		expected []string
	}{
		{name: "Fits", text: "abc", width: 5, expected: []string{"abc"}},
		{name: "Wraps", text: "abcdefg", width: 3, expected: []string{"abc", "def", "g"}},
		{name: "Empty", text: "", width: 3, expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, wrapText(tt.text, tt.width))
		})
	}
}

func TestVersionString(t *testing.T) {
	assert.Contains(t, VersionString(), Version)
	assert.Equal(t, "vquest/"+Version, UserAgent())
}
