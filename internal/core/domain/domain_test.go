package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/spin/internal/core/domain"
)

func TestBuildResult_Outcome(t *testing.T) {
	tests := []struct {
		name   string
		result *domain.BuildResult
		want   domain.Outcome
	}{
		{
			name:   "zero exit with empty stderr is success",
			result: &domain.BuildResult{ExitStatus: domain.ExitSuccess, Stdout: "Build artifacts written"},
			want:   domain.OutcomeSuccess,
		},
		{
			name:   "zero exit with stderr is warning",
			result: &domain.BuildResult{ExitStatus: domain.ExitSuccess, Stdout: "done", Stderr: "deprecation notice"},
			want:   domain.OutcomeWarning,
		},
		{
			name:   "non-zero exit is failure regardless of streams",
			result: &domain.BuildResult{ExitStatus: domain.ExitFailure, ExitCode: 2, Stdout: "partial"},
			want:   domain.OutcomeFailure,
		},
		{
			name:   "nil result is failure",
			result: nil,
			want:   domain.OutcomeFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.result.Outcome())
		})
	}
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "success", domain.OutcomeSuccess.String())
	assert.Equal(t, "warning", domain.OutcomeWarning.String())
	assert.Equal(t, "failure", domain.OutcomeFailure.String())
	assert.Equal(t, "success", domain.ExitSuccess.String())
	assert.Equal(t, "failure", domain.ExitFailure.String())
}

func TestCommand_Argv(t *testing.T) {
	t.Run("default shell", func(t *testing.T) {
		cmd := domain.NewCommand("npm run build")
		assert.Equal(t, []string{"sh", "-c", "npm run build"}, cmd.Argv())
	})

	t.Run("custom shell", func(t *testing.T) {
		cmd := domain.Command{Line: "make", Shell: []string{"bash", "-lc"}}
		assert.Equal(t, []string{"bash", "-lc", "make"}, cmd.Argv())
	})

	t.Run("missing shell falls back to default", func(t *testing.T) {
		cmd := domain.Command{Line: "make"}
		assert.Equal(t, []string{"sh", "-c", "make"}, cmd.Argv())
	})
}

func TestCommand_IsEmpty(t *testing.T) {
	assert.True(t, domain.Command{}.IsEmpty())
	assert.True(t, domain.Command{Line: "   "}.IsEmpty())
	assert.False(t, domain.NewCommand("make").IsEmpty())
}

func TestCommand_OutputLimit(t *testing.T) {
	assert.Equal(t, domain.DefaultMaxOutput, domain.Command{}.OutputLimit())
	assert.Equal(t, 64, domain.Command{MaxOutput: 64}.OutputLimit())
}

func TestDefaultConfig(t *testing.T) {
	cfg := domain.DefaultConfig()
	assert.Empty(t, cfg.Path)
	assert.Equal(t, domain.DefaultCommandLine, cfg.Command.Line)
	assert.Equal(t, domain.DefaultDebounce, cfg.Watch.Debounce)
}
