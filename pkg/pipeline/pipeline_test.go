package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/ganttline/pkg/errors"
)

const planYAML = `
project:
  name: Release train
phases:
  - wbs: "1"
    name: Prep
    items:
      - wbs: "1.1"
        name: Spec
        duration_days: 4
        start_date: "2024-02-01"
      - wbs: "1.2"
        name: Build
        duration_days: 10
        depends_on: ["1.1"]
      - wbs: "1.M"
        name: Ship
        deadline_date: "2024-03-01"
`

func writePlan(t *testing.T, doc string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	return path
}

func TestExecute_SVG(t *testing.T) {
	runner := NewRunner(nil)
	result, err := runner.Execute(context.Background(), Options{
		Input: writePlan(t, planYAML),
	})
	require.NoError(t, err)

	assert.Equal(t, "Release train", result.Plan.Name)
	assert.Equal(t, 2, result.Stats.WorkPackages)
	assert.Equal(t, 1, result.Stats.Milestones)
	assert.Equal(t, 4, result.Stats.Rows) // heading + 2 bars + lozenge
	assert.Contains(t, string(result.Artifact), "<svg")

	// The dependent package was scheduled back-to-back.
	wps := result.Plan.WorkPackages()
	require.NotNil(t, wps[1].Start)
	assert.Equal(t, "2024-02-04", wps[1].Start.Format("2006-01-02"))
}

func TestExecute_JSON(t *testing.T) {
	runner := NewRunner(nil)
	result, err := runner.Execute(context.Background(), Options{
		Input:  writePlan(t, planYAML),
		Format: FormatJSON,
	})
	require.NoError(t, err)

	out := string(result.Artifact)
	assert.True(t, strings.HasPrefix(strings.TrimSpace(out), "["))
	assert.Contains(t, out, `"id": "1.2"`)
	assert.Contains(t, out, `"start": "2024-02-04"`)
}

func TestExecute_SchedulingFault(t *testing.T) {
	doc := strings.Replace(planYAML, `depends_on: ["1.1"]`, `depends_on: ["1.2"]`, 1)
	runner := NewRunner(nil)
	_, err := runner.Execute(context.Background(), Options{Input: writePlan(t, doc)})

	require.Error(t, err)
	assert.True(t, errors.IsPlanError(err))
	assert.Contains(t, err.Error(), "cycle")
}

func TestExecute_MissingInput(t *testing.T) {
	runner := NewRunner(nil)
	_, err := runner.Execute(context.Background(), Options{
		Input: filepath.Join(t.TempDir(), "absent.yaml"),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeFileNotFound))
}

func TestExecute_NoInput(t *testing.T) {
	runner := NewRunner(nil)
	_, err := runner.Execute(context.Background(), Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeValidation))
}

func TestExecute_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := NewRunner(nil)
	_, err := runner.Execute(ctx, Options{Input: writePlan(t, planYAML)})
	require.Error(t, err)
	assert.False(t, errors.IsPlanError(err), "cancellation must not look like a plan fault")
}

func TestValidateFormat(t *testing.T) {
	for _, format := range []string{FormatSVG, FormatPNG, FormatJSON} {
		assert.NoError(t, ValidateFormat(format))
	}
	err := ValidateFormat("pdf")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeValidation))
}
