package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trebuchet-org/fundops/internal/domain/config"
	"github.com/trebuchet-org/fundops/internal/usecase"
)

// memFileWriter records written files
type memFileWriter struct {
	files map[string]string
	dirs  []string
}

func (w *memFileWriter) WriteFile(_ context.Context, path, content string) error {
	w.files[path] = content
	return nil
}

func (w *memFileWriter) FileExists(_ context.Context, path string) (bool, error) {
	_, ok := w.files[path]
	return ok, nil
}

func (w *memFileWriter) EnsureDirectory(_ context.Context, path string) error {
	w.dirs = append(w.dirs, path)
	return nil
}

func TestInitProject(t *testing.T) {
	ctx := context.Background()
	cfg := &config.RuntimeConfig{ProjectRoot: "/project"}

	t.Run("fresh project", func(t *testing.T) {
		writer := &memFileWriter{files: map[string]string{}}
		sink := &MockProgressSink{}

		res, err := usecase.NewInitProject(cfg, writer, sink).Execute(ctx)
		require.NoError(t, err)
		assert.True(t, res.Created())
		assert.Equal(t, []string{"/project/deployments"}, writer.dirs)
		assert.Contains(t, writer.files["/project/fundops.toml"], "[finalize]")
		assert.Contains(t, writer.files["/project/mocks.yaml"], "tokens:")
		assert.Contains(t, writer.files["/project/.env.example"], "DEPLOYER_PRIVATE_KEY=")
		assert.Len(t, sink.infos, 3)
	})

	t.Run("existing files are kept", func(t *testing.T) {
		writer := &memFileWriter{files: map[string]string{
			"/project/fundops.toml": "custom",
			"/project/mocks.yaml":   "custom",
			"/project/.env.example": "custom",
		}}

		res, err := usecase.NewInitProject(cfg, writer, usecase.NopProgress{}).Execute(ctx)
		require.NoError(t, err)
		assert.False(t, res.Created())
		assert.Equal(t, "custom", writer.files["/project/fundops.toml"])
	})
}
