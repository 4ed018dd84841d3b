package pipeline

import (
	"path/filepath"
	"testing"

	"github.com/mvaldelvira/corredor/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumnPrefs_HideDownToFloor(t *testing.T) {
	p := NewColumnPrefs()
	require.Len(t, p.Visible(), len(domain.Stages))

	// Hiding columns one at a time succeeds until one remains.
	for i := 0; i < len(domain.Stages)-1; i++ {
		require.NoError(t, p.Hide(domain.Stages[i]))
	}
	require.Len(t, p.Visible(), 1)

	// Hiding the last visible column is rejected and changes nothing.
	last := p.Visible()[0]
	err := p.Hide(last)
	assert.ErrorIs(t, err, ErrLastColumn)
	assert.Equal(t, []domain.Stage{last}, p.Visible())
}

func TestColumnPrefs_ShowRestores(t *testing.T) {
	p := NewColumnPrefs()
	require.NoError(t, p.Hide(domain.StageArchived))
	assert.False(t, p.IsVisible(domain.StageArchived))

	p.Show(domain.StageArchived)
	assert.True(t, p.IsVisible(domain.StageArchived))
}

func TestColumnPrefs_HideUnknownStage(t *testing.T) {
	p := NewColumnPrefs()
	assert.Error(t, p.Hide(domain.Stage("limbo")))
}

func TestColumnPrefs_HideAlreadyHiddenIsIdempotent(t *testing.T) {
	p := NewColumnPrefs()
	require.NoError(t, p.Hide(domain.StageInactive))
	require.NoError(t, p.Hide(domain.StageInactive))
	assert.Len(t, p.Visible(), len(domain.Stages)-1)
}

func TestColumnPrefs_SaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs", "board.yaml")

	p := NewColumnPrefs()
	require.NoError(t, p.Hide(domain.StageArchived))
	require.NoError(t, p.Hide(domain.StageInactive))
	require.NoError(t, p.Save(path))

	loaded, err := LoadColumnPrefs(path)
	require.NoError(t, err)
	assert.False(t, loaded.IsVisible(domain.StageArchived))
	assert.False(t, loaded.IsVisible(domain.StageInactive))
	assert.True(t, loaded.IsVisible(domain.StageActive))
}

func TestLoadColumnPrefs_MissingFile(t *testing.T) {
	loaded, err := LoadColumnPrefs(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Len(t, loaded.Visible(), len(domain.Stages))
}
