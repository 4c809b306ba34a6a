package i18n

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestI18nLoading(t *testing.T) {
	// internal/pkg/i18n -> ../../../locales
	localePath := filepath.Join("..", "..", "..", "locales")

	err := LoadTranslations(localePath)
	require.NoError(t, err, "Should load translations without error")

	assert.Equal(t, "Pengumuman", Translate("id", "ANNOUNCEMENT"))
	assert.Equal(t, "Pengguna Terhapus", Translate("ID", "Deleted User"))
	assert.Equal(t, "Announcement", Translate("en", "ANNOUNCEMENT"))

	// COMPLETED is missing from id and falls back to en
	assert.Equal(t, "Completed", Translate("id", "COMPLETED"))
	assert.Equal(t, "Logged in", Translate("fr", "LOGIN"))

	assert.Equal(t, "NON_EXISTENT_KEY", Translate("id", "NON_EXISTENT_KEY"))
}

func TestLoadTranslationsMissingDir(t *testing.T) {
	assert.Error(t, LoadTranslations(filepath.Join(t.TempDir(), "nope")))
}
