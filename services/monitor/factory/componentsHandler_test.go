package factory

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/andipradana/domain-monitor/services/monitor/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewComponentsHandler(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "monitor.db")
	handler, err := NewComponentsHandler(
		dbPath,
		map[string]string{"slot603": "SLOT603-KEY"},
		"admin",
		"password",
		config.Config{
			ListenAddress:         "127.0.0.1:0",
			RetentionSeconds:      3600,
			CheckTimeoutInSeconds: 5,
		})

	require.NoError(t, err)
	require.NotNil(t, handler)

	handler.Close()
}

func TestComponentsHandlerMethods(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "monitor.db")
	handler, err := NewComponentsHandler(
		dbPath,
		map[string]string{"slot603": "SLOT603-KEY"},
		"admin",
		"password",
		config.Config{
			ListenAddress:         "127.0.0.1:0",
			RetentionSeconds:      3600,
			CheckTimeoutInSeconds: 5,
		})
	require.NoError(t, err)

	handler.Start()

	store := handler.GetStore()
	assert.Equal(t, "*storage.sqliteStorage", fmt.Sprintf("%T", store))

	domainChecker := handler.GetChecker()
	assert.Equal(t, "*checker.httpChecker", fmt.Sprintf("%T", domainChecker))

	server := handler.GetServer()
	assert.Equal(t, "*api.server", fmt.Sprintf("%T", server))
	assert.NotEmpty(t, server.Address())

	handler.Close()
}
