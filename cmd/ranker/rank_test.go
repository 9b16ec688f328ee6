package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlexeyBeley/go_ranker/json_api"
	config_pol "github.com/AlexeyBeley/go_ranker/configuration_policy"
	"github.com/AlexeyBeley/go_ranker/ranker"
	"github.com/AlexeyBeley/go_ranker/tree"
)

func TestAskAll(t *testing.T) {
	t.Run("Valid run", func(t *testing.T) {
		configuration := &Configuration{Ranker: ranker.Configuration{Seed: 4}}
		itemsPath := filepath.Join(t.TempDir(), "items.json")
		require.NoError(t, json_api.WriteToFile(ranker.ItemListFromNames("a", "b", "c", "d"), &itemsPath))

		session, err := openSession(itemsPath, "", configuration)
		require.NoError(t, err)

		out := &bytes.Buffer{}
		answers := strings.NewReader(strings.Repeat("1\n", 20))
		require.NoError(t, askAll(session, answers, out, ""))
		assert.True(t, session.Done())
		assert.ElementsMatch(t, []string{"a", "b", "c", "d"}, session.Ranking().Names())
	})

	t.Run("Save and resume", func(t *testing.T) {
		configuration := &Configuration{Ranker: ranker.Configuration{Seed: 4}}
		dir := t.TempDir()
		itemsPath := filepath.Join(dir, "items.json")
		checkpointPath := filepath.Join(dir, "checkpoint.json")
		require.NoError(t, json_api.WriteToFile(ranker.ItemListFromNames("a", "b", "c", "d", "e"), &itemsPath))

		session, err := openSession(itemsPath, checkpointPath, configuration)
		require.NoError(t, err)
		err = askAll(session, strings.NewReader("2\nx\ns\n"), &bytes.Buffer{}, checkpointPath)
		assert.ErrorIs(t, err, errStopped)

		resumed, err := openSession(itemsPath, checkpointPath, configuration)
		require.NoError(t, err)
		assert.Equal(t, session.Placed(), resumed.Placed())
		assert.Equal(t, 1, resumed.Comparisons())

		require.NoError(t, askAll(resumed, strings.NewReader(strings.Repeat("2\n", 20)), &bytes.Buffer{}, ""))
		assert.Len(t, resumed.Ranking().Names(), 5)
	})

	t.Run("Input ends early", func(t *testing.T) {
		configuration := &Configuration{Ranker: ranker.Configuration{Seed: 4}}
		itemsPath := filepath.Join(t.TempDir(), "items.json")
		require.NoError(t, json_api.WriteToFile(ranker.ItemListFromNames("a", "b", "c"), &itemsPath))

		session, err := openSession(itemsPath, "", configuration)
		require.NoError(t, err)
		err = askAll(session, strings.NewReader("q\n"), &bytes.Buffer{}, "")
		assert.ErrorIs(t, err, errStopped)
		assert.False(t, session.Done())
	})
}

func TestApplyLogLevel(t *testing.T) {
	t.Run("Flag fills an empty tree level", func(t *testing.T) {
		configuration := &Configuration{}
		configuration.applyLogLevel("debug")
		assert.Equal(t, "debug", configuration.Ranker.Tree.LogLevel)

		session, err := ranker.SessionNew(ranker.ItemListFromNames("a", "b"), config_pol.WithConfiguration(&configuration.Ranker))
		require.NoError(t, err)
		assert.Equal(t, "debug", session.Configuration.Tree.LogLevel)
	})

	t.Run("File level wins", func(t *testing.T) {
		configuration := &Configuration{Ranker: ranker.Configuration{Tree: tree.Configuration{LogLevel: "error"}}}
		configuration.applyLogLevel("debug")
		assert.Equal(t, "error", configuration.Ranker.Tree.LogLevel)
	})
}
