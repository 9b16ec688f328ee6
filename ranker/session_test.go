package ranker

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	config_pol "github.com/AlexeyBeley/go_ranker/configuration_policy"
)

type fakeUploader struct {
	uploads map[string][]byte
}

func (uploader *fakeUploader) PutRanking(bucket, key string, data []byte) error {
	uploader.uploads[bucket+"/"+key] = data
	return nil
}

func names(count int) []string {
	ret := []string{}
	for i := 0; i < count; i++ {
		ret = append(ret, "item-"+strconv.Itoa(10+i))
	}
	return ret
}

func sortedCopy(src []string) []string {
	ret := append([]string{}, src...)
	sort.Strings(ret)
	return ret
}

// lexicalJudge prefers the lexically larger name.
func lexicalJudge(t *testing.T, session *Session, maxDecisions int) {
	t.Helper()
	for i := 0; i < maxDecisions; i++ {
		pending, against, done := session.Next()
		if done {
			return
		}
		require.NoError(t, session.Decide(pending.Name > against.Name))
	}
}

func startSession(t *testing.T, configuration *Configuration, itemNames ...string) *Session {
	t.Helper()
	session, err := SessionNew(ItemListFromNames(itemNames...), config_pol.WithConfiguration(configuration))
	require.NoError(t, err)
	return session
}

func TestSessionFullRun(t *testing.T) {
	t.Run("Valid run", func(t *testing.T) {
		itemNames := names(12)
		session := startSession(t, &Configuration{Seed: 42}, itemNames...)

		lexicalJudge(t, session, 1000)

		assert.True(t, session.Done())
		assert.Equal(t, 12, session.Placed())
		assert.GreaterOrEqual(t, session.Comparisons(), 11)
		ranking := session.Ranking()
		assert.True(t, ranking.Complete)
		assert.Equal(t, itemNames, ranking.Names())
		assert.NoError(t, session.Tree().Verify())

		err := session.Decide(true)
		assert.ErrorIs(t, err, ErrNothingToDecide)
	})

	t.Run("Best first", func(t *testing.T) {
		session := startSession(t, &Configuration{Seed: 42, BestFirst: true}, "a", "b", "c", "d")
		lexicalJudge(t, session, 100)
		assert.Equal(t, []string{"d", "c", "b", "a"}, session.Ranking().Names())
	})

	t.Run("Single item", func(t *testing.T) {
		session := startSession(t, &Configuration{Seed: 1}, "only")
		_, _, done := session.Next()
		assert.True(t, done)
		assert.Equal(t, []string{"only"}, session.Ranking().Names())
	})
}

func TestSessionItems(t *testing.T) {
	t.Run("Duplicate names", func(t *testing.T) {
		_, err := SessionNew(ItemListFromNames("a", "b", "a"))
		assert.ErrorIs(t, err, ErrDuplicateItem)
	})

	t.Run("Empty list", func(t *testing.T) {
		_, err := SessionNew(&ItemList{})
		assert.ErrorIs(t, err, ErrNoItems)
	})

	t.Run("Empty name", func(t *testing.T) {
		_, err := SessionNew(&ItemList{Items: []Item{{Name: "a"}, {Image: "b.png"}}})
		assert.ErrorIs(t, err, ErrEmptyName)
	})

	t.Run("Images travel with items", func(t *testing.T) {
		itemList := &ItemList{Items: []Item{{Name: "a", Image: "a.png"}, {Name: "b", Image: "b.png"}}}
		session, err := SessionNew(itemList, config_pol.WithConfiguration(&Configuration{Seed: 5}))
		require.NoError(t, err)
		lexicalJudge(t, session, 10)

		assert.Equal(t, itemList.Items, session.Ranking().Items)
	})

	t.Run("From file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "items.json")
		data, err := json.Marshal(ItemListFromNames("x", "y"))
		require.NoError(t, err)
		require.NoError(t, writeFile(path, data))

		itemList, err := ItemListFromFile(path)
		require.NoError(t, err)
		assert.Equal(t, ItemListFromNames("x", "y"), itemList)
	})
}

func TestSessionSeed(t *testing.T) {
	t.Run("Valid run", func(t *testing.T) {
		first := startSession(t, &Configuration{Seed: 9}, names(20)...)
		second := startSession(t, &Configuration{Seed: 9}, names(20)...)
		assert.Equal(t, first.order, second.order)
		assert.ElementsMatch(t, names(20), first.order)
	})
}

func TestSessionUndo(t *testing.T) {
	t.Run("Valid run", func(t *testing.T) {
		session := startSession(t, &Configuration{Seed: 3}, names(10)...)
		assert.ErrorIs(t, session.Undo(), ErrNothingToUndo)

		for {
			pending, against, done := session.Next()
			require.False(t, done, "no multi step walk happened")

			walk := session.walk
			require.NoError(t, session.Decide(pending.Name > against.Name))
			if session.walk != walk || walk.Done() {
				continue
			}

			comparisons := session.Comparisons()
			require.NoError(t, session.Undo())
			undonePending, undoneAgainst, _ := session.Next()
			assert.Equal(t, pending, undonePending)
			assert.Equal(t, against, undoneAgainst)
			assert.Equal(t, comparisons-1, session.Comparisons())
			break
		}

		lexicalJudge(t, session, 1000)
		assert.Equal(t, names(10), session.Ranking().Names())
	})
}

func TestSessionRemove(t *testing.T) {
	t.Run("Placed item after completion", func(t *testing.T) {
		session := startSession(t, &Configuration{Seed: 8}, names(8)...)
		lexicalJudge(t, session, 1000)

		require.NoError(t, session.Remove("item-13"))
		expected := names(8)
		expected = append(expected[:3:3], expected[4:]...)
		assert.Equal(t, expected, session.Ranking().Names())
		assert.Equal(t, 7, session.Total())
		assert.NoError(t, session.Tree().Verify())
	})

	t.Run("Pending item", func(t *testing.T) {
		session := startSession(t, &Configuration{Seed: 8}, names(8)...)
		pending, _, done := session.Next()
		require.False(t, done)

		require.NoError(t, session.Remove(pending.Name))
		next, _, _ := session.Next()
		assert.NotEqual(t, pending.Name, next.Name)

		lexicalJudge(t, session, 1000)
		ranked := session.Ranking().Names()
		assert.Len(t, ranked, 7)
		assert.NotContains(t, ranked, pending.Name)
		assert.Equal(t, sortedCopy(ranked), ranked)
	})

	t.Run("Placed item while a walk is open", func(t *testing.T) {
		session := startSession(t, &Configuration{Seed: 8, UseScanDelete: true}, names(8)...)
		lexicalJudge(t, session, 4)
		pending, _, done := session.Next()
		require.False(t, done)

		placed := session.Tree().GetSorted()[0]
		require.NoError(t, session.Remove(placed))
		restarted, _, _ := session.Next()
		assert.Equal(t, pending.Name, restarted.Name)
		assert.NotContains(t, session.Tree().GetSorted(), placed)

		lexicalJudge(t, session, 1000)
		assert.Len(t, session.Ranking().Names(), 7)
	})

	t.Run("Judged order hides the item from the lexical search", func(t *testing.T) {
		configuration := &Configuration{Seed: 3}
		session := startSession(t, configuration, "A", "M")
		pending, against, done := session.Next()
		require.False(t, done)
		// prefer the lexically smaller name so tree order runs against name order
		require.NoError(t, session.Decide(pending.Name < against.Name))
		require.True(t, session.Done())
		require.Equal(t, []string{"M", "A"}, session.Ranking().Names())

		// the item below the root sits on the side the lexical search never visits
		err := session.Remove(pending.Name)
		assert.ErrorIs(t, err, ErrStillRanked)
		assert.Equal(t, 2, session.Total())
		assert.Equal(t, []string{"M", "A"}, session.Ranking().Names())
		_, ok := session.Item(pending.Name)
		assert.True(t, ok)

		resumed, err := SessionResume(session.Checkpoint(), config_pol.WithConfiguration(configuration))
		require.NoError(t, err)
		assert.Equal(t, []string{"M", "A"}, resumed.Ranking().Names())
	})

	t.Run("Scan delete removes a judged item", func(t *testing.T) {
		session := startSession(t, &Configuration{Seed: 3, UseScanDelete: true}, "A", "M")
		pending, against, _ := session.Next()
		require.NoError(t, session.Decide(pending.Name < against.Name))

		require.NoError(t, session.Remove(pending.Name))
		assert.Equal(t, []string{against.Name}, session.Ranking().Names())
		assert.Equal(t, 1, session.Total())
	})

	t.Run("Unknown item", func(t *testing.T) {
		session := startSession(t, &Configuration{Seed: 8}, names(3)...)
		assert.ErrorIs(t, session.Remove("nope"), ErrUnknownItem)
	})
}

func TestSessionCheckpoint(t *testing.T) {
	t.Run("Valid run", func(t *testing.T) {
		configuration := &Configuration{Seed: 21}
		session := startSession(t, configuration, names(15)...)
		lexicalJudge(t, session, 20)
		require.False(t, session.Done())

		data, err := json.Marshal(session.Checkpoint())
		require.NoError(t, err)
		checkpoint := &SessionCheckpoint{}
		require.NoError(t, json.Unmarshal(data, checkpoint))

		resumed, err := SessionResume(checkpoint, config_pol.WithConfiguration(configuration))
		require.NoError(t, err)
		assert.Equal(t, session.Placed(), resumed.Placed())
		pending, _, _ := session.Next()
		resumedPending, _, _ := resumed.Next()
		assert.Equal(t, pending, resumedPending)

		lexicalJudge(t, resumed, 1000)
		assert.True(t, resumed.Done())
		assert.Equal(t, names(15), resumed.Ranking().Names())
	})

	t.Run("Foreign names", func(t *testing.T) {
		checkpoint := &SessionCheckpoint{
			Items:  ItemListFromNames("a", "b").Items,
			Order:  []string{"a", "b"},
			Next:   1,
			Ranked: []string{"z"},
		}
		_, err := SessionResume(checkpoint)
		assert.ErrorIs(t, err, ErrUnknownItem)
	})
}

func TestExport(t *testing.T) {
	t.Run("File", func(t *testing.T) {
		session := startSession(t, &Configuration{Seed: 2}, "a", "b", "c")
		lexicalJudge(t, session, 100)

		path := filepath.Join(t.TempDir(), "ranking.json")
		require.NoError(t, session.ExportToFile(path))
		ranking, err := RankingFromFile(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c"}, ranking.Names())
		assert.True(t, ranking.Complete)
		assert.NotEmpty(t, ranking.RankedAt)
	})

	t.Run("Template", func(t *testing.T) {
		ranking := Ranking{Items: ItemListFromNames("a", "b").Items, RankedAt: "2026-01-06T10:20:30Z"}
		received, err := ranking.ExpandTemplate("rankings/STRING_REPLACEMENT_DATE-STRING_REPLACEMENT_COUNT.json")
		require.NoError(t, err)
		assert.Equal(t, "rankings/2026-01-06-2.json", received)

		_, err = ranking.ExpandTemplate("STRING_REPLACEMENT_USER.json")
		assert.Error(t, err)
	})

	t.Run("S3", func(t *testing.T) {
		session := startSession(t, &Configuration{Seed: 2, BestFirst: true}, "a", "b", "c")
		lexicalJudge(t, session, 100)

		uploader := &fakeUploader{uploads: map[string][]byte{}}
		require.NoError(t, session.ExportToS3(uploader, "rankings", "letters.json"))
		ranking, err := RankingFromJSON(uploader.uploads["rankings/letters.json"])
		require.NoError(t, err)
		assert.Equal(t, []string{"c", "b", "a"}, ranking.Names())
		assert.True(t, ranking.BestFirst)
	})
}

func writeFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0644)
}
