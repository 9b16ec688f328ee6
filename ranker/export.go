package ranker

import (
	"encoding/json"
	"slices"
	"strconv"
	"time"

	"github.com/AlexeyBeley/go_ranker/common_utils"
	"github.com/AlexeyBeley/go_ranker/json_api"
	"github.com/AlexeyBeley/go_ranker/replacement_engine"
)

// Ranking is the only persisted artifact of a session.
type Ranking struct {
	Items     []Item `json:"Items"`
	BestFirst bool   `json:"BestFirst"`
	Complete  bool   `json:"Complete"`
	RankedAt  string `json:"RankedAt"`
}

// RankingUploader is satisfied by aws_api.S3API.
type RankingUploader interface {
	PutRanking(bucket, key string, data []byte) error
}

func (session *Session) Ranking() Ranking {
	names := session.tree.GetSorted()
	if session.Configuration.BestFirst {
		slices.Reverse(names)
	}

	ranking := Ranking{
		Items:     make([]Item, 0, len(names)),
		BestFirst: session.Configuration.BestFirst,
		Complete:  session.Done(),
		RankedAt:  common_utils.DateToString(time.Now()),
	}
	for _, name := range names {
		item, ok := session.items[name]
		if !ok {
			item = Item{Name: name}
		}
		ranking.Items = append(ranking.Items, item)
	}
	return ranking
}

// Names returns just the item names in ranking order.
func (ranking Ranking) Names() []string {
	names := make([]string, 0, len(ranking.Items))
	for _, item := range ranking.Items {
		names = append(names, item.Name)
	}
	return names
}

// ExpandTemplate fills STRING_REPLACEMENT_DATE (YYYY-MM-DD of RankedAt) and
// STRING_REPLACEMENT_COUNT in a file path or object key.
func (ranking Ranking) ExpandTemplate(template string) (string, error) {
	date := ranking.RankedAt
	if rankedAt, err := common_utils.StringToDate(ranking.RankedAt); err == nil {
		date = rankedAt.Format(time.DateOnly)
	}
	return replacement_engine.ReplaceInString(template, map[string]string{
		"STRING_REPLACEMENT_DATE":  date,
		"STRING_REPLACEMENT_COUNT": strconv.Itoa(len(ranking.Items)),
	})
}

func (session *Session) ExportToFile(path string) error {
	return json_api.WriteToFile(session.Ranking(), &path)
}

func (session *Session) ExportToS3(uploader RankingUploader, bucket, key string) error {
	data, err := json.MarshalIndent(session.Ranking(), "", "  ")
	if err != nil {
		return err
	}
	return uploader.PutRanking(bucket, key, data)
}

func RankingFromFile(path string) (*Ranking, error) {
	ranking := &Ranking{}
	if err := json_api.ReadFromFile(&path, ranking); err != nil {
		return nil, err
	}
	return ranking, nil
}

func RankingFromJSON(data []byte) (*Ranking, error) {
	ranking := &Ranking{}
	if err := json.Unmarshal(data, ranking); err != nil {
		return nil, err
	}
	return ranking, nil
}
