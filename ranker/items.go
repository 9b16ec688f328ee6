package ranker

import (
	"errors"
	"fmt"

	"github.com/AlexeyBeley/go_ranker/json_api"
)

var (
	ErrNoItems       = errors.New("item list is empty")
	ErrEmptyName     = errors.New("item without a name")
	ErrDuplicateItem = errors.New("duplicate item name")
)

// Item is one candidate. Image is an opaque reference kept for the caller.
type Item struct {
	Name  string `json:"Name"`
	Image string `json:"Image,omitempty"`
}

type ItemList struct {
	Items []Item `json:"Items"`
}

func (itemList *ItemList) Validate() error {
	if len(itemList.Items) == 0 {
		return ErrNoItems
	}
	seen := map[string]bool{}
	for i, item := range itemList.Items {
		if item.Name == "" {
			return fmt.Errorf("%w at position %d", ErrEmptyName, i)
		}
		if seen[item.Name] {
			return fmt.Errorf("%w: %s", ErrDuplicateItem, item.Name)
		}
		seen[item.Name] = true
	}
	return nil
}

func ItemListFromFile(path string) (*ItemList, error) {
	itemList := &ItemList{}
	if err := json_api.ReadFromFile(&path, itemList); err != nil {
		return nil, err
	}
	if err := itemList.Validate(); err != nil {
		return nil, err
	}
	return itemList, nil
}

func ItemListFromNames(names ...string) *ItemList {
	itemList := &ItemList{}
	for _, name := range names {
		itemList.Items = append(itemList.Items, Item{Name: name})
	}
	return itemList
}
