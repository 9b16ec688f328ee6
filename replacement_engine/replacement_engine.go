package replacement_engine

import (
	"fmt"
	"sort"
	"strings"
)

const string_replacement_prefix = "STRING_REPLACEMENT"

func ReplaceInString(src string, replacementValues map[string]string) (string, error) {
	if err := validateValues(replacementValues); err != nil {
		return "", err
	}

	// longest keys first so STRING_REPLACEMENT_1 never eats STRING_REPLACEMENT_10
	keys := make([]string, 0, len(replacementValues))
	for key := range replacementValues {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return len(keys[i]) > len(keys[j]) })

	ret := src
	for _, key := range keys {
		ret = strings.ReplaceAll(ret, key, replacementValues[key])
	}

	str_replacement_index := strings.Index(ret, string_replacement_prefix)

	if str_replacement_index > -1 {

		return "", fmt.Errorf("not all place holders replaced. Starting from %d:  %s", str_replacement_index, ret[str_replacement_index:])
	}
	return ret, nil

}

func validateValues(src map[string]string) error {
	ret := []string{}
	for key := range src {
		if !strings.HasPrefix(key, string_replacement_prefix) {
			ret = append(ret, fmt.Sprintf("Key '%s' has no prefix %s ", key, string_replacement_prefix))
		}

	}
	if len(ret) > 0 {
		sort.Strings(ret)
		return fmt.Errorf("input errors: %s", strings.Join(ret, "\n"))
	}
	return nil
}
