package json_api

import (
	"encoding/json"
	"fmt"
	"os"

	hLogger "github.com/AlexeyBeley/go_ranker/logger"
)

var lg = hLogger.Logger{}

func WriteToFile(Data any, DstFilePath *string) error {
	jsonData, err := json.MarshalIndent(Data, "", "  ")
	if err != nil {
		return err
	}

	err = os.WriteFile(*DstFilePath, jsonData, 0644)
	if err != nil {
		return err
	}
	lg.Infof("Wrote JSON to file: '%s'", *DstFilePath)
	return nil

}

func ReadFromFile(SrcFilePath *string, Data any) error {
	jsonData, err := os.ReadFile(*SrcFilePath)
	if err != nil {
		return err
	}

	if err = json.Unmarshal(jsonData, Data); err != nil {
		return fmt.Errorf("failed to decode '%s': %w", *SrcFilePath, err)
	}
	lg.Debugf("Read JSON from file: '%s'", *SrcFilePath)
	return nil
}
