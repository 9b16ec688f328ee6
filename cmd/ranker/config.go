package main

import (
	"github.com/urfave/cli/v2"

	"github.com/AlexeyBeley/go_ranker/aws_api"
	config_pol "github.com/AlexeyBeley/go_ranker/configuration_policy"
	"github.com/AlexeyBeley/go_ranker/ranker"
)

// Configuration is the optional JSON file given with --config. Flags win over
// the S3 values in it.
type Configuration struct {
	Ranker  ranker.Configuration `json:"Ranker"`
	Region  string               `json:"Region"`
	Profile string               `json:"Profile"`
	Bucket  string               `json:"Bucket"`
	Key     string               `json:"Key"`
}

func loadConfiguration(cctx *cli.Context) (*Configuration, error) {
	configuration := &Configuration{}
	if path := cctx.String("config"); path != "" {
		if err := (config_pol.ConfigurationPolicy{ConfigurationFilePath: &path}).InitFromFile(configuration); err != nil {
			return nil, err
		}
	}

	for flag, dst := range map[string]*string{
		"s3-bucket": &configuration.Bucket,
		"s3-key":    &configuration.Key,
		"region":    &configuration.Region,
		"profile":   &configuration.Profile,
	} {
		if cctx.IsSet(flag) || *dst == "" {
			*dst = cctx.String(flag)
		}
	}
	configuration.applyLogLevel(cctx.String("log-level"))
	return configuration, nil
}

// applyLogLevel hands the global flag to the tree unless the file set its own.
func (configuration *Configuration) applyLogLevel(name string) {
	if configuration.Ranker.Tree.LogLevel == "" {
		configuration.Ranker.Tree.LogLevel = name
	}
}

func (configuration *Configuration) s3API() *aws_api.S3API {
	var profile *string
	if configuration.Profile != "" {
		profile = &configuration.Profile
	}
	return aws_api.S3APINew(&configuration.Region, profile)
}

func (configuration *Configuration) useS3() bool {
	return configuration.Bucket != "" && configuration.Key != ""
}
