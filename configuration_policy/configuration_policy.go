package configuration_policy

import (
	"encoding/json"
	"fmt"
	"os"
	"reflect"
)

type ConfigurationPolicy struct {
	ConfigurationFilePath *string
}

func (Config ConfigurationPolicy) InitFromFile(APIConfigurationPointer any) error {
	if reflect.ValueOf(APIConfigurationPointer).Kind() != reflect.Ptr || reflect.ValueOf(APIConfigurationPointer).Elem().Kind() != reflect.Struct {
		return fmt.Errorf("out parameter must be a pointer to a struct, got %T", APIConfigurationPointer)
	}

	jsonData, err := os.ReadFile(*Config.ConfigurationFilePath)
	if err != nil {
		return err
	}

	err = json.Unmarshal(jsonData, APIConfigurationPointer)
	return err
}

type Configurable interface {
	SetConfiguration(Config any) error
}

// Option receives the component and a pointer to its zero-valued (or default)
// configuration struct.
type Option func(Configurable, any) error

func WithConfigurationFile(ConfigurationFilePath *string) Option {

	return func(api Configurable, APIConfiguration any) error {
		err := ConfigurationPolicy{ConfigurationFilePath: ConfigurationFilePath}.InitFromFile(APIConfiguration)
		if err != nil {
			return err
		}
		err = api.SetConfiguration(APIConfiguration)
		if err != nil {
			return err
		}
		return nil
	}
}

// WithConfiguration hands an already built configuration to the component.
// Config must be the same pointer type the component expects.
func WithConfiguration(Config any) Option {
	return func(api Configurable, _ any) error {
		return api.SetConfiguration(Config)
	}
}

// Apply runs every option against the component in order.
func Apply(api Configurable, APIConfiguration any, options ...Option) error {
	for _, option := range options {
		if err := option(api, APIConfiguration); err != nil {
			return err
		}
	}
	return nil
}
