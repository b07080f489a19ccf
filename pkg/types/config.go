package types

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// OutputFormat selects the report serialization.
type OutputFormat string

const (
	FormatCSV  OutputFormat = "csv"
	FormatJSON OutputFormat = "json"
	FormatYAML OutputFormat = "yaml"
)

// NCBIConfig holds the optional E-utilities etiquette parameters. When all
// fields are empty the requests carry only the required parameters.
type NCBIConfig struct {
	// APIKey raises the NCBI rate limit when set.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Email identifies the caller to NCBI.
	Email string `json:"email,omitempty" yaml:"email,omitempty" validate:"omitempty,email"`

	// Tool names the calling program to NCBI.
	Tool string `json:"tool,omitempty" yaml:"tool,omitempty"`
}

// HTTPConfig holds HTTP settings for the E-utilities client.
type HTTPConfig struct {
	// UserAgent is the User-Agent header sent with every request.
	UserAgent string `json:"user_agent" yaml:"user_agent" validate:"required"`
}

// OutputConfig selects where and how the report is written.
type OutputConfig struct {
	// File is the report destination; an existing file is overwritten.
	File string `json:"file" yaml:"file" validate:"required"`

	// Format is csv, json, or yaml.
	Format OutputFormat `json:"format" yaml:"format" validate:"required,oneof=csv json yaml"`

	// DB is an optional SQLite file that receives a copy of the rows.
	DB string `json:"db,omitempty" yaml:"db,omitempty"`

	// Preview prints the records as a table on stdout.
	Preview bool `json:"preview" yaml:"preview"`
}

// Config groups the settings for one invocation.
type Config struct {
	NCBI   NCBIConfig   `json:"ncbi" yaml:"ncbi"`
	HTTP   HTTPConfig   `json:"http" yaml:"http"`
	Output OutputConfig `json:"output" yaml:"output"`
}

var validate = validator.New()

// Validate checks the configuration and reports the first violation as a
// single error.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid configuration: %s fails %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value())
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
