package config

import (
	"strings"

	"github.com/arthur-debert/rebatch/pkg/errors"
	"github.com/arthur-debert/rebatch/pkg/registry"
	"github.com/arthur-debert/rebatch/pkg/types"
	"github.com/arthur-debert/rebatch/pkg/view"
)

// Config is the merged configuration
type Config struct {
	Listing  Listing  `koanf:"listing"`
	Rename   Rename   `koanf:"rename"`
	Transfer Transfer `koanf:"transfer"`
	Output   Output   `koanf:"output"`
}

// Listing controls how directories are listed and displayed
type Listing struct {
	IncludeHidden bool         `koanf:"include_hidden"`
	Sort          view.SortKey `koanf:"sort"`
	Descending    bool         `koanf:"descending"`
}

// Rename holds the default rename template
type Rename struct {
	Base string `koanf:"base"`
	Code string `koanf:"code"`
}

// Transfer controls copy, move and rename batches
type Transfer struct {
	OnConflict string `koanf:"on_conflict"`
	CopySuffix string `koanf:"copy_suffix"`
	DryRun     bool   `koanf:"dry_run"`
	Progress   bool   `koanf:"progress"`
}

// Output selects the renderer
type Output struct {
	Format string `koanf:"format"`
}

// OutputFormats lists the accepted output.format values
var OutputFormats = []string{"auto", "term", "text", "json"}

// Policy resolves transfer.on_conflict. "ask" maps to types.PolicyNone.
func (c *Config) Policy() types.Policy {
	p, err := registry.LookupPolicy(c.Transfer.OnConflict)
	if err != nil {
		return types.PolicyNone
	}
	return p
}

// SortDirection returns the configured listing direction
func (c *Config) SortDirection() view.Direction {
	if c.Listing.Descending {
		return view.Descending
	}
	return view.Ascending
}

// Validate checks values the decoder cannot
func (c *Config) Validate() error {
	if _, err := registry.LookupPolicy(c.Transfer.OnConflict); err != nil {
		return errors.Wrapf(err, errors.ErrConfigValid, "transfer.on_conflict")
	}

	if c.Transfer.CopySuffix == "" {
		return errors.New(errors.ErrConfigValid, "transfer.copy_suffix cannot be empty")
	}
	if strings.ContainsAny(c.Transfer.CopySuffix, `/\`) {
		return errors.Newf(errors.ErrConfigValid, "transfer.copy_suffix %q cannot contain a path separator", c.Transfer.CopySuffix)
	}

	format := strings.ToLower(c.Output.Format)
	for _, f := range OutputFormats {
		if f == format {
			c.Output.Format = format
			return nil
		}
	}
	return errors.Newf(errors.ErrConfigValid, "output.format %q is not one of %v", c.Output.Format, OutputFormats)
}
