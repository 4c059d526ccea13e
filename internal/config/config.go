// Package config defines the explicit option set threaded through every
// pipeline entry point. The core packages never read ambient state; the CLI
// resolves viper into an Options value once and passes it down.
package config

import "github.com/spf13/viper"

// Options configures parsing, validation and auto-fixing. Zero values mean
// "use the default"; call Normalized before handing it to the pipeline.
type Options struct {
	// DefaultUnit is the fallback unit when a row's unit cannot be resolved.
	DefaultUnit string
	// TinyPrice is the floor below which a positive price is suspicious.
	TinyPrice float64
	// LargeQty is the ceiling above which a quantity is suspicious.
	LargeQty float64
	// MinQuantity and MaxQuantity clamp quantities during auto-fix. A positive
	// MinQuantity turns negative quantities into clamps instead of drops.
	MinQuantity float64
	MaxQuantity float64
	// AutoInsertThreshold is the confidence cutoff for applying a parse
	// without manual review.
	AutoInsertThreshold float64
	// MinNameLen is the minimum trimmed part-name length.
	MinNameLen int
	// RoundPriceTo is the number of decimal places prices are rounded to.
	RoundPriceTo int
	// MaxDirectInsertRows forces a preview for pastes larger than this,
	// regardless of confidence.
	MaxDirectInsertRows int
	// MergeDuplicates enables merging rows with the same name during auto-fix.
	MergeDuplicates bool
	// RequireUnit makes a missing unit a validation warning.
	RequireUnit bool
}

// Default returns the stock option set.
func Default() Options {
	return Options{
		DefaultUnit:         "pc",
		TinyPrice:           0.01,
		LargeQty:            1_000_000,
		MinQuantity:         0,
		MaxQuantity:         1_000_000,
		AutoInsertThreshold: 0.70,
		MinNameLen:          2,
		RoundPriceTo:        2,
		MaxDirectInsertRows: 80,
		MergeDuplicates:     true,
		RequireUnit:         true,
	}
}

// Normalized fills unset fields with their defaults.
func (o Options) Normalized() Options {
	def := Default()
	if o.DefaultUnit == "" {
		o.DefaultUnit = def.DefaultUnit
	}
	if o.TinyPrice <= 0 {
		o.TinyPrice = def.TinyPrice
	}
	if o.LargeQty <= 0 {
		o.LargeQty = def.LargeQty
	}
	if o.MaxQuantity <= 0 {
		o.MaxQuantity = o.LargeQty
	}
	if o.AutoInsertThreshold <= 0 {
		o.AutoInsertThreshold = def.AutoInsertThreshold
	}
	if o.MinNameLen <= 0 {
		o.MinNameLen = def.MinNameLen
	}
	if o.RoundPriceTo <= 0 {
		o.RoundPriceTo = def.RoundPriceTo
	}
	if o.MaxDirectInsertRows <= 0 {
		o.MaxDirectInsertRows = def.MaxDirectInsertRows
	}
	return o
}

// FromViper builds Options from the resolved viper configuration, falling
// back to defaults for anything unset.
func FromViper() Options {
	opts := Default()
	if v := viper.GetString("parse.default_unit"); v != "" {
		opts.DefaultUnit = v
	}
	if v := viper.GetFloat64("parse.tiny_price"); v > 0 {
		opts.TinyPrice = v
	}
	if v := viper.GetFloat64("parse.large_qty"); v > 0 {
		opts.LargeQty = v
		opts.MaxQuantity = v
	}
	if v := viper.GetFloat64("parse.min_quantity"); v > 0 {
		opts.MinQuantity = v
	}
	if v := viper.GetFloat64("parse.max_quantity"); v > 0 {
		opts.MaxQuantity = v
	}
	if v := viper.GetFloat64("parse.auto_insert_threshold"); v > 0 {
		opts.AutoInsertThreshold = v
	}
	if v := viper.GetInt("parse.min_name_len"); v > 0 {
		opts.MinNameLen = v
	}
	if v := viper.GetInt("parse.round_price_to"); v > 0 {
		opts.RoundPriceTo = v
	}
	if v := viper.GetInt("parse.max_direct_insert_rows"); v > 0 {
		opts.MaxDirectInsertRows = v
	}
	if viper.IsSet("parse.merge_duplicates") {
		opts.MergeDuplicates = viper.GetBool("parse.merge_duplicates")
	}
	if viper.IsSet("parse.require_unit") {
		opts.RequireUnit = viper.GetBool("parse.require_unit")
	}
	return opts
}
