// Package config loads engine tuning options from YAML, layering them
// over models.DefaultConfig.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/eda-labs/fuzzysearch/pkg/models"
)

// file mirrors the subset of models.Config that is safe to express in
// YAML: numeric/bool/string tunables and the plain (non-tag) key paths.
// identify_item, output_map function values, and tag-bound keys are
// wired in code, not from a config file.
type file struct {
	MinimumMatch         *float64 `yaml:"minimum_match"`
	ThreshInclude         *float64 `yaml:"thresh_include"`
	ThreshRelativeToBest  *float64 `yaml:"thresh_relative_to_best"`
	FieldGoodEnough       *float64 `yaml:"field_good_enough"`
	BonusMatchStart       *float64 `yaml:"bonus_match_start"`
	BonusTokenOrder       *float64 `yaml:"bonus_token_order"`
	BonusPositionDecay    *float64 `yaml:"bonus_position_decay"`
	ScorePerToken         *bool    `yaml:"score_per_token"`
	ScoreTestFused        *bool    `yaml:"score_test_fused"`
	ScoreAcronym          *bool    `yaml:"score_acronym"`
	TokenSep              *string  `yaml:"token_sep"`
	ScoreRound            *float64 `yaml:"score_round"`
	OutputLimit           *int     `yaml:"output_limit"`
	TokenQueryMinLength   *int     `yaml:"token_query_min_length"`
	TokenFieldMinLength   *int     `yaml:"token_field_min_length"`
	TokenQueryMaxLength   *int     `yaml:"token_query_max_length"`
	TokenFieldMaxLength   *int     `yaml:"token_field_max_length"`
	TokenFusedMaxLength   *int     `yaml:"token_fused_max_length"`
	TokenMinRelSize       *float64 `yaml:"token_min_rel_size"`
	TokenMaxRelSize       *float64 `yaml:"token_max_rel_size"`
	HighlightPrefix       *bool    `yaml:"highlight_prefix"`
	HighlightBridgeGap    *int     `yaml:"highlight_bridge_gap"`
	HighlightBefore       *string  `yaml:"highlight_before"`
	HighlightAfter        *string  `yaml:"highlight_after"`
	UseIndexStore         *bool    `yaml:"use_index_store"`
	StoreThresh           *float64 `yaml:"store_thresh"`
	StoreMaxResults       *int     `yaml:"store_max_results"`
	Lazy                  *bool    `yaml:"lazy"`
	MaxInners             *int     `yaml:"max_inners"`
	Keys                  []string `yaml:"keys"`
}

// Load reads a YAML document from path and applies it on top of
// models.DefaultConfig, returning the merged configuration.
func Load(path string) (*models.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse applies a YAML document's contents on top of models.DefaultConfig.
func Parse(data []byte) (*models.Config, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}

	cfg := models.DefaultConfig()
	applyFloat(&cfg.MinimumMatch, f.MinimumMatch)
	applyFloat(&cfg.ThreshInclude, f.ThreshInclude)
	applyFloat(&cfg.ThreshRelativeToBest, f.ThreshRelativeToBest)
	applyFloat(&cfg.FieldGoodEnough, f.FieldGoodEnough)
	applyFloat(&cfg.BonusMatchStart, f.BonusMatchStart)
	applyFloat(&cfg.BonusTokenOrder, f.BonusTokenOrder)
	applyFloat(&cfg.BonusPositionDecay, f.BonusPositionDecay)
	applyBool(&cfg.ScorePerToken, f.ScorePerToken)
	applyBool(&cfg.ScoreTestFused, f.ScoreTestFused)
	applyBool(&cfg.ScoreAcronym, f.ScoreAcronym)
	applyString(&cfg.TokenSep, f.TokenSep)
	applyFloat(&cfg.ScoreRound, f.ScoreRound)
	applyInt(&cfg.OutputLimit, f.OutputLimit)
	applyInt(&cfg.TokenQueryMinLength, f.TokenQueryMinLength)
	applyInt(&cfg.TokenFieldMinLength, f.TokenFieldMinLength)
	applyInt(&cfg.TokenQueryMaxLength, f.TokenQueryMaxLength)
	applyInt(&cfg.TokenFieldMaxLength, f.TokenFieldMaxLength)
	applyInt(&cfg.TokenFusedMaxLength, f.TokenFusedMaxLength)
	applyFloat(&cfg.TokenMinRelSize, f.TokenMinRelSize)
	applyFloat(&cfg.TokenMaxRelSize, f.TokenMaxRelSize)
	applyBool(&cfg.HighlightPrefix, f.HighlightPrefix)
	applyInt(&cfg.HighlightBridgeGap, f.HighlightBridgeGap)
	applyString(&cfg.HighlightBefore, f.HighlightBefore)
	applyString(&cfg.HighlightAfter, f.HighlightAfter)
	applyBool(&cfg.UseIndexStore, f.UseIndexStore)
	applyFloat(&cfg.StoreThresh, f.StoreThresh)
	applyInt(&cfg.StoreMaxResults, f.StoreMaxResults)
	applyBool(&cfg.Lazy, f.Lazy)
	applyInt(&cfg.MaxInners, f.MaxInners)

	for _, path := range f.Keys {
		cfg.Keys = append(cfg.Keys, models.KeySpec{Path: path})
	}
	return cfg, nil
}

func applyFloat(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}

func applyInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

func applyBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}

func applyString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
