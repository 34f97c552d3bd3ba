// Package query implements component C7: splitting a free-form query
// string into a root query plus one child query per declared tag marker,
// and preparing each for the score kernels (normalise, tokenise, pack,
// fuse).
package query

import (
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/eda-labs/fuzzysearch/internal/bitmatch"
	"github.com/eda-labs/fuzzysearch/internal/normalize"
	"github.com/eda-labs/fuzzysearch/internal/tokenize"
	"github.com/eda-labs/fuzzysearch/pkg/models"
)

// tagPattern caches the compiled "any declared tag, followed by a colon"
// regular expression for a given config's key set, keyed on the joined tag
// names so repeated Parse calls against the same engine reuse it.
var tagPattern sync.Map // map[string]*regexp.Regexp

type tagMarker struct {
	tag        string
	start, end int // half-open range of "tag:" in the raw query
}

// Parse builds the root Query and its tag children from a raw query
// string, per section 4.7.
func Parse(raw string, cfg *models.Config) *models.Query {
	markers := findMarkers(raw, cfg.Keys)

	root := &models.Query{Raw: raw}
	children := make(map[string]*models.Query, len(markers))

	segStart := 0
	segTag := ""
	for _, m := range markers {
		text := raw[segStart:m.start]
		assign(segTag, text, root, children, cfg)
		segStart = m.end
		segTag = m.tag
	}
	assign(segTag, raw[segStart:], root, children, cfg)

	if len(children) > 0 {
		root.Children = children
	}
	return root
}

// assign builds one segment's Query (populating root directly for the
// pre-first-marker segment, or a new child keyed by tag otherwise).
func assign(tag, text string, root *models.Query, children map[string]*models.Query, cfg *models.Config) {
	if tag == "" {
		fill(root, text, cfg)
		return
	}
	q := &models.Query{}
	fill(q, text, cfg)
	children[tag] = q
}

// fill normalises, tokenises, packs and fuses one segment's raw text into
// an (already allocated) Query.
func fill(q *models.Query, raw string, cfg *models.Config) {
	q.Raw = raw
	q.Normalized = normalize.Normalize(raw, cfg.TokenSep)
	if q.Normalized == "" {
		return
	}
	q.Tokens = tokenize.SplitTokens(raw, cfg.TokenSep, cfg.TokenQueryMinLength, cfg.TokenQueryMaxLength)
	if len(q.Tokens) == 0 {
		return
	}
	q.Packs = bitmatch.Pack(q.Tokens)

	fused := strings.Join(q.Tokens, "")
	if cfg.TokenFusedMaxLength > 0 && len(fused) > cfg.TokenFusedMaxLength {
		fused = fused[:cfg.TokenFusedMaxLength]
	}
	q.Fused = fused
	fusedRunes := bitmatch.Runes(fused)
	if len(fusedRunes) > models.Width {
		q.FusedAlpha = bitmatch.BuildLongAlphabet(fusedRunes)
	} else {
		q.FusedAlpha = bitmatch.BuildShortAlphabet(fusedRunes)
	}
}

// findMarkers scans raw for "tag:" occurrences of any declared tag, in
// left-to-right order, skipping overlaps. A query with no tagged keys (or
// none declared at all) returns no markers, so the whole query becomes
// the root segment -- and a tag: substring whose tag does not exist among
// the declared keys is simply never matched, so it falls through as plain
// text in whichever segment contains it, per section 8's "unknown tag"
// edge case.
func findMarkers(raw string, keys []models.KeySpec) []tagMarker {
	re := compiledTagPattern(keys)
	if re == nil {
		return nil
	}
	locs := re.FindAllStringSubmatchIndex(raw, -1)
	markers := make([]tagMarker, 0, len(locs))
	for _, loc := range locs {
		tag := raw[loc[2]:loc[3]]
		markers = append(markers, tagMarker{tag: tag, start: loc[0], end: loc[1]})
	}
	return markers
}

func compiledTagPattern(keys []models.KeySpec) *regexp.Regexp {
	var tags []string
	for _, k := range keys {
		if k.Tag != "" {
			tags = append(tags, k.Tag)
		}
	}
	if len(tags) == 0 {
		return nil
	}
	sort.Strings(tags)
	cacheKey := strings.Join(tags, "\x00")
	if v, ok := tagPattern.Load(cacheKey); ok {
		return v.(*regexp.Regexp)
	}

	escaped := make([]string, len(tags))
	for i, t := range tags {
		escaped[i] = regexp.QuoteMeta(t)
	}
	pattern := `(?:^|\s)(` + strings.Join(escaped, "|") + `):`
	re := regexp.MustCompile(pattern)
	tagPattern.Store(cacheKey, re)
	return re
}
