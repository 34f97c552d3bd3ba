// Package tokenize implements component C2: walking a record along a
// declared dotted key path (with "*" wildcard branching) and splitting
// each leaf value into a token list.
package tokenize

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/text/width"

	"github.com/eda-labs/fuzzysearch/internal/normalize"
	"github.com/eda-labs/fuzzysearch/pkg/models"
)

// PathError is the "invalid key path" error kind from spec.md section 7,
// returned by ValidatePath when a key segment is syntactically malformed.
// Index building and searching do not call ValidatePath: there a
// malformed path raises no error and simply reaches no leaf.
type PathError struct {
	Path string
	Msg  string
}

func (e *PathError) Error() string {
	return fmt.Sprintf("tokenize: invalid key path %q: %s", e.Path, e.Msg)
}

// ValidatePath checks a dotted key path for syntactic validity. An empty
// path, or a path consisting solely of an "item." or "root." prefix, is
// valid and means "the record itself".
func ValidatePath(path string) error {
	trimmed := strings.TrimPrefix(strings.TrimPrefix(path, "item."), "root.")
	if trimmed == "" {
		return nil
	}
	for _, seg := range strings.Split(trimmed, ".") {
		if seg == "" {
			return &PathError{Path: path, Msg: "empty path segment"}
		}
	}
	return nil
}

var splitCache sync.Map // map[string]*regexp.Regexp, keyed on separator pattern

func splitter(sep string) *regexp.Regexp {
	if v, ok := splitCache.Load(sep); ok {
		return v.(*regexp.Regexp)
	}
	re := regexp.MustCompile(sep)
	splitCache.Store(sep, re)
	return re
}

// SplitTokens normalises s and splits it on the configured separator
// regular expression, dropping tokens shorter than minLen and truncating
// tokens longer than maxLen. Per section 4.2, size filtering is skipped
// entirely when the full normalised string is no longer than 2*minLen, so
// short titles ("ok", "id") survive.
func SplitTokens(s, sep string, minLen, maxLen int) []string {
	norm := normalize.Normalize(width.Narrow.String(s), sep)
	if norm == "" {
		return nil
	}
	raw := splitter(sep).Split(norm, -1)
	skipSizeFilter := len(norm) <= 2*minLen
	out := make([]string, 0, len(raw))
	for _, t := range raw {
		if t == "" {
			continue
		}
		if !skipSizeFilter && len(t) < minLen {
			continue
		}
		if maxLen > 0 && len(t) > maxLen {
			t = t[:maxLen]
		}
		out = append(out, t)
	}
	return out
}

// Acronym extracts the first non-separator character following each
// separator boundary (and the very first character) of a normalised leaf
// string, producing the synthetic acronym token used when ScoreAcronym is
// enabled (section 4.2).
func Acronym(normalized, sep string) string {
	if normalized == "" {
		return ""
	}
	re := splitter(sep)
	parts := re.Split(normalized, -1)
	var b strings.Builder
	for _, p := range parts {
		if p != "" {
			b.WriteByte(p[0])
		}
	}
	return b.String()
}

// ExtractField walks rec along the dotted path (splitting on ".", with "*"
// branching over every element of an array or every value of a map/struct),
// returning one token list per leaf visited, in visitation order.
func ExtractField(rec models.Record, path string, cfg *models.Config) [][]string {
	trimmed := strings.TrimPrefix(strings.TrimPrefix(path, "item."), "root.")
	var segs []string
	if trimmed != "" {
		segs = strings.Split(trimmed, ".")
	}

	var leaves []any
	walk(reflect.ValueOf(rec), segs, &leaves)

	out := make([][]string, 0, len(leaves))
	for _, leaf := range leaves {
		text := stringify(leaf)
		toks := SplitTokens(text, cfg.TokenSep, cfg.TokenFieldMinLength, cfg.TokenFieldMaxLength)
		if cfg.ScoreAcronym {
			norm := normalize.Normalize(text, cfg.TokenSep)
			if ac := Acronym(norm, cfg.TokenSep); len(ac) >= 1 {
				toks = append(toks, ac)
			}
		}
		out = append(out, toks)
	}
	return out
}

// ExtractRaw walks rec along path the same way ExtractField does, but
// returns each leaf's un-tokenised, un-normalised string form -- used by
// the OutputField projection, which wants the field's actual value
// rather than its folded/split search representation.
func ExtractRaw(rec models.Record, path string) []string {
	trimmed := strings.TrimPrefix(strings.TrimPrefix(path, "item."), "root.")
	var segs []string
	if trimmed != "" {
		segs = strings.Split(trimmed, ".")
	}
	var leaves []any
	walk(reflect.ValueOf(rec), segs, &leaves)
	out := make([]string, 0, len(leaves))
	for _, leaf := range leaves {
		out = append(out, stringify(leaf))
	}
	return out
}

// walk recurses along segs starting from v, appending each reached leaf
// value (a non-array, non-map, non-struct value, or a value we could not
// descend into) to *leaves. A missing path component yields no leaf at all
// for that branch (the "unreachable key" non-error from section 7): the
// caller still gets an empty token list because ExtractField returns one
// entry per *visited* leaf, and a path that resolves to nothing visits
// zero leaves.
func walk(v reflect.Value, segs []string, leaves *[]any) {
	v = deref(v)
	if !v.IsValid() {
		return
	}

	if len(segs) == 0 {
		if isLeafKind(v) {
			*leaves = append(*leaves, v.Interface())
			return
		}
		// A non-leaf reached at path's end: flatten every reachable
		// scalar under it (mirrors "*" on the remaining structure).
		walk(v, []string{"*"}, leaves)
		return
	}

	seg, rest := segs[0], segs[1:]
	if seg == "*" {
		switch v.Kind() {
		case reflect.Slice, reflect.Array:
			for i := 0; i < v.Len(); i++ {
				walk(v.Index(i), rest, leaves)
			}
		case reflect.Map:
			for _, k := range v.MapKeys() {
				walk(v.MapIndex(k), rest, leaves)
			}
		case reflect.Struct:
			for i := 0; i < v.NumField(); i++ {
				if v.Type().Field(i).IsExported() {
					walk(v.Field(i), rest, leaves)
				}
			}
		default:
			walk(v, rest, leaves)
		}
		return
	}

	switch v.Kind() {
	case reflect.Map:
		mv := v.MapIndex(reflect.ValueOf(seg))
		if !mv.IsValid() {
			return
		}
		walk(mv, rest, leaves)
	case reflect.Struct:
		fv := findField(v, seg)
		if !fv.IsValid() {
			return
		}
		walk(fv, rest, leaves)
	case reflect.Slice, reflect.Array:
		idx, err := strconv.Atoi(seg)
		if err != nil || idx < 0 || idx >= v.Len() {
			return
		}
		walk(v.Index(idx), rest, leaves)
	default:
		return
	}
}

func findField(v reflect.Value, name string) reflect.Value {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		if strings.EqualFold(f.Name, name) {
			return v.Field(i)
		}
		if tag := f.Tag.Get("json"); tag != "" {
			name2 := strings.Split(tag, ",")[0]
			if name2 == name {
				return v.Field(i)
			}
		}
	}
	return reflect.Value{}
}

func deref(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

func isLeafKind(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map, reflect.Struct:
		return false
	default:
		return true
	}
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprintf("%v", t)
	}
}
