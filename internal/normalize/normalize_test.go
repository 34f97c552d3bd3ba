package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const defaultSep = `[\s\-/\\_+.#"'&,|()[\]{}]+`

func TestNormalizeCaseAndWhitespace(t *testing.T) {
	assert.Equal(t, "old man river", Normalize("  Old   Man River  ", defaultSep))
}

func TestNormalizeDiacriticFold(t *testing.T) {
	assert.Equal(t, "cafe resume", Normalize("Café Résumé", defaultSep))
}

func TestNormalizeCollapsesConfiguredSeparators(t *testing.T) {
	assert.Equal(t, "old man river", Normalize("old---man//river", defaultSep))
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"Hello, World!",
		"Café Résumé",
		"  spaced   out  ",
		"",
		"already normal",
	}
	for _, in := range inputs {
		once := Normalize(in, defaultSep)
		twice := Normalize(once, defaultSep)
		assert.Equal(t, once, twice, "normalize(%q) not idempotent", in)
	}
}

func TestNormalizeEmpty(t *testing.T) {
	assert.Equal(t, "", Normalize("", defaultSep))
	assert.Equal(t, "", Normalize("   ", defaultSep))
}
