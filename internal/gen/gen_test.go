//    VerseAnalytics
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetSubtraction(t *testing.T) {
	aa := []string{"a", "b", "c", "d", "g", "h"}
	bb := []string{"a", "b", "e", "f", "g"}
	assert.Equal(t, []string{"c", "d", "h"}, SetSubtraction(aa, bb))
}

func TestUniqueKeepsFirstAppearance(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, Unique([]string{"a", "a", "b", "a", "c", "b"}))
}

func TestSortedKeys(t *testing.T) {
	m := map[string]int{"krishna": 1, "arjuna": 2, "sanjaya": 3}
	assert.Equal(t, []string{"arjuna", "krishna", "sanjaya"}, SortedKeys(m))
}

func TestArgMax(t *testing.T) {
	assert.Equal(t, 2, ArgMax([]float64{0.1, 0.2, 0.7}))
	assert.Equal(t, 0, ArgMax([]float64{0.5, 0.5}))
}

func TestSnippet(t *testing.T) {
	assert.Equal(t, "short", Snippet("short", 10))
	assert.Equal(t, "the…", Snippet("the field of dharma", 4))
}

func TestAllDigits(t *testing.T) {
	assert.True(t, AllDigits("18"))
	assert.False(t, AllDigits("18a"))
	assert.False(t, AllDigits(""))
}

func TestFingerprintIsStable(t *testing.T) {
	type settings struct {
		K    int
		Seed int64
	}
	a, err := Fingerprint(settings{K: 5, Seed: 1}, []string{"field", "dharma"})
	require.NoError(t, err)
	b, err := Fingerprint(settings{K: 5, Seed: 1}, []string{"field", "dharma"})
	require.NoError(t, err)
	c, err := Fingerprint(settings{K: 6, Seed: 1}, []string{"field", "dharma"})
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 32)
}

func TestFingerprintRejectsUnmarshalable(t *testing.T) {
	_, err := Fingerprint(make(chan int))
	assert.Error(t, err)
}
