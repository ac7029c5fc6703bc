package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSplice(t *testing.T) {
	cases := map[string]struct {
		input       string
		expected    [3]int
		expectedErr bool
	}{
		"Insertion":   {input: "10:0:5", expected: [3]int{10, 0, 5}},
		"Deletion":    {input: "3:4:0", expected: [3]int{3, 4, 0}},
		"TooFewParts": {input: "3:4", expectedErr: true},
		"NotANumber":  {input: "3:x:1", expectedErr: true},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			start, oldExtent, newExtent, err := parseSplice(tc.input)
			if tc.expectedErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, [3]int{start, oldExtent, newExtent})
		})
	}
}

func TestApply(t *testing.T) {
	o := applyOptions{
		seed:      3,
		exclusive: []string{"a"},
		splices:   []string{"10:0:5", "0:2:0"},
		query:     "12-16",
	}
	assert.NoError(t, o.apply([]string{"a=10-20", "b=15"}))

	assert.Error(t, o.apply([]string{"a"}))
	assert.Error(t, o.apply([]string{"a=20-10"}))
	assert.Error(t, applyOptions{splices: []string{"-1:0:0"}}.apply([]string{"a=1-2"}))
}
