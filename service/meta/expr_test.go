package meta

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandWith(t *testing.T) {
	env := map[string]string{"FOO": "bar", "A": "1", "B": "2", "X": "x"}
	lookup := func(key string) string { return env[key] }

	testCases := []struct {
		description string
		input       string
		expect      string
	}{
		{description: "no expressions", input: "http://localhost:3000", expect: "http://localhost:3000"},
		{description: "single expression", input: "token: ${env.FOO}", expect: "token: bar"},
		{description: "multiple expressions", input: "${env.A}-${env.B}-${env.A}", expect: "1-2-1"},
		{description: "unset variable", input: "unset=${env.NOTSET}-end", expect: "unset=-end"},
		{description: "missing closing brace", input: "start ${env.X and ${env.Y} end", expect: "start ${env.X and  end"},
		{description: "empty key", input: "oops ${env.} done", expect: "oops  done"},
		{description: "unterminated", input: "tail ${env.FOO", expect: "tail ${env.FOO"},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			assert.Equal(t, testCase.expect, expandWith(testCase.input, lookup))
		})
	}
}

func TestExpandEnvExpr(t *testing.T) {
	t.Setenv("CORRELATIONS_EXPR_TEST", "value")
	assert.Equal(t, "value", expandEnvExpr("${env.CORRELATIONS_EXPR_TEST}"))
}
