package main

import (
	"testing"

	"github.com/rogpeppe/go-internal/testscript"

	"github.com/amonks/toodle/internal/testsupport"
)

func TestParseScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir: "testdata/parse",
		Setup: func(env *testscript.Env) error {
			return testsupport.SetupScriptEnv(t, env)
		},
	})
}
