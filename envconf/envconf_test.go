package envconf_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iph0/globalconf"
	"github.com/iph0/globalconf/envconf"
)

type M = globalconf.M

func TestLoad(t *testing.T) {
	configProc := NewProcessor(
		globalconf.Env{
			"TEST_FOO": "bar",
			"TEST_MOO": "jar",
			"TEST_ZOO": "arr",
			"OTHER":    "skip",
		},
	)

	tConfig, err := configProc.Load(context.Background(),
		M{
			"test": M{
				"@foo:test_foo": "default",
				"@moo:test_moo": "default",
				"@yar:test_yar": "default",
			},
		},

		"env:^TEST_",
	)

	require.NoError(t, err)

	eConfig := M{
		"test": M{
			"foo": "bar",
			"moo": "jar",
			"yar": "default",
		},

		"TEST_FOO": "bar",
		"TEST_MOO": "jar",
		"TEST_ZOO": "arr",
	}

	assert.Equal(t, eConfig, tConfig)
}

func TestLoadProcessEnv(t *testing.T) {
	t.Setenv("GLOBALCONF_TEST_VAR", "value")

	layers, err := envconf.NewLoader(nil).Load(context.Background(),
		&globalconf.Locator{Loader: "env", Value: "^GLOBALCONF_TEST_VAR$"})

	require.NoError(t, err)
	assert.Equal(t, []any{M{"GLOBALCONF_TEST_VAR": "value"}}, layers)
}

func TestErrors(t *testing.T) {
	configProc := NewProcessor(globalconf.Env{})

	t.Run("invalid_pattern",
		func(t *testing.T) {
			_, err := configProc.Load(context.Background(), "env:^TE[ST_")

			require.Error(t, err)
			assert.Contains(t, err.Error(), "error parsing regexp")
		},
	)

	t.Run("empty_pattern",
		func(t *testing.T) {
			_, err := configProc.Load(context.Background(), "env:")

			require.Error(t, err)
			assert.Contains(t, err.Error(), "empty pattern specified")
		},
	)
}

func NewProcessor(env globalconf.Env) *globalconf.Processor {
	envLdr := envconf.NewLoader(env)

	configProc := globalconf.NewProcessor(
		globalconf.ProcessorConfig{
			Loaders: map[string]globalconf.Loader{
				"env": envLdr,
			},
			Env: env,
		},
	)

	return configProc
}
