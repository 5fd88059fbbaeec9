package globalconf_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iph0/globalconf"
	"github.com/iph0/globalconf/merger"
)

type M = globalconf.M
type A = globalconf.A

func TestResolve(t *testing.T) {
	t.Run("simple_marker",
		func(t *testing.T) {
			env := globalconf.Env{"FOO": "bar"}
			tc := globalconf.Resolve(M{"@foo": "default"}, env)

			assert.Equal(t, M{"foo": "bar"}, tc)
		},
	)

	t.Run("custom_var_marker",
		func(t *testing.T) {
			env := globalconf.Env{"CUSTOM_VAR": "baz"}
			tc := globalconf.Resolve(M{"@port:custom_var": 8080}, env)

			assert.Equal(t, M{"port": "baz"}, tc)
		},
	)

	t.Run("custom_var_ignores_name_var",
		func(t *testing.T) {
			env := globalconf.Env{"PORT": "1"}
			tc := globalconf.Resolve(M{"@port:custom_var": 8080}, env)

			assert.Equal(t, M{"port": 8080}, tc)
		},
	)

	t.Run("unset_var",
		func(t *testing.T) {
			tc := globalconf.Resolve(M{"@foo": "default"}, globalconf.Env{})
			assert.Equal(t, M{"foo": "default"}, tc)
		},
	)

	t.Run("empty_var",
		func(t *testing.T) {
			env := globalconf.Env{"FOO": ""}
			tc := globalconf.Resolve(M{"@foo": "default"}, env)

			assert.Equal(t, M{"foo": "default"}, tc)
		},
	)

	t.Run("plain_keys",
		func(t *testing.T) {
			env := globalconf.Env{"NAME": "other"}
			tc := globalconf.Resolve(M{"name": "value"}, env)

			assert.Equal(t, M{"name": "value"}, tc)
		},
	)

	t.Run("nested",
		func(t *testing.T) {
			env := globalconf.Env{"HOST": "prod.db"}
			tc := globalconf.Resolve(M{"db": M{"@host": "localhost"}}, env)

			assert.Equal(t, M{"db": M{"host": "prod.db"}}, tc)
		},
	)

	t.Run("maps_in_slices",
		func(t *testing.T) {
			env := globalconf.Env{"URL": "http://b"}
			tc := globalconf.Resolve(
				M{
					"backends": A{
						M{"@url": "http://a", "weight": 1},
						"plain",
						A{M{"@url": "http://c"}},
					},
				},
				env,
			)

			ec := M{
				"backends": A{
					M{"url": "http://b", "weight": 1},
					"plain",
					A{M{"url": "http://b"}},
				},
			}

			assert.Equal(t, ec, tc)
		},
	)

	t.Run("env_replaces_structure",
		func(t *testing.T) {
			env := globalconf.Env{"DB": "postgres://prod"}
			tc := globalconf.Resolve(M{"@db": M{"host": "localhost"}}, env)

			assert.Equal(t, M{"db": "postgres://prod"}, tc)
		},
	)

	t.Run("structure_resolved_when_unset",
		func(t *testing.T) {
			env := globalconf.Env{"PORT": "5433"}
			tc := globalconf.Resolve(M{"@db": M{"@port": 5432}}, env)

			assert.Equal(t, M{"db": M{"port": "5433"}}, tc)
		},
	)

	t.Run("case_of_exposed_key",
		func(t *testing.T) {
			env := globalconf.Env{"APIKEY": "secret"}
			tc := globalconf.Resolve(M{"@apiKey": ""}, env)

			assert.Equal(t, M{"apiKey": "secret"}, tc)
		},
	)

	t.Run("scalars",
		func(t *testing.T) {
			env := globalconf.Env{"FOO": "bar"}

			assert.Equal(t, "@foo", globalconf.Resolve("@foo", env))
			assert.Equal(t, 42, globalconf.Resolve(42, env))
			assert.Nil(t, globalconf.Resolve(nil, env))
			assert.Equal(t, A{1, "@foo"}, globalconf.Resolve(A{1, "@foo"}, env))
		},
	)

	t.Run("typed_map",
		func(t *testing.T) {
			env := globalconf.Env{"FOO": "bar"}
			tc := globalconf.Resolve(map[string]string{"@foo": "x", "moo": "y"}, env)

			assert.Equal(t, M{"foo": "bar", "moo": "y"}, tc)
		},
	)
}

func TestResolveCollisions(t *testing.T) {
	t.Run("marker_wins_over_plain",
		func(t *testing.T) {
			tc := globalconf.Resolve(M{"foo": "plain", "@foo": "marker"}, globalconf.Env{})
			assert.Equal(t, M{"foo": "marker"}, tc)

			env := globalconf.Env{"FOO": "env"}
			tc = globalconf.Resolve(M{"foo": "plain", "@foo": "marker"}, env)
			assert.Equal(t, M{"foo": "env"}, tc)
		},
	)

	t.Run("custom_wins_over_simple",
		func(t *testing.T) {
			tc := globalconf.Resolve(
				M{"@port": 1, "@port:app_port": 2, "port": 3},
				globalconf.Env{},
			)

			assert.Equal(t, M{"port": 2}, tc)
		},
	)

	t.Run("deterministic",
		func(t *testing.T) {
			tree := M{"@port:a": 1, "@port:b": 2}

			for i := 0; i < 20; i++ {
				tc := globalconf.Resolve(tree, globalconf.Env{})
				assert.Equal(t, M{"port": 2}, tc)
			}
		},
	)
}

func TestResolveIdempotent(t *testing.T) {
	env := globalconf.Env{
		"DEBUG":    "true",
		"DB_HOST":  "prod.db",
		"APP_PORT": "",
	}

	tree := M{
		"@debug": false,
		"db": M{
			"@host:db_host": "localhost",
			"@port:app_port": 5432,
			"replicas": A{
				M{"@host": "replica1"},
			},
		},
		"name": "myapp",
	}

	once := globalconf.Resolve(tree, env)
	twice := globalconf.Resolve(once, env)

	assert.Equal(t, once, twice)
	assert.Equal(t,
		M{
			"debug": "true",
			"db": M{
				"host": "prod.db",
				"port": 5432,
				"replicas": A{
					M{"host": "replica1"},
				},
			},
			"name": "myapp",
		},
		once,
	)
}

func TestResolveDoesNotMutate(t *testing.T) {
	tree := M{
		"@foo": "default",
		"list": A{M{"@bar": 1}},
	}

	globalconf.Resolve(tree, globalconf.Env{"FOO": "x", "BAR": "y"})

	assert.Equal(t,
		M{
			"@foo": "default",
			"list": A{M{"@bar": 1}},
		},
		tree,
	)
}

func TestMergeAndResolve(t *testing.T) {
	base := M{
		"db": M{
			"host": "localhost",
			"port": 5432,
		},
		"@debug": false,
	}

	overlay := M{
		"db": M{
			"port": 5433,
		},
	}

	merged := merger.Merge(base, overlay)

	assert.Equal(t,
		M{
			"db": M{
				"host": "localhost",
				"port": 5433,
			},
			"@debug": false,
		},
		merged,
	)

	resolved := globalconf.Resolve(merged, globalconf.Env{"DEBUG": "true"})

	assert.Equal(t,
		M{
			"db": M{
				"host": "localhost",
				"port": 5433,
			},
			"debug": "true",
		},
		resolved,
	)
}

func TestResolveMap(t *testing.T) {
	assert.Nil(t, globalconf.ResolveMap(nil, globalconf.Env{}))
	assert.Equal(t, M{}, globalconf.ResolveMap(M{}, globalconf.Env{}))
}
