package merger_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iph0/globalconf/merger"
)

type M = map[string]any
type A = []any

func TestMerge(t *testing.T) {
	a := M{
		"db": M{
			"host": "localhost",
			"port": 5432,
			"options": M{
				"sslmode": "disable",
				"timeout": 30,
			},
		},
		"hosts":   A{"alpha", "beta"},
		"name":    "myapp",
		"debug":   false,
		"metrics": M{"enabled": true},
		"zar":     nil,
	}

	b := M{
		"db": M{
			"port": 5433,
			"options": M{
				"timeout": 60,
				"pool":    10,
			},
		},
		"hosts":   A{"gamma"},
		"debug":   true,
		"metrics": "off",
		"mar":     15,
	}

	tc := merger.Merge(a, b)

	ec := M{
		"db": M{
			"host": "localhost",
			"port": 5433,
			"options": M{
				"sslmode": "disable",
				"timeout": 60,
				"pool":    10,
			},
		},
		"hosts":   A{"alpha", "beta", "gamma"},
		"name":    "myapp",
		"debug":   true,
		"metrics": "off",
		"mar":     15,
		"zar":     nil,
	}

	assert.Equal(t, ec, tc)
}

func TestMergeLayers(t *testing.T) {
	t.Run("rightmost_wins",
		func(t *testing.T) {
			tc := merger.Merge(
				M{"a": 1, "b": 1, "c": 1},
				M{"b": 2, "c": 2},
				M{"c": 3},
			)

			assert.Equal(t, M{"a": 1, "b": 2, "c": 3}, tc)
		},
	)

	t.Run("nil_layers_skipped",
		func(t *testing.T) {
			tc := merger.Merge(nil, M{"a": 1}, nil)
			assert.Equal(t, M{"a": 1}, tc)
		},
	)

	t.Run("no_layers",
		func(t *testing.T) {
			assert.Nil(t, merger.Merge())
			assert.Nil(t, merger.Merge(nil, nil))
		},
	)

	t.Run("explicit_nil_replaces",
		func(t *testing.T) {
			tc := merger.Merge(M{"a": M{"x": 1}}, M{"a": nil})
			assert.Equal(t, M{"a": nil}, tc)
		},
	)

	t.Run("mismatched_kinds",
		func(t *testing.T) {
			tc := merger.Merge(
				M{"a": M{"x": 1}, "b": A{1}, "c": "str"},
				M{"a": A{2}, "b": M{"y": 2}, "c": M{"z": 3}},
			)

			ec := M{"a": A{2}, "b": M{"y": 2}, "c": M{"z": 3}}
			assert.Equal(t, ec, tc)
		},
	)

	t.Run("self_merge",
		func(t *testing.T) {
			base := M{"a": M{"x": 1}, "s": "v"}
			tc := merger.Merge(base, base)

			assert.Equal(t, M{"a": M{"x": 1}, "s": "v"}, tc)
		},
	)
}

func TestMergeTypedContainers(t *testing.T) {
	tc := merger.Merge(
		map[string]string{"host": "localhost"},
		map[string]any{
			"ports":  []int{80},
			"labels": map[any]any{1: "one"},
		},
		M{"ports": []string{"443"}},
	)

	ec := M{
		"host":   "localhost",
		"ports":  A{80, "443"},
		"labels": M{"1": "one"},
	}

	assert.Equal(t, ec, tc)
}

func TestMergeDoesNotMutate(t *testing.T) {
	base := M{
		"db":    M{"host": "localhost"},
		"hosts": A{"alpha"},
	}
	overlay := M{
		"db":    M{"host": "prod"},
		"hosts": A{"beta"},
	}

	tc := merger.Merge(base, overlay)
	require.IsType(t, M{}, tc)

	tc.(M)["db"].(M)["host"] = "changed"
	tc.(M)["hosts"].(A)[0] = "changed"

	assert.Equal(t, M{"db": M{"host": "localhost"}, "hosts": A{"alpha"}}, base)
	assert.Equal(t, M{"db": M{"host": "prod"}, "hosts": A{"beta"}}, overlay)
}

func ExampleMerge() {
	defaults := M{
		"stat": M{
			"port":     1234,
			"username": "stat_writer",
			"dbname":   "stat",
		},
	}

	production := M{
		"stat": M{
			"host":     "stat.mydb.com",
			"username": "foo",
		},
	}

	connrs := merger.Merge(defaults, production).(M)
	stat := connrs["stat"].(M)

	fmt.Println(stat["host"], stat["port"], stat["username"], stat["dbname"])

	// Output:
	// stat.mydb.com 1234 foo stat
}
