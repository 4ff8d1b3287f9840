package envexp_test

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lwmacct/251215-go-pkg-envexp/pkg/envexp"
)

func TestExpand(t *testing.T) {
	tests := []struct {
		name    string
		set     *envexp.Set
		env     envexp.MapEnv
		want    map[string]string
		wantEnv map[string]string
	}{
		{
			name:    "simple reference",
			set:     envexp.NewSet("SOME", "${OTHER}"),
			env:     envexp.MapEnv{"OTHER": "bar"},
			want:    map[string]string{"SOME": "bar"},
			wantEnv: map[string]string{"OTHER": "bar", "SOME": "bar"},
		},
		{
			name:    "default value",
			set:     envexp.NewSet("A", "${B:-fallback}"),
			env:     envexp.MapEnv{},
			want:    map[string]string{"A": "fallback"},
			wantEnv: map[string]string{"A": "fallback"},
		},
		{
			name:    "escaped marker kept literal",
			set:     envexp.NewSet("PASSWORD", `pas\$word`),
			env:     envexp.MapEnv{},
			want:    map[string]string{"PASSWORD": "pas$word"},
			wantEnv: map[string]string{"PASSWORD": "pas$word"},
		},
		{
			name:    "environment wins",
			set:     envexp.NewSet("KEY", "${OTHER}"),
			env:     envexp.MapEnv{"KEY": "literalX", "OTHER": "y"},
			want:    map[string]string{"KEY": "literalX"},
			wantEnv: map[string]string{"KEY": "literalX", "OTHER": "y"},
		},
		{
			name:    "chained references",
			set:     envexp.NewSet("A", "${B}", "B", "${C}", "C", "final"),
			env:     envexp.MapEnv{},
			want:    map[string]string{"A": "final", "B": "final", "C": "final"},
			wantEnv: map[string]string{"A": "final", "B": "final", "C": "final"},
		},
		{
			name:    "literal dollar in environment value",
			set:     envexp.NewSet("PASSWORD", "${PASSWORD}"),
			env:     envexp.MapEnv{"PASSWORD": "pas$word"},
			want:    map[string]string{"PASSWORD": "pas$word"},
			wantEnv: map[string]string{"PASSWORD": "pas$word"},
		},
		{
			name:    "environment value is escape resolved",
			set:     envexp.NewSet("A", "ignored"),
			env:     envexp.MapEnv{"A": `x\$y`},
			want:    map[string]string{"A": "x$y"},
			wantEnv: map[string]string{"A": "x$y"},
		},
		{
			name:    "escaped value referenced by later entry",
			set:     envexp.NewSet("A", `pas\$word`, "B", "${A}"),
			env:     envexp.MapEnv{},
			want:    map[string]string{"A": "pas$word", "B": "pas$word"},
			wantEnv: map[string]string{"A": "pas$word", "B": "pas$word"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := envexp.Expand(tt.set, tt.env)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Map())
			assert.Equal(t, tt.wantEnv, map[string]string(tt.env))
		})
	}
}

func TestExpand_Idempotent(t *testing.T) {
	set := envexp.NewSet("A", "x", "B", "y z")

	first, err := envexp.Expand(set, envexp.MapEnv{})
	require.NoError(t, err)
	second, err := envexp.Expand(first, envexp.MapEnv{})
	require.NoError(t, err)

	assert.Equal(t, set.Map(), first.Map())
	assert.Equal(t, first.Map(), second.Map())
}

func TestExpand_KeepsOrderAndInput(t *testing.T) {
	set := envexp.NewSet("Z", "${A}", "A", "1", "M", "${Z}-${A}")

	got, err := envexp.Expand(set, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"Z", "A", "M"}, got.Keys())
	assert.Equal(t, map[string]string{"Z": "1", "A": "1", "M": "1-1"}, got.Map())

	raw, _ := set.Get("M")
	assert.Equal(t, "${Z}-${A}", raw, "input set must not be mutated")
}

func TestExpand_IgnoreEnv(t *testing.T) {
	env := envexp.MapEnv{"OTHER": "bar", "SOME": "from-env"}

	got, err := envexp.Expand(envexp.NewSet("SOME", "${OTHER:-none}"), env, envexp.WithIgnoreEnv())
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"SOME": "none"}, got.Map())
	assert.Equal(t, envexp.MapEnv{"OTHER": "bar", "SOME": "from-env"}, env, "ignored env must be untouched")
}

func TestExpand_ProcessEnv(t *testing.T) {
	t.Setenv("ENVEXP_TEST_HOST", "example.com")
	t.Setenv("ENVEXP_TEST_URL", "")

	got, err := envexp.Expand(
		envexp.NewSet("ENVEXP_TEST_URL", "https://${ENVEXP_TEST_HOST}"),
		envexp.ProcessEnv{},
	)
	require.NoError(t, err)

	// 环境中已存在的 key 直接使用环境值，即使为空
	value, _ := got.Get("ENVEXP_TEST_URL")
	assert.Empty(t, value)
}

func TestExpand_ProcessEnvMerge(t *testing.T) {
	t.Setenv("ENVEXP_TEST_BASE", "/srv")
	// 注册清理后删除，确保 key 在展开前不存在
	t.Setenv("ENVEXP_TEST_DATA", "")
	require.NoError(t, os.Unsetenv("ENVEXP_TEST_DATA"))

	_, err := envexp.Expand(
		envexp.NewSet("ENVEXP_TEST_DATA", "${ENVEXP_TEST_BASE}/data"),
		envexp.ProcessEnv{},
	)
	require.NoError(t, err)

	value, ok := os.LookupEnv("ENVEXP_TEST_DATA")
	require.True(t, ok)
	assert.Equal(t, "/srv/data", value)
}

func TestExpand_CycleReportsDepth(t *testing.T) {
	env := envexp.MapEnv{}
	set := envexp.NewSet("A", "${B}", "B", "${A}")

	_, err := envexp.Expand(set, env, envexp.WithMaxSteps(16))
	require.ErrorIs(t, err, envexp.ErrDepthExceeded)

	var depthErr *envexp.DepthError
	require.ErrorAs(t, err, &depthErr)
	assert.Equal(t, "A", depthErr.Key)
	assert.Equal(t, 17, depthErr.Steps, "limit is max steps plus the markers of the raw value")
	assert.Empty(t, env, "failed expansion must not merge into env")
}

type failingEnv struct{ envexp.MapEnv }

var errReadOnly = errors.New("read-only")

func (failingEnv) Set(string, string) error { return errReadOnly }

func TestExpand_MergeError(t *testing.T) {
	_, err := envexp.Expand(envexp.NewSet("A", "1"), failingEnv{envexp.MapEnv{}})
	require.ErrorIs(t, err, errReadOnly)
	assert.Contains(t, err.Error(), "set A")
}

// strictEnv 只接受大写 key。
type strictEnv struct{ envexp.MapEnv }

func (strictEnv) Validate(key, _ string) error {
	if strings.ToUpper(key) != key {
		return fmt.Errorf("lowercase key %q", key)
	}

	return nil
}

func TestExpand_ValidateBeforeMerge(t *testing.T) {
	env := strictEnv{envexp.MapEnv{}}

	_, err := envexp.Expand(envexp.NewSet("A", "1", "b", "2"), env)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "set b")
	assert.Empty(t, env.MapEnv, "earlier entries must not be written when a later one is rejected")
}

func TestExpand_ProcessEnvRejectsInvalidKey(t *testing.T) {
	t.Setenv("ENVEXP_TEST_OK", "")
	require.NoError(t, os.Unsetenv("ENVEXP_TEST_OK"))

	for _, bad := range []string{"BAD=KEY", ""} {
		_, err := envexp.Expand(envexp.NewSet("ENVEXP_TEST_OK", "1", bad, "2"), envexp.ProcessEnv{})
		require.Error(t, err, "key %q", bad)

		_, ok := os.LookupEnv("ENVEXP_TEST_OK")
		assert.False(t, ok, "key %q: earlier entry must not reach the process env", bad)
	}
}

func TestProcessEnv_Validate(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr bool
	}{
		{name: "plain", key: "A", value: "1"},
		{name: "empty value", key: "A", value: ""},
		{name: "empty key", key: "", value: "1", wantErr: true},
		{name: "equals in key", key: "A=B", value: "1", wantErr: true},
		{name: "nul in key", key: "A\x00", value: "1", wantErr: true},
		{name: "nul in value", key: "A", value: "x\x00y", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := envexp.ProcessEnv{}.Validate(tt.key, tt.value)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
