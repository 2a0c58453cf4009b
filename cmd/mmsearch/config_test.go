package main

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"

	"github.com/Aleph-Alpha/multimodal-search/v1/node"
)

func TestLoadConfigDefaults(t *testing.T) {
	v, err := initViper("")
	require.NoError(t, err)

	cfg, err := loadConfig(v)
	require.NoError(t, err)

	assert.Equal(t, "multimodal_index", cfg.Search.CollectionName)
	assert.Equal(t, 512, cfg.Search.Dimension)
	assert.Equal(t, 5, cfg.Search.DefaultTopK)
	assert.Equal(t, 500*time.Millisecond, cfg.Search.Retry.InitialInterval)
	assert.Equal(t, "localhost", cfg.Qdrant.Endpoint)
	assert.Equal(t, 6334, cfg.Qdrant.Port)
	assert.Equal(t, 10*time.Second, cfg.Qdrant.Timeout)
	assert.Equal(t, "images", cfg.ImageStore.BucketName)
	assert.NoError(t, cfg.Search.Validate())
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("MMSEARCH_QDRANT_ENDPOINT", "qdrant.internal")
	t.Setenv("MMSEARCH_QDRANT_TIMEOUT", "3s")
	t.Setenv("MMSEARCH_SEARCH_COLLECTION_NAME", "products")
	t.Setenv("MMSEARCH_SEARCH_RETRY_MAX_RETRIES", "2")
	t.Setenv("MMSEARCH_IMAGE_STORE_USE_SSL", "true")

	v, err := initViper("")
	require.NoError(t, err)
	cfg, err := loadConfig(v)
	require.NoError(t, err)

	assert.Equal(t, "qdrant.internal", cfg.Qdrant.Endpoint)
	assert.Equal(t, 3*time.Second, cfg.Qdrant.Timeout)
	assert.Equal(t, "products", cfg.Search.CollectionName)
	assert.Equal(t, 2, cfg.Search.Retry.MaxRetries)
	assert.True(t, cfg.ImageStore.UseSSL)
}

// Every documented env tag must be the variable viper actually reads for
// that key. The embedding section documents its own EMBEDDING_* variables.
func TestEnvTagsMatchViperKeys(t *testing.T) {
	v, err := initViper("")
	require.NoError(t, err)

	var walk func(prefix string, typ reflect.Type)
	walk = func(prefix string, typ reflect.Type) {
		for i := 0; i < typ.NumField(); i++ {
			f := typ.Field(i)
			key := prefix + "." + f.Tag.Get("yaml")
			if f.Type.Kind() == reflect.Struct {
				walk(key, f.Type)
				continue
			}
			env, ok := f.Tag.Lookup("env")
			if !ok {
				continue
			}
			assert.True(t, v.IsSet(key), "no default for %s", key)
			want := "MMSEARCH_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
			assert.Equal(t, want, env, key)
		}
	}

	app := reflect.TypeOf(AppConfig{})
	for i := 0; i < app.NumField(); i++ {
		section := app.Field(i)
		if section.Name == "Embedding" {
			continue
		}
		walk(section.Tag.Get("yaml"), section.Type)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mmsearch.yaml")
	content := `
search:
  collection_name: catalog
  default_top_k: 10
qdrant:
  endpoint: qdrant.example
  port: 7000
embedding:
  endpoint: http://inference:8080
  dimensions: 512
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	v, err := initViper(path)
	require.NoError(t, err)
	cfg, err := loadConfig(v)
	require.NoError(t, err)

	assert.Equal(t, "catalog", cfg.Search.CollectionName)
	assert.Equal(t, 10, cfg.Search.DefaultTopK)
	assert.Equal(t, 512, cfg.Search.Dimension)
	assert.Equal(t, "qdrant.example", cfg.Qdrant.Endpoint)
	assert.Equal(t, 7000, cfg.Qdrant.Port)
	assert.Equal(t, "http://inference:8080", cfg.Embedding.Endpoint)
}

func TestComponentsFor(t *testing.T) {
	for _, name := range knownNodes {
		c, ok := componentsFor(name)
		assert.True(t, ok, name)
		assert.True(t, c.nodes, name)
	}

	c, _ := componentsFor(node.NameVectorQuery)
	assert.Equal(t, components{index: true, nodes: true}, c)

	c, _ = componentsFor(node.NameEmbed)
	assert.False(t, c.index)

	_, ok := componentsFor("bogus-node")
	assert.False(t, ok)
}

func TestAppGraphValidates(t *testing.T) {
	v, err := initViper("")
	require.NoError(t, err)
	cfg, err := loadConfig(v)
	require.NoError(t, err)

	for _, name := range knownNodes {
		c, _ := componentsFor(name)
		assert.NoError(t, fx.ValidateApp(appOptions(cfg, c)...), name)
	}
}

func TestReadInputs(t *testing.T) {
	cmder := &runCommander{input: "-"}
	inputs, err := cmder.readInputs(strings.NewReader(`{"text_vector":[0.1,0.2],"top_k":3}`))
	require.NoError(t, err)
	assert.Equal(t, []any{0.1, 0.2}, inputs["text_vector"])
	assert.Equal(t, float64(3), inputs["top_k"])

	cmder.input = ""
	inputs, err = cmder.readInputs(nil)
	require.NoError(t, err)
	assert.Empty(t, inputs)

	cmder.input = "-"
	_, err = cmder.readInputs(strings.NewReader(`[1,2]`))
	assert.Error(t, err)
}

func TestRunRejectsUnknownNode(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"run", "bogus-node"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown node")
}

func TestWriteResponse(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeResponse(&buf, node.Success(map[string]any{"id": 1})))
	assert.Contains(t, buf.String(), `"success": true`)

	buf.Reset()
	err := writeResponse(&buf, node.Response{Error: &node.Error{Code: 400, Name: "vector-query", Kind: "validation"}})
	assert.ErrorIs(t, err, errNodeFailed)
	assert.Contains(t, buf.String(), `"code": 400`)
}
