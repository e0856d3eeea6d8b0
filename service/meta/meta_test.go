package meta

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
)

type document struct {
	Pool struct {
		CapacityMB int `json:"capacityMB" yaml:"capacityMB" toml:"capacityMB"`
	} `json:"pool" yaml:"pool" toml:"pool"`
}

func TestService_Load(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("MEMSIM_META_CAP", "3072")
	files := map[string]string{
		"doc.yaml": "pool:\n  capacityMB: ${env.MEMSIM_META_CAP}\n",
		"doc.toml": "[pool]\ncapacityMB = ${env.MEMSIM_META_CAP}\n",
		"doc.json": `{"pool":{"capacityMB":${env.MEMSIM_META_CAP}}}`,
		"doc.txt":  "capacityMB=1",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	srv := New(afs.New(), "file://"+dir)
	for _, name := range []string{"doc.yaml", "doc.toml", "doc.json"} {
		t.Run(name, func(t *testing.T) {
			doc := &document{}
			require.NoError(t, srv.Load(context.Background(), name, doc))
			assert.Equal(t, 3072, doc.Pool.CapacityMB)
		})
	}
	assert.Error(t, srv.Load(context.Background(), "doc.txt", &document{}))
	assert.Error(t, srv.Load(context.Background(), "missing.yaml", &document{}))

	absolute := New(afs.New(), "")
	doc := &document{}
	require.NoError(t, absolute.Load(context.Background(), filepath.Join(dir, "doc.yaml"), doc))
	assert.Equal(t, 3072, doc.Pool.CapacityMB)
}
