package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPDFLoader_RejectsNonPDF(t *testing.T) {
	l := NewPDFLoader()
	_, err := l.Load("notes.txt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported document type")
}

func TestPDFLoader_MissingFile(t *testing.T) {
	l := NewPDFLoader()
	_, err := l.Load(filepath.Join(t.TempDir(), "missing.pdf"))
	assert.Error(t, err)
}

func TestPDFLoader_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.pdf")
	require.NoError(t, os.WriteFile(path, []byte("not a pdf at all"), 0o644))

	l := NewPDFLoader()
	_, err := l.Load(path)
	assert.Error(t, err)
}

func TestPDFLoader_ExtensionCaseInsensitive(t *testing.T) {
	l := NewPDFLoader()
	// .PDF passes the extension gate and fails later on the missing file.
	_, err := l.Load(filepath.Join(t.TempDir(), "missing.PDF"))
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "unsupported document type")
}

func TestHashString_StableAndShort(t *testing.T) {
	assert.Equal(t, hashString("a/b.pdf"), hashString("a/b.pdf"))
	assert.Len(t, hashString("a/b.pdf"), 16)
	assert.NotEqual(t, hashString("a.pdf"), hashString("b.pdf"))
}
