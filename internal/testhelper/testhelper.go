package testhelper

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestDataPath returns the path of a fixture under the package's testdata
// directory, failing the test if the file does not exist.
func TestDataPath(t *testing.T, filename string) string {
	t.Helper()

	path := filepath.Clean(filepath.Join("testdata", filename))

	_, err := os.Stat(path)
	require.NoError(t, err, "test data file %s must exist", filename)

	return path
}

func LoadTestDataFile(t *testing.T, filename string) []byte {
	t.Helper()

	b, err := os.ReadFile(TestDataPath(t, filename))
	require.NoError(t, err)

	return b
}
