package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readAllRecords(t *testing.T, filePath string) [][]string {
	t.Helper()
	var records [][]string
	_, err := ReadCsvFileToFn(filePath,
		func(source string, record []string, recordNum int, err error) error {
			if err != nil {
				return err
			}
			records = append(records, record)
			return nil
		})
	require.NoError(t, err)
	return records
}

func TestCsvWriteThenReadRoundTrip(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "data.csv")
	cwc, isNew, err := OpenCsvWriteCloser(filePath, false, 0644)
	require.NoError(t, err)
	assert.True(t, isNew)
	require.NoError(t, cwc.Write([]string{"a", "b"}))
	require.NoError(t, cwc.Write([]string{"1", "2"}))
	require.NoError(t, cwc.Close())

	records := readAllRecords(t, filePath)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"a", "b"}, records[0])
	assert.Equal(t, []string{"1", "2"}, records[1])
}

func TestCsvWriteCloserAppends(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "data.csv")
	cwc, isNew, err := OpenCsvWriteCloser(filePath, false, 0644)
	require.NoError(t, err)
	assert.True(t, isNew)
	require.NoError(t, cwc.Write([]string{"first"}))
	require.NoError(t, cwc.Close())

	cwc, isNew, err = OpenCsvWriteCloser(filePath, false, 0644)
	require.NoError(t, err)
	assert.False(t, isNew)
	require.NoError(t, cwc.Write([]string{"second"}))
	require.NoError(t, cwc.Close())

	records := readAllRecords(t, filePath)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"second"}, records[1])
}

func TestCsvWriteCloserDelExisting(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(filePath, []byte("old\n"), 0644))

	cwc, isNew, err := OpenCsvWriteCloser(filePath, true, 0644)
	require.NoError(t, err)
	assert.True(t, isNew)
	require.NoError(t, cwc.Write([]string{"new"}))
	require.NoError(t, cwc.Close())

	records := readAllRecords(t, filePath)
	require.Len(t, records, 1)
	assert.Equal(t, []string{"new"}, records[0])
}

func TestCsvGzipRoundTrip(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "data.csv.gz")
	cwc, _, err := OpenCsvWriteCloser(filePath, false, 0644)
	require.NoError(t, err)
	require.NoError(t, cwc.Write([]string{"x", "y"}))
	require.NoError(t, cwc.Close())

	// OpenReadFile decompresses transparently by suffix.
	records := readAllRecords(t, filePath)
	require.Len(t, records, 1)
	assert.Equal(t, []string{"x", "y"}, records[0])
}

func TestReadCsvFileToFnSkipsComments(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(filePath,
		[]byte("# header comment\na,b\n"), 0644))
	records := readAllRecords(t, filePath)
	require.Len(t, records, 1)
	assert.Equal(t, []string{"a", "b"}, records[0])
}

func TestReadCsvFileToFnMissingFile(t *testing.T) {
	_, err := ReadCsvFileToFn(
		filepath.Join(t.TempDir(), "absent.csv"),
		func(source string, record []string, recordNum int, err error) error {
			return err
		})
	assert.Error(t, err)
}
