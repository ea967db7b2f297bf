package pinglog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempCsv(t *testing.T, body string) string {
	t.Helper()
	filePath := filepath.Join(t.TempDir(), "ping_log.csv")
	require.NoError(t, os.WriteFile(filePath, []byte(body), 0644))
	return filePath
}

func TestReadFileSkipsHeader(t *testing.T) {
	filePath := writeTempCsv(t,
		"timestamp,min_ms,avg_ms,max_ms,packet_loss\n"+
			"2024-11-03 14:00:00,10.1,20.2,40.4,0.0\n"+
			"2024-11-03 14:00:05,11.0,22.0,44.0,33.3\n")
	samples, err := ReadFile(filePath)
	require.NoError(t, err)
	require.Len(t, samples, 2)

	s := samples[0]
	assert.Equal(t, time.Date(2024, 11, 3, 14, 0, 0, 0, time.UTC), s.Time)
	assert.Equal(t, 10.1, s.MinMs)
	assert.Equal(t, 20.2, s.AvgMs)
	assert.Equal(t, 40.4, s.MaxMs)
	assert.Equal(t, 0.0, s.PacketLossPct)
	assert.False(t, s.Synthetic)
	assert.Equal(t, 33.3, samples[1].PacketLossPct)
}

func TestReadFileWithoutHeader(t *testing.T) {
	filePath := writeTempCsv(t,
		"2024-11-03 14:00:00,10,20,40,0\n")
	samples, err := ReadFile(filePath)
	require.NoError(t, err)
	assert.Len(t, samples, 1)
}

func TestReadFilePreservesFileOrder(t *testing.T) {
	filePath := writeTempCsv(t,
		"2024-11-03 14:00:10,1,2,3,0\n"+
			"2024-11-03 14:00:00,1,2,3,0\n")
	samples, err := ReadFile(filePath)
	require.NoError(t, err)
	require.Len(t, samples, 2)
	assert.True(t, samples[0].Time.After(samples[1].Time))

	SortByTime(samples)
	assert.True(t, samples[0].Time.Before(samples[1].Time))
}

func TestReadFileMalformedRecordFailsFile(t *testing.T) {
	filePath := writeTempCsv(t,
		"2024-11-03 14:00:00,10,20,40,0\n"+
			"2024-11-03 14:00:05,10,not-a-number,40,0\n")
	_, err := ReadFile(filePath)
	assert.Error(t, err)
}

func TestReadFileBadTimestamp(t *testing.T) {
	filePath := writeTempCsv(t,
		"11/03/2024 14:00:00,10,20,40,0\n")
	_, err := ReadFile(filePath)
	assert.Error(t, err)
}

func TestParseSampleRecordFieldCount(t *testing.T) {
	_, err := parseSampleRecord([]string{"2024-11-03 14:00:00", "10", "20"})
	assert.Error(t, err)
}
