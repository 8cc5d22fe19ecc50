package excel

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadMatrixCSV(t *testing.T) {
	path := writeTempCSV(t, "price,quantity\n10.5,3\n20,\n1000,abc\n")

	reader := NewDataReader(path)
	matrix, err := reader.ReadMatrix()
	require.NoError(t, err)

	assert.Equal(t, "data.csv", matrix.Source)
	require.Len(t, matrix.Series, 2)

	price := matrix.Series[0]
	assert.Equal(t, "price", price.Name)
	assert.Equal(t, []float64{10.5, 20, 1000}, price.Values)
	assert.False(t, price.Key.String() == "")

	quantity := matrix.Series[1]
	assert.Equal(t, "quantity", quantity.Name)
	require.Len(t, quantity.Values, 3)
	assert.Equal(t, 3.0, quantity.Values[0])
	assert.True(t, math.IsNaN(quantity.Values[1]), "blank cell becomes NaN")
	assert.True(t, math.IsNaN(quantity.Values[2]), "non-numeric cell becomes NaN")
}

func TestReadMatrixRaggedRows(t *testing.T) {
	path := writeTempCSV(t, "a,b,c\n1,2\n4,5,6\n")

	reader := NewDataReader(path)
	matrix, err := reader.ReadMatrix()
	require.NoError(t, err)

	require.Len(t, matrix.Series, 3)
	c := matrix.Series[2]
	assert.True(t, math.IsNaN(c.Values[0]), "missing trailing cell becomes NaN")
	assert.Equal(t, 6.0, c.Values[1])
}

func TestReadMatrixHeaderOnly(t *testing.T) {
	path := writeTempCSV(t, "a,b\n")

	reader := NewDataReader(path)
	_, err := reader.ReadMatrix()
	assert.Error(t, err)
}

func TestReadMatrixMissingFile(t *testing.T) {
	reader := NewDataReader(filepath.Join(t.TempDir(), "nope.csv"))
	_, err := reader.ReadMatrix()
	assert.Error(t, err)
}

func TestReadMatrixBlankHeader(t *testing.T) {
	path := writeTempCSV(t, "a,\n1,2\n")

	reader := NewDataReader(path)
	matrix, err := reader.ReadMatrix()
	require.NoError(t, err)

	require.Len(t, matrix.Series, 2)
	assert.Equal(t, "column_2", matrix.Series[1].Name)
}
