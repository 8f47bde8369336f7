package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/vvka-141/csvmongo/pkg/csvmongo"
)

func TestToDocuments(t *testing.T) {
	table, err := csvmongo.NewTable(
		[]csvmongo.Column{
			{Name: "Unnamed: 0", Type: csvmongo.ColumnTypeInt},
			{Name: "Age", Type: csvmongo.ColumnTypeInt},
			{Name: "Saving accounts", Type: csvmongo.ColumnTypeString},
		},
		[][]any{
			{int64(0), int64(67), nil},
			{int64(1), int64(22), "little"},
		},
	)
	require.NoError(t, err)

	docs := toDocuments(table)
	require.Len(t, docs, 2)

	first, ok := docs[0].(bson.D)
	require.True(t, ok)
	assert.Equal(t, bson.D{
		{Key: "Unnamed: 0", Value: int64(0)},
		{Key: "Age", Value: int64(67)},
		{Key: "Saving accounts", Value: nil},
	}, first)

	second := docs[1].(bson.D)
	assert.Equal(t, "little", second[2].Value)
}

func TestToDocuments_PreservesHeaderOrder(t *testing.T) {
	table, err := csvmongo.NewTable(
		[]csvmongo.Column{
			{Name: "z", Type: csvmongo.ColumnTypeString},
			{Name: "a", Type: csvmongo.ColumnTypeString},
			{Name: "m", Type: csvmongo.ColumnTypeString},
		},
		[][]any{{"1", "2", "3"}},
	)
	require.NoError(t, err)

	doc := toDocuments(table)[0].(bson.D)
	keys := make([]string, len(doc))
	for i, e := range doc {
		keys[i] = e.Key
	}
	assert.Equal(t, []string{"z", "a", "m"}, keys)
}

func TestToDocuments_EmptyTable(t *testing.T) {
	table, err := csvmongo.NewTable([]csvmongo.Column{{Name: "a", Type: csvmongo.ColumnTypeNull}}, nil)
	require.NoError(t, err)

	assert.Empty(t, toDocuments(table))
}

func TestToDocuments_Marshals(t *testing.T) {
	table, err := csvmongo.NewTable(
		[]csvmongo.Column{
			{Name: "Credit amount", Type: csvmongo.ColumnTypeInt},
			{Name: "Rate", Type: csvmongo.ColumnTypeFloat},
			{Name: "Flag", Type: csvmongo.ColumnTypeBool},
		},
		[][]any{{int64(1169), 0.5, true}},
	)
	require.NoError(t, err)

	raw, err := bson.Marshal(toDocuments(table)[0])
	require.NoError(t, err)

	var back bson.M
	require.NoError(t, bson.Unmarshal(raw, &back))
	assert.Equal(t, int64(1169), back["Credit amount"])
	assert.Equal(t, 0.5, back["Rate"])
	assert.Equal(t, true, back["Flag"])
}
