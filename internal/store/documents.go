package store

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/vvka-141/csvmongo/pkg/csvmongo"
)

// toDocuments converts each table row to a flat document keyed by column
// name, in header order. Nil cells become BSON null.
func toDocuments(table *csvmongo.Table) []interface{} {
	names := table.ColumnNames()
	docs := make([]interface{}, table.RowCount())
	for i := range docs {
		row := table.Row(i)
		doc := make(bson.D, len(names))
		for j, name := range names {
			doc[j] = bson.E{Key: name, Value: row[j]}
		}
		docs[i] = doc
	}
	return docs
}
