package dal

import (
	"github.com/Masterminds/squirrel"
)

const wordsTable = "words"

// CreateWordsTableQuery creates the word catalog. Insertion order (rowid) is the
// list order the daily selection depends on.
const CreateWordsTableQuery = `CREATE TABLE IF NOT EXISTS words (
	word       TEXT PRIMARY KEY,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

// AddWordQuery builds a query to add a word, keeping the existing row on conflict
func AddWordQuery(word string) squirrel.Sqlizer {
	return squirrel.Insert(wordsTable).
		Options("OR IGNORE").
		Columns("word").
		Values(word)
}

// ListWordsQuery builds a query to list all words in insertion order
func ListWordsQuery() squirrel.Sqlizer {
	return squirrel.Select("word").
		From(wordsTable).
		OrderBy("rowid")
}

// CountWordsQuery builds a query to count words
func CountWordsQuery() squirrel.Sqlizer {
	return squirrel.Select("COUNT(*)").
		From(wordsTable)
}
