package dal

import (
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueries(t *testing.T) {
	tests := []struct {
		name     string
		query    squirrel.Sqlizer
		wantSQL  string
		wantArgs []any
	}{
		{
			name:     "add word",
			query:    AddWordQuery("kahvi"),
			wantSQL:  "INSERT OR IGNORE INTO words (word) VALUES (?)",
			wantArgs: []any{"kahvi"},
		},
		{
			name:    "list words",
			query:   ListWordsQuery(),
			wantSQL: "SELECT word FROM words ORDER BY rowid",
		},
		{
			name:    "count words",
			query:   CountWordsQuery(),
			wantSQL: "SELECT COUNT(*) FROM words",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args, err := tt.query.ToSql()
			require.NoError(t, err)
			assert.Equal(t, tt.wantSQL, sql)
			require.Len(t, args, len(tt.wantArgs))
			for i := range tt.wantArgs {
				assert.Equal(t, tt.wantArgs[i], args[i])
			}
		})
	}
}
