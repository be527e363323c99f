package store

import (
	"database/sql/driver"
	"fmt"
	"strings"

	"modernc.org/sqlite"
)

// sqliteUnicodeLower is registered on every modernc SQLite connection and
// folds with strings.ToLower, matching the patterns built by ContainsPattern.
const sqliteUnicodeLower = "unicode_lower"

func init() {
	if err := sqlite.RegisterDeterministicScalarFunction(sqliteUnicodeLower, 1, unicodeLower); err != nil {
		panic(fmt.Sprintf("register sqlite function %s: %v", sqliteUnicodeLower, err))
	}
}

func unicodeLower(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case nil:
		return nil, nil
	case string:
		return strings.ToLower(v), nil
	case []byte:
		return strings.ToLower(string(v)), nil
	default:
		return strings.ToLower(fmt.Sprint(v)), nil
	}
}
