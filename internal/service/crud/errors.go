package crud

import "errors"

var errNoRowInserted = errors.New("insert affected no rows")
