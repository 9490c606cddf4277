package core

// Row represents a single record retrieved from the database, keyed by
// column name. Column names are unique within a row; the ordered column
// list lives on the ResultHandle that produced the row.
type Row map[string]any

// Params is the ordered list of values substituted positionally for the
// `?` placeholders in a query. A nil Params is the "no substitution
// requested" sentinel: the query text is executed verbatim as
// caller-trusted SQL, even if it contains `?`. A non-nil empty Params
// still requests substitution, so any placeholder in the text is a
// usage error.
type Params []any
