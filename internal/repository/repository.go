package repository

// Page bounds a listing query. Offset/Limit are pre-computed by the caller.
type Page struct {
	Offset int
	Limit  int
}
