package listing

type SetCollectionRequest struct {
	Collection string `json:"collection"`
}

// FilterRequest sets one filter; an empty Value clears it.
type FilterRequest struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}
