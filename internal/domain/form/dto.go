package form

// OpenRequest opens a create form, or an edit form when ID is set.
type OpenRequest struct {
	Kind string `json:"kind"`
	ID   *uint  `json:"id,omitempty"`
}

type UpdateFieldRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}
