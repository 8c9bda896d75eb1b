package word

// MinLength is the shortest word, in characters, a list may contain.
const MinLength = 3

type (
	// Record is a single word of the day as served by the remote endpoint.
	Record struct {
		Word       string `json:"word"`
		Definition string `json:"definition,omitempty"`
	}

	List []string

	// Content is what a source produced for today. The zero value means no data.
	Content struct {
		Record *Record
		List   List
	}
)

func (c Content) Empty() bool {
	return c.Record == nil && len(c.List) == 0
}
