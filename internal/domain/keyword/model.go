package keyword

// Keyword is a shared tag. Datasets reference keywords weakly: removing
// a dataset never removes the keywords it pointed at.
type Keyword struct {
	ID   int
	Name string
}
