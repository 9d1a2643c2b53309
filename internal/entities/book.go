package entities

// Book is a catalog entry. Title and Author together identify a book; there
// is no separate ID.
type Book struct {
	Title   string `yaml:"title" json:"title"`
	Author  string `yaml:"author" json:"author"`
	Cover   string `yaml:"cover" json:"cover"`
	Summary string `yaml:"summary,omitempty" json:"summary,omitempty"`
}

// BookRef is the identity pair of a Book.
type BookRef struct {
	Title  string `json:"title" form:"title"`
	Author string `json:"author" form:"author"`
}

// Ref returns the identity of the book.
func (b Book) Ref() BookRef {
	return BookRef{Title: b.Title, Author: b.Author}
}

// Is reports whether the book has the given identity. Comparison is exact and
// case-sensitive.
func (b Book) Is(ref BookRef) bool {
	return b.Title == ref.Title && b.Author == ref.Author
}
