package models

// Title is a reviewable work: a film, a book, an album.
//
// Rating is not a stored column; list/detail queries annotate it with the
// average review score (see the title repository). Nil means no reviews yet.
type Title struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"not null;size:256;uniqueIndex:idx_titles_name_year_category"`
	Year        int    `json:"year" gorm:"not null;uniqueIndex:idx_titles_name_year_category"`
	Description string `json:"description"`

	CategoryID *uint     `json:"-" gorm:"uniqueIndex:idx_titles_name_year_category"`
	Category   *Category `json:"category" gorm:"constraint:OnDelete:SET NULL"`
	Genres     []Genre   `json:"genre" gorm:"many2many:genre_titles"`

	Rating *float64 `json:"rating" gorm:"->;-:migration"`
}

func (Title) TableName() string {
	return "titles"
}

// GenreTitle is the explicit genre<->title join row. Deleting either side
// removes the row.
type GenreTitle struct {
	TitleID uint  `gorm:"primaryKey"`
	Title   Title `gorm:"constraint:OnDelete:CASCADE"`
	GenreID uint  `gorm:"primaryKey"`
	Genre   Genre `gorm:"constraint:OnDelete:CASCADE"`
}

func (GenreTitle) TableName() string {
	return "genre_titles"
}
