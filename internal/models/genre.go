package models

// Genre tags a title with a style: sci-fi, rock, drama and so on.
// A title carries any number of genres through the genre_titles join table.
type Genre struct {
	ID   uint   `json:"-" gorm:"primaryKey"`
	Name string `json:"name" gorm:"not null;size:256"`
	Slug string `json:"slug" gorm:"uniqueIndex;not null;size:50"`
}

func (Genre) TableName() string {
	return "genres"
}
