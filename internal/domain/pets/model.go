package pets

import "time"

// Category define las categorías de mascotas adoptables.
// @Enum cat, dog, rabbit, fish, bird
type Category string

const (
	CategoryCat    Category = "cat"
	CategoryDog    Category = "dog"
	CategoryRabbit Category = "rabbit"
	CategoryFish   Category = "fish"
	CategoryBird   Category = "bird"
)

// Owner identifica al dueño que publicó la mascota.
type Owner struct {
	Name  string
	Email string
}

// Pet representa una mascota publicada para adopción.
type Pet struct {
	ID string

	Name     string
	Age      int
	Category Category
	Location string

	ShortDescription string
	LongDescription  string
	ImageURL         string

	Owner   Owner
	Adopted bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidCategory valida contra el enum soportado.
func ValidCategory(c Category) bool {
	switch c {
	case CategoryCat, CategoryDog, CategoryRabbit, CategoryFish, CategoryBird:
		return true
	default:
		return false
	}
}
