package cats

import (
	"time"

	"animal-shelter/internal/domain/photos"
)

// Gender define el sexo del gato.
// @Enum male, female
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Cat representa la ficha de un gato del refugio.
type Cat struct {
	ID         int64
	Name       string
	Age        *int // nil = edad desconocida
	Gender     Gender
	About      string
	Sterilized bool

	RegisteredAt time.Time
	Views        int64

	// StorageFolder es el identificador de la carpeta remota del gato.
	// Invariante: está seteado si y solo si el gato tiene al menos una
	// foto subida al object store.
	StorageFolder string

	Photos []photos.Photo
}
