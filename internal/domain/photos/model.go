package photos

// Photo es una foto asociada a un gato. Nunca existe sin gato dueño:
// se crea junto al gato o vía "only_photos" y se borra sola o en cascada.
type Photo struct {
	ID    int64
	URL   string
	CatID int64

	// FileID identifica el objeto remoto (key en el object store).
	// Vacío en revisiones que solo guardan metadata local.
	FileID string
}
