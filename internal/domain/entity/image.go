package entity

type Image struct {
	ID       string
	BikeID   string
	URL      string
	Path     string
	MimeType string
	Filename string
}
