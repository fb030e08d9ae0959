package domain

import "time"

type AnimalId = int64

const (
	GenreMale    = "male"
	GenreFemale  = "female"
	GenreUnknown = "unknown"
)

// Animal represents one adoption record
type Animal struct {
	Id           AnimalId
	Name         string
	Description  string
	Type         string
	Size         string
	Age          string
	Genre        string
	Adopted      bool
	Photos       AttachmentSet
	RegisterDate time.Time
}

// AnimalUpdate carries the editable fields of an animal record.
// Nil Photos means the attachment set is left untouched.
type AnimalUpdate struct {
	Name        string
	Description string
	Type        string
	Size        string
	Age         string
	Genre       string
	Adopted     bool
	Photos      *AttachmentSet
}
