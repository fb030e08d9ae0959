package domain

// User is an authenticated editor. The system runs with a single
// config-provisioned admin account.
type User struct {
	Name  string
	Admin bool
}

// PendingFile is a validated upload awaiting the transform pipeline.
type PendingFile struct {
	Filename string
	MimeType string
	Data     []byte
}
