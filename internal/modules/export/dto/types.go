package dto

// CSVInput exports the owner's sessions, or every user's with the OwnerId
// column when OwnerID is empty. Base "-" skips the file.
type CSVInput struct {
	OwnerID string
	Base    string
	Copy    bool
}

type CSVOutput struct {
	Path    string
	Rows    int
	Copied  bool
	Content string
}

type PDFInput struct {
	OwnerID  string
	UserName string
	Base     string
}

type PDFOutput struct {
	Path  string
	Rows  int
	Pages int
}

type DashboardInput struct {
	OwnerID  string
	UserName string
}

type DashboardOutput struct {
	Path  string
	Lines int
}
