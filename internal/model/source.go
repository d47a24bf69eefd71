// Package model defines the data structures shared by the grading core,
// the adapters and the UI.
package model

// Path represents a file system path.
type Path string

// Student is one submission folder discovered under the submissions root.
type Student struct {
	ID   string
	Name string
	Dir  Path
}

// AssetPresence records whether a student submitted one course asset.
type AssetPresence struct {
	AssetID string
	Type    AssetType
	Found   bool
	// File is the notebook file name for notebook assets.
	File string
}

// SubmissionListing is what was found in one student folder.
type SubmissionListing struct {
	Student Student
	Assets  []AssetPresence
}
