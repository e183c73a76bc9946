package model

import "time"

// Document is an attachment tied to a report. Rows are append-only and never
// versioned; only metadata is stored, the file itself lives at FileURL.
//
// Fields:
//  ID         – primary key identifier.
//  ReportID   – owning report (reports.id).
//  FileName   – original file name.
//  FileURL    – storage location of the file.
//  FileType   – MIME type or extension.
//  UploadedAt – upload timestamp.
type Document struct {
	ID         uint64    // documents.id
	ReportID   uint64    // documents.report_id
	FileName   string    // documents.file_name
	FileURL    string    // documents.file_url
	FileType   string    // documents.file_type
	UploadedAt time.Time // documents.uploaded_at
}
