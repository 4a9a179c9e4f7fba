package ports

import "context"

// ReportStorage stores generated report files and returns the object
// path they were written to.
type ReportStorage interface {
	UploadReport(ctx context.Context, objectName string, data []byte, contentType string) (string, error)
}
