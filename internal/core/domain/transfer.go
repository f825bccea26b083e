package domain

// FileFieldName is the multipart field the upload endpoint reads the file from
const FileFieldName = "file"

const (
	// MessageNetworkError is reported when no response was received
	MessageNetworkError = "a network error occurred while uploading the file"
	// MessageServerError is reported when the endpoint rejected the file without details
	MessageServerError = "the server could not process the upload"
	// MessageTimeout is reported when the attempt exceeded its deadline
	MessageTimeout = "the upload timed out"
	// MessageCancelled is reported when the user aborted the upload
	MessageCancelled = "the upload was cancelled"
	// MessageReadError is reported when the selected file could not be read
	MessageReadError = "the selected file could not be read"
	// MessageNoFileSelected is reported when submit is called without a file
	MessageNoFileSelected = "please select a file to upload"
)

// UploadTarget is the opaque URL a file is sent to
type UploadTarget string

func (t UploadTarget) String() string {
	return string(t)
}

// ProgressEvent reports bytes sent so far. Total is zero when unknown
type ProgressEvent struct {
	Loaded uint64
	Total  uint64
}

// TransferResult is produced once per attempt
type TransferResult struct {
	OK         bool
	StatusCode *int
	Message    string
	// Err classifies failures: ErrTransport, ErrRejected or ErrCancelled
	Err error
}
