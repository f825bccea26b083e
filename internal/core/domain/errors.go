package domain

import "errors"

// ErrAlreadyExists is an error thrown when entity already exists
var ErrAlreadyExists = errors.New("already exists")

// ErrSessionNotFound is an error thrown when session is not found
var ErrSessionNotFound = errors.New("session not found")

// ErrInvalidIdentifier is an error thrown when the upload link does not carry a valid identifier
var ErrInvalidIdentifier = errors.New("invalid upload link")

// ErrNoFileSelected is an error thrown when submit is called without a selected file
var ErrNoFileSelected = errors.New("no file selected")

// ErrUploadInProgress is an error thrown when a second upload is submitted while one is in flight
var ErrUploadInProgress = errors.New("upload already in progress")

// ErrNotUploading is an error thrown when cancel is called while nothing is uploading
var ErrNotUploading = errors.New("no upload in progress")

// ErrSessionLocked is an error thrown when a finished session no longer accepts selections
var ErrSessionLocked = errors.New("session locked after successful upload")

// ErrFileNotFound is an error thrown when a selected location does not exist
var ErrFileNotFound = errors.New("file not found")

// ErrNotAFile is an error thrown when a selected location is a directory
var ErrNotAFile = errors.New("location is not a regular file")

// ErrUnsupportedLocation is an error thrown when no file source handles a location
var ErrUnsupportedLocation = errors.New("unsupported file location")

// ErrTransport is an error thrown when the upload endpoint could not be reached
var ErrTransport = errors.New("transport failure")

// ErrRejected is an error thrown when the upload endpoint answered with a non-success status
var ErrRejected = errors.New("upload rejected")

// ErrCancelled is an error thrown when the transfer was aborted by the user
var ErrCancelled = errors.New("upload cancelled")
