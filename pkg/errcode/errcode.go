// Package errcode enumerates error codes used across faunadb packages.
package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File system errors
	CreateDirError
	CopyFileError
	ReadFileError
	WriteFileError

	// Logging errors
	CreateLogFileError

	// Connection configuration errors
	ConnConfigLoadError
	ConnConfigSaveError

	// Database errors
	DBConnectionError
	DBNotConnectedError
	DBTableCheckError
	DBQueryError
	DBScanError

	// Schema bootstrap errors
	SchemaResourceError
	SchemaStatementError
	SchemaVerifyError

	// Record errors
	RecordInsertError
	RecordUpdateError
	RecordDeleteError
	RecordNotFoundError
	RecordColumnError

	// Vocabulary errors
	VocabQueryError
	VocabWriteError

	// Statistics errors
	StatsGenerateError
	StatsExportError

	// Export errors
	ExportRenderError
	ExportWriteError
)
