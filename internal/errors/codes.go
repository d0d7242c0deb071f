// Package errors provides structured error handling for defrec.
//
// Error codes follow the pattern ERR_XXX_DESCRIPTION where:
//   - 1XX: Configuration errors
//   - 2XX: IO errors (index file, disk)
//   - 3XX: Extraction errors (per source file)
//   - 4XX: Validation errors
//   - 5XX: Internal errors
package errors

// Category defines error categories for classification.
type Category string

const (
	// CategoryConfig indicates configuration-related errors.
	CategoryConfig Category = "CONFIG"
	// CategoryIO indicates index file and disk I/O errors.
	CategoryIO Category = "IO"
	// CategoryExtract indicates per-file extraction errors.
	CategoryExtract Category = "EXTRACT"
	// CategoryValidation indicates input validation errors.
	CategoryValidation Category = "VALIDATION"
	// CategoryInternal indicates unexpected internal errors.
	CategoryInternal Category = "INTERNAL"
)

// Severity defines error severity levels.
type Severity string

const (
	// SeverityFatal indicates unrecoverable error, must abort.
	SeverityFatal Severity = "FATAL"
	// SeverityError indicates operation failed but can continue.
	SeverityError Severity = "ERROR"
	// SeverityWarning indicates degraded operation, continuing.
	SeverityWarning Severity = "WARNING"
)

// Error codes organized by category.
const (
	// Config errors (100-199)
	ErrCodeConfigInvalid    = "ERR_101_CONFIG_INVALID"
	ErrCodeConfigPermission = "ERR_102_CONFIG_PERMISSION"

	// IO errors (200-299)
	ErrCodeIndexNotFound = "ERR_201_INDEX_NOT_FOUND"
	ErrCodeIndexCorrupt  = "ERR_202_INDEX_CORRUPT"
	ErrCodeIndexWrite    = "ERR_203_INDEX_WRITE"
	ErrCodeLockHeld      = "ERR_204_LOCK_HELD"

	// Extraction errors (300-399)
	ErrCodeFileUnreadable = "ERR_301_FILE_UNREADABLE"

	// Validation errors (400-499)
	ErrCodeInvalidInput     = "ERR_401_INVALID_INPUT"
	ErrCodeQueryEmpty       = "ERR_402_QUERY_EMPTY"
	ErrCodeInvalidThreshold = "ERR_403_INVALID_THRESHOLD"
	ErrCodeInvalidPath      = "ERR_404_INVALID_PATH"

	// Internal errors (500-599)
	ErrCodeInternal     = "ERR_501_INTERNAL"
	ErrCodeScanFailed   = "ERR_502_SCAN_FAILED"
	ErrCodeQueryFailed  = "ERR_503_QUERY_FAILED"
	ErrCodeBuildFailed  = "ERR_504_BUILD_FAILED"
)

// categoryFromCode extracts category from error code.
func categoryFromCode(code string) Category {
	if len(code) < 7 {
		return CategoryInternal
	}

	// Numeric portion, e.g. "201" from "ERR_201_INDEX_NOT_FOUND"
	switch code[4] {
	case '1':
		return CategoryConfig
	case '2':
		return CategoryIO
	case '3':
		return CategoryExtract
	case '4':
		return CategoryValidation
	default:
		return CategoryInternal
	}
}

// severityFromCode determines severity based on error code.
func severityFromCode(code string) Severity {
	switch code {
	case ErrCodeIndexNotFound, ErrCodeIndexCorrupt:
		// Fatal at query time: the user must rebuild before querying.
		return SeverityFatal
	case ErrCodeFileUnreadable:
		// Recovered locally by the corpus builder.
		return SeverityWarning
	default:
		return SeverityError
	}
}
