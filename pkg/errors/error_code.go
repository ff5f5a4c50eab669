package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeInvalidDateRange     ErrorCode = 102
	ErrCodeInvalidProvider      ErrorCode = 103
	ErrCodeInvalidWriter        ErrorCode = 104
	ErrCodeInvalidTimespan      ErrorCode = 105

	// Symbol mapping errors (200-299)
	ErrCodeInstrumentFileNotFound ErrorCode = 200
	ErrCodeInstrumentFileInvalid  ErrorCode = 201
	ErrCodeSymbolNotFound         ErrorCode = 202

	// Chunk fetch errors (300-399)
	ErrCodeChunkFetchFailed ErrorCode = 300
	ErrCodeChunkParseFailed ErrorCode = 301

	// Symbol download errors (400-499)
	ErrCodeNoDataForSymbol     ErrorCode = 400
	ErrCodeSymbolDownloadError ErrorCode = 401

	// Batch errors (500-599)
	ErrCodeSymbolListNotFound ErrorCode = 500
	ErrCodeSymbolListEmpty    ErrorCode = 501

	// Writer errors (600-699)
	ErrCodeWriteFailed     ErrorCode = 600
	ErrCodeOutputDirFailed ErrorCode = 601
)
