package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError

	// Logging errors
	CreateLogFileError

	// Database errors
	DBConnectionError
	DBTableCheckError
	DBEmptyDatabaseError
	DBNotConnectedError
	DBTableExistsCheckError
	DBQueryTablesError
	DBScanTableError
	DBDropTableError
	DBTransactionError

	// Schema errors
	SchemaGORMConnectionError
	SchemaCreateError

	// Import errors
	ImportFileNotFoundError
	ImportCSVHeaderError
	ImportCSVReadError
	ImportBatchInsertError
	ImportCancelledError

	// Principles errors
	PrinciplesDirError
	PrinciplesReadError
	PrinciplesDecodeError
	PrinciplesInsertError

	// Purge errors
	PurgeCriterionError

	// Normalize errors
	NormalizeLoadError
	NormalizeUpdateError

	// Full-text index errors
	FTSOpenError
	FTSSchemaError
	FTSSourceError
	FTSRebuildError
	FTSSearchQueryError
)
