package errors

// Convenience functions for common error patterns

// Config errors

func ConfigLoadFailed(path string, cause error) *DriverError {
	return Wrap(cause, CategoryConfig, SeverityFatal, "failed to load configuration").
		WithContext("path", path)
}

func ValidationFailed(field, reason string) *DriverError {
	return New(CategoryValidation, SeverityFatal, "validation failed: "+field+" "+reason).
		WithContext("field", field).
		WithContext("reason", reason)
}

// Build directory errors

func DirectoryError(operation, path string, cause error) *DriverError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "build directory "+operation+" failed").
		WithContext("operation", operation).
		WithContext("path", path)
}
