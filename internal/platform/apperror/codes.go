package apperror

// ErrorCode is the general, system-level category of an error.
type ErrorCode string

const (
	CodeBadRequest         ErrorCode = "BAD_REQUEST"
	CodeNotFound           ErrorCode = "NOT_FOUND"
	CodeConflict           ErrorCode = "CONFLICT"
	CodeValidationFailed   ErrorCode = "VALIDATION_FAILED"
	CodeInternalError      ErrorCode = "INTERNAL_SERVER_ERROR"
	CodeServiceUnavailable ErrorCode = "SERVICE_UNAVAILABLE"
)

// BusinessCode is the specific business reason behind an error.
type BusinessCode string

const (
	BusinessCodeGeneral BusinessCode = "GENERAL"

	// Request shape
	BusinessCodeInvalidFormat BusinessCode = "INVALID_FORMAT"
	BusinessCodeInvalidQuery  BusinessCode = "INVALID_QUERY"

	// Posts
	BusinessCodePostNotFound      BusinessCode = "POST_NOT_FOUND"
	BusinessCodeSlugAlreadyExists BusinessCode = "SLUG_ALREADY_EXISTS"
	BusinessCodePostAlreadyExists BusinessCode = "POST_ALREADY_EXISTS"
	BusinessCodeInvalidSlug       BusinessCode = "INVALID_SLUG"
	BusinessCodeInvalidTitle      BusinessCode = "INVALID_TITLE"
	BusinessCodeInvalidExcerpt    BusinessCode = "INVALID_EXCERPT"
	BusinessCodeInvalidAuthor     BusinessCode = "INVALID_AUTHOR"

	// Tags and categories
	BusinessCodeTagNotFound      BusinessCode = "TAG_NOT_FOUND"
	BusinessCodeCategoryNotFound BusinessCode = "CATEGORY_NOT_FOUND"
	BusinessCodeInvalidName      BusinessCode = "INVALID_NAME"
	BusinessCodeInvalidParent    BusinessCode = "INVALID_PARENT"
	BusinessCodeTermInUse        BusinessCode = "TERM_IN_USE"

	// Import
	BusinessCodeImportFailed BusinessCode = "IMPORT_FAILED"
)
