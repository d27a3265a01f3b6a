// Package errors defines the application error model: every public operation
// fails with an AppError carrying an HTTP status, a business error code and a
// localized user-facing message.
package errors

import (
	"net/http"

	"souqlink/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// NewValidationError creates a 400 error with a case-specific localized message.
func NewValidationError(message string) *BaseError {
	return NewBaseError(http.StatusBadRequest, "VALIDATION_ERROR", message, "")
}

// Predefined error types. Messages are Arabic, matching the platform locale.
var (
	// Authentication and session errors
	ErrAuthenticationRequired = NewBaseError(
		http.StatusUnauthorized,
		"AUTHENTICATION_REQUIRED",
		"غير مسجل الدخول",
		"",
	)

	ErrAccountBanned = NewBaseError(
		http.StatusForbidden,
		"ACCOUNT_BANNED",
		"الحساب محظور",
		"",
	)

	// Identity errors
	ErrUserNotFound = NewBaseError(
		http.StatusNotFound,
		"USER_NOT_FOUND",
		"المستخدم غير موجود",
		"",
	)

	ErrProfileNotFound = NewBaseError(
		http.StatusNotFound,
		"PROFILE_NOT_FOUND",
		"الملف الشخصي غير موجود",
		"",
	)

	ErrEmailAlreadyRegistered = NewBaseError(
		http.StatusConflict,
		"EMAIL_ALREADY_REGISTERED",
		"البريد الإلكتروني مستخدم بالفعل",
		"",
	)

	// Role and authorization gates
	ErrMerchantOnly = NewBaseError(
		http.StatusForbidden,
		"MERCHANT_ONLY",
		"هذه الخدمة للتجار فقط",
		"",
	)

	ErrMarketerOnly = NewBaseError(
		http.StatusForbidden,
		"MARKETER_ONLY",
		"هذه الخدمة للمسوقين فقط",
		"",
	)

	ErrAdminOnly = NewBaseError(
		http.StatusForbidden,
		"ADMIN_ONLY",
		"هذه الخدمة للمديرين فقط",
		"",
	)

	ErrSubscriptionRequired = NewBaseError(
		http.StatusForbidden,
		"SUBSCRIPTION_REQUIRED",
		"يجب تفعيل الاشتراك أولاً",
		"",
	)

	ErrNotOwner = NewBaseError(
		http.StatusForbidden,
		"NOT_OWNER",
		"غير مسموح لك بتعديل هذا المورد",
		"",
	)

	// Catalog errors
	ErrProductNotFound = NewBaseError(
		http.StatusNotFound,
		"PRODUCT_NOT_FOUND",
		"المنتج غير موجود",
		"",
	)

	ErrProductInactive = NewBaseError(
		http.StatusBadRequest,
		"PRODUCT_INACTIVE",
		"المنتج غير مفعل",
		"",
	)

	ErrProductHasOrders = NewBaseError(
		http.StatusConflict,
		"PRODUCT_HAS_ORDERS",
		"لا يمكن حذف المنتج لوجود طلبات مرتبطة به",
		"",
	)

	ErrMerchantAlreadyFollowed = NewBaseError(
		http.StatusConflict,
		"MERCHANT_ALREADY_FOLLOWED",
		"أنت تتابع هذا التاجر بالفعل",
		"",
	)

	ErrFollowNotFound = NewBaseError(
		http.StatusNotFound,
		"FOLLOW_NOT_FOUND",
		"أنت لا تتابع هذا التاجر",
		"",
	)

	// Order workflow errors
	ErrOrderNotFound = NewBaseError(
		http.StatusNotFound,
		"ORDER_NOT_FOUND",
		"الطلب غير موجود",
		"",
	)

	ErrInvalidOrderStatus = NewBaseError(
		http.StatusBadRequest,
		"INVALID_ORDER_STATUS",
		"حالة الطلب غير صحيحة",
		"",
	)

	ErrIllegalTransition = NewBaseError(
		http.StatusBadRequest,
		"ILLEGAL_TRANSITION",
		"لا يمكن تغيير حالة الطلب من حالته الحالية",
		"",
	)

	ErrOrderNotCompleted = NewBaseError(
		http.StatusBadRequest,
		"ORDER_NOT_COMPLETED",
		"الطلب يجب أن يكون مكتملاً أولاً",
		"",
	)

	// Notification errors
	ErrNotificationNotFound = NewBaseError(
		http.StatusNotFound,
		"NOTIFICATION_NOT_FOUND",
		"الإشعار غير موجود",
		"",
	)

	// Admin errors
	ErrCannotBanAdmin = NewBaseError(
		http.StatusBadRequest,
		"CANNOT_BAN_ADMIN",
		"لا يمكن حظر المديرين",
		"",
	)

	ErrInvalidSubscriptionStatus = NewBaseError(
		http.StatusBadRequest,
		"INVALID_SUBSCRIPTION_STATUS",
		"حالة الاشتراك غير صحيحة",
		"",
	)

	ErrInvalidBroadcastTarget = NewBaseError(
		http.StatusBadRequest,
		"INVALID_BROADCAST_TARGET",
		"نوع المستخدم غير صحيح",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"خطأ داخلي في الخادم",
		"",
	)
)

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "خطأ في تنفيذ العملية"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}
