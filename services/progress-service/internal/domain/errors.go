package domain

import "errors"

var (
	ErrCourseNotFound         = errors.New("course not found")
	ErrContentNotFound        = errors.New("content not found")
	ErrQuestionNotFound       = errors.New("question not found")
	ErrEnrollmentNotFound     = errors.New("enrollment not found")
	ErrCertificationNotFound  = errors.New("external certification not found")
	ErrLearningPathNotFound   = errors.New("learning path not found")
	ErrPathEnrollmentNotFound = errors.New("learning path enrollment not found")

	ErrOwnershipMismatch = errors.New("content/enrollment mismatch")
	ErrCourseNotApproved = errors.New("course is not approved for enrollment")
	ErrAlreadyApproved   = errors.New("external certification already approved")
	ErrInvalidCategory   = errors.New("invalid category")
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrForbidden         = errors.New("forbidden")

	// Коллизия attempt_no при конкурентной отправке ответа; попытку повторяют.
	ErrAttemptConflict = errors.New("quiz attempt number conflict")
)
