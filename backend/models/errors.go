package models

import "errors"

var ErrCourseNotFound = errors.New("course not found")
var ErrLessonNotFound = errors.New("lesson not found")
var ErrQuizNotFound = errors.New("lesson has no quiz")
var ErrInvalidInput = errors.New("invalid input")
var ErrIllegalTransition = errors.New("illegal quiz transition")
var ErrNotLoggedIn = errors.New("no active session")
