package view

import "errors"

var (
	ErrEmptyName        = errors.New("view: template name cannot be empty")
	ErrDuplicate        = errors.New("view: template already registered")
	ErrTemplateNotFound = errors.New("view: template not found")
	ErrParse            = errors.New("view: failed to parse templates")
)
