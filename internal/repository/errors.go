package repository

import "errors"

// ErrNotFound возвращается, если запись не найдена или принадлежит другому пользователю
var ErrNotFound = errors.New("record not found")
