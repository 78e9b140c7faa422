package favorite

import "errors"

var ErrNotFound = errors.New("favorite not found")
