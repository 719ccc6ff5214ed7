package catalog

import "errors"

var ErrCardNotFound = errors.New("card not found")
